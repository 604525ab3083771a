package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotLoggedIn          = errors.New("not logged in")
	ErrSessionExpired       = errors.New("session expired, please log in again")
	ErrRegistrationDisabled = errors.New("registration is not configured")
	ErrMissingField         = errors.New("missing required field")
)

// RemoteWriteError is a failed create, update or delete. Local state has not
// been changed when it is returned.
type RemoteWriteError struct {
	Op  string
	ID  string
	Err error
}

func (e *RemoteWriteError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ID, e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }

// RemoteReadError is a failed fetch.
type RemoteReadError struct {
	Op  string
	Err error
}

func (e *RemoteReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteReadError) Unwrap() error { return e.Err }
