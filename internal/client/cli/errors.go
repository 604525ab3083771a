package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/rentkeeper/internal/branding"
	"github.com/dmitrijs2005/rentkeeper/internal/client/directus"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
)

var (
	ErrOffline  = errors.New("backend unreachable")
	ErrNotFound = errors.New("contract not found")
	ErrAborted  = errors.New("aborted")
)

// DescribeError turns a command error into the line shown to the user.
// A nil error yields "".
func DescribeError(err error) string {
	if err == nil {
		return ""
	}

	var ve *contracts.ValidationError
	switch {
	case errors.Is(err, ErrAborted):
		return "Cancelled."
	case errors.Is(err, ErrOffline):
		return "Offline: changes are disabled until the backend is reachable."
	case errors.Is(err, services.ErrSessionExpired):
		return "Your session expired, please log in again."
	case errors.Is(err, services.ErrNotLoggedIn):
		return "Please log in first."
	case errors.Is(err, services.ErrRegistrationDisabled):
		return "Registration is not enabled for this client."
	case errors.As(err, &ve):
		msgs := make([]string, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			if f.Field == "" {
				msgs = append(msgs, f.Message)
				continue
			}
			msgs = append(msgs, fieldLabel(f.Field)+": "+f.Message)
		}
		return "Invalid contract: " + strings.Join(msgs, "; ")
	case errors.Is(err, branding.ErrInvalid):
		return "Invalid branding: " + err.Error()
	case errors.Is(err, directus.ErrUnauthorized):
		return "Not authorized: " + err.Error()
	case errors.Is(err, directus.ErrUnavailable):
		return "Backend unavailable, try again later."
	}
	return "Error: " + err.Error()
}
