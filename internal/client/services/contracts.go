package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/rentkeeper/internal/client/state"
	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
)

// ContractBackend is the remote contract collection.
type ContractBackend interface {
	ListContracts(ctx context.Context, userID string) ([]contracts.RawRecord, error)
	CreateContract(ctx context.Context, rec contracts.RawRecord) (contracts.RawRecord, error)
	UpdateContract(ctx context.Context, id string, rec contracts.RawRecord) (contracts.RawRecord, error)
	DeleteContract(ctx context.Context, id string) error
}

// SessionSource yields the logged-in user. *state.Store implements it.
type SessionSource interface {
	Session() state.Session
}

// ContractService fetches contracts and writes changes through to the
// backend. It never retries and never touches local state; callers update
// their lists after a successful call.
type ContractService struct {
	backend ContractBackend
	session SessionSource
	log     logging.Logger
}

func NewContractService(backend ContractBackend, session SessionSource, log logging.Logger) *ContractService {
	return &ContractService{backend: backend, session: session, log: log.With("service", "contracts")}
}

func (s *ContractService) currentUser() (string, error) {
	sess := s.session.Session()
	if !sess.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	return sess.UserID, nil
}

// List fetches every contract of the current user, normalized.
func (s *ContractService) List(ctx context.Context) ([]contracts.Contract, error) {
	userID, err := s.currentUser()
	if err != nil {
		return nil, err
	}
	raws, err := s.backend.ListContracts(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "list contracts failed", "user_id", userID, "error", err)
		return nil, &RemoteReadError{Op: "list contracts", Err: err}
	}
	return contracts.NormalizeAll(raws), nil
}

// Create validates c, stamps it with the current user and stores it. The
// returned contract is the server's version, including its new ID.
func (s *ContractService) Create(ctx context.Context, c contracts.Contract) (contracts.Contract, error) {
	if err := contracts.Validate(c); err != nil {
		return contracts.Contract{}, err
	}
	userID, err := s.currentUser()
	if err != nil {
		return contracts.Contract{}, err
	}

	c.ID = ""
	c.OwnerUserID = userID
	raw, err := s.backend.CreateContract(ctx, contracts.ToRecord(c))
	if err != nil {
		s.log.Warn(ctx, "create contract failed", "error", err)
		return contracts.Contract{}, &RemoteWriteError{Op: "create contract", Err: err}
	}

	created := contracts.Normalize(raw)
	if created.ID == "" {
		return contracts.Contract{}, &RemoteWriteError{Op: "create contract", Err: errors.New("response carries no id")}
	}
	s.log.Info(ctx, "contract created", "id", created.ID)
	return created, nil
}

// Update replaces contract id with c. Every field is sent, so fields left
// empty in c are cleared on the server.
func (s *ContractService) Update(ctx context.Context, id string, c contracts.Contract) (contracts.Contract, error) {
	if id == "" {
		return contracts.Contract{}, &contracts.ValidationError{
			Fields: []contracts.FieldError{{Field: contracts.FieldID, Message: "contract id is required"}},
		}
	}
	if err := contracts.Validate(c); err != nil {
		return contracts.Contract{}, err
	}
	userID, err := s.currentUser()
	if err != nil {
		return contracts.Contract{}, err
	}

	c.ID = id
	c.OwnerUserID = userID
	rec := contracts.ToRecord(c)
	delete(rec, contracts.FieldID)

	raw, err := s.backend.UpdateContract(ctx, id, rec)
	if err != nil {
		s.log.Warn(ctx, "update contract failed", "id", id, "error", err)
		return contracts.Contract{}, &RemoteWriteError{Op: "update contract", ID: id, Err: err}
	}

	updated := contracts.Normalize(raw)
	if updated.ID == "" {
		updated.ID = id
	}
	s.log.Info(ctx, "contract updated", "id", id)
	return updated, nil
}

// Remove deletes contract id on the server.
func (s *ContractService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return &contracts.ValidationError{
			Fields: []contracts.FieldError{{Field: contracts.FieldID, Message: "contract id is required"}},
		}
	}
	if _, err := s.currentUser(); err != nil {
		return err
	}
	if err := s.backend.DeleteContract(ctx, id); err != nil {
		s.log.Warn(ctx, "delete contract failed", "id", id, "error", err)
		return &RemoteWriteError{Op: "delete contract", ID: id, Err: err}
	}
	s.log.Info(ctx, "contract deleted", "id", id)
	return nil
}
