// Package state is the client's application-state container: the logged-in
// session and the last fetched contract list, both kept in the local SQLite
// database so they survive restarts and backend outages.
//
// A Store is owned by one goroutine (the REPL or a one-shot command) and is
// not safe for concurrent use.
package state

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/branding"
	contractrepo "github.com/dmitrijs2005/rentkeeper/internal/client/repositories/contracts"
	"github.com/dmitrijs2005/rentkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/rentkeeper/internal/client/storage"
	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/filex"
)

const sessionKey = "session"

// Session is the authenticated user as remembered between runs.
type Session struct {
	UserID       string            `json:"user_id"`
	Email        string            `json:"email"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Token        string            `json:"token"`
	RefreshToken string            `json:"refresh_token,omitempty"`
	Branding     branding.Branding `json:"branding"`
}

// LoggedIn reports whether s carries a user and a token.
func (s Session) LoggedIn() bool {
	return s.UserID != "" && s.Token != ""
}

// DisplayName is "First Last".
func (s Session) DisplayName() string {
	return s.FirstName + " " + s.LastName
}

type Store struct {
	db        *sql.DB
	meta      metadata.Repository
	contracts contractrepo.Repository

	session Session
}

// Open creates the database file (and its directory) at path if needed,
// migrates it and returns a Store over it.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		p, err := filex.EnsureParentDir(path)
		if err != nil {
			return nil, fmt.Errorf("state path: %w", err)
		}
		dsn = p
	}
	db, err := storage.InitDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// New wraps an already migrated database.
func New(db *sql.DB) *Store {
	return &Store{
		db:        db,
		meta:      metadata.NewSQLiteRepository(db),
		contracts: contractrepo.NewSQLiteRepository(db),
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Session returns the in-memory session. Call Load first to pick up the one
// saved by a previous run.
func (s *Store) Session() Session {
	return s.session
}

// Load reads the persisted session into memory and returns it. A missing
// session yields the zero Session.
func (s *Store) Load(ctx context.Context) (Session, error) {
	var sess Session
	if _, err := metadata.GetJSON(ctx, s.meta, sessionKey, &sess); err != nil {
		return Session{}, err
	}
	s.session = sess
	return sess, nil
}

// SaveSession persists sess and makes it current.
func (s *Store) SaveSession(ctx context.Context, sess Session) error {
	if err := metadata.SetJSON(ctx, s.meta, sessionKey, sess); err != nil {
		return err
	}
	s.session = sess
	return nil
}

// SaveBranding updates the branding of the current session.
func (s *Store) SaveBranding(ctx context.Context, b branding.Branding) error {
	sess := s.session
	sess.Branding = b
	return s.SaveSession(ctx, sess)
}

// ClearSession forgets the session and the contracts of its user.
func (s *Store) ClearSession(ctx context.Context) error {
	userID := s.session.UserID
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Delete(ctx, sessionKey); err != nil {
			return err
		}
		if userID == "" {
			return nil
		}
		return contractrepo.NewSQLiteRepository(tx).DeleteByUser(ctx, userID)
	})
	if err != nil {
		return err
	}
	s.session = Session{}
	return nil
}

// SaveContracts replaces the user's snapshot with list atomically.
func (s *Store) SaveContracts(ctx context.Context, userID string, list []contracts.Contract) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return contractrepo.NewSQLiteRepository(tx).ReplaceAll(ctx, userID, list)
	})
}

// LoadContracts returns the user's snapshot, empty when none was saved.
func (s *Store) LoadContracts(ctx context.Context, userID string) ([]contracts.Contract, error) {
	return s.contracts.ListByUser(ctx, userID)
}

// PutContract stores one created or edited contract in the snapshot.
func (s *Store) PutContract(ctx context.Context, userID string, c contracts.Contract) error {
	return s.contracts.Upsert(ctx, userID, c)
}

// DeleteContract evicts one contract from the snapshot.
func (s *Store) DeleteContract(ctx context.Context, userID, id string) error {
	return s.contracts.DeleteByID(ctx, userID, id)
}
