package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/directus"
	"github.com/dmitrijs2005/rentkeeper/internal/client/state"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
)

// NameUnavailable replaces a first or last name the backend did not return.
const NameUnavailable = "No disponible"

// AuthBackend is the remote side of AuthService.
type AuthBackend interface {
	Login(ctx context.Context, creds directus.Credentials) (directus.Tokens, error)
	Me(ctx context.Context) (directus.User, error)
	CreateUser(ctx context.Context, registrationToken string, u directus.NewUser) error
	SetToken(token string)
}

// SessionStore persists the session. *state.Store implements it.
type SessionStore interface {
	Session() state.Session
	Load(ctx context.Context) (state.Session, error)
	SaveSession(ctx context.Context, sess state.Session) error
	ClearSession(ctx context.Context) error
}

// Registration is the sign-up form.
type Registration struct {
	Email     string
	Password  []byte
	FirstName string
	LastName  string
}

// AuthService manages the user session.
type AuthService struct {
	backend  AuthBackend
	branding BrandingBackend
	store    SessionStore
	log      logging.Logger

	registrationToken string
	now               func() time.Time
}

func NewAuthService(backend AuthBackend, branding BrandingBackend, store SessionStore, registrationToken string, log logging.Logger) *AuthService {
	return &AuthService{
		backend:           backend,
		branding:          branding,
		store:             store,
		log:               log.With("service", "auth"),
		registrationToken: registrationToken,
		now:               time.Now,
	}
}

// Register creates an account. All four fields are required.
func (a *AuthService) Register(ctx context.Context, r Registration) error {
	var missing []string
	if strings.TrimSpace(r.Email) == "" {
		missing = append(missing, "email")
	}
	if len(r.Password) == 0 {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		missing = append(missing, "first name")
	}
	if strings.TrimSpace(r.LastName) == "" {
		missing = append(missing, "last name")
	}
	if len(missing) > 0 {
		return &fieldsError{fields: missing}
	}
	if a.registrationToken == "" {
		return ErrRegistrationDisabled
	}

	err := a.backend.CreateUser(ctx, a.registrationToken, directus.NewUser{
		Email:     strings.TrimSpace(r.Email),
		Password:  string(r.Password),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
	})
	if err != nil {
		a.log.Warn(ctx, "registration failed", "email", r.Email, "error", err)
		return &RemoteWriteError{Op: "register", Err: err}
	}
	a.log.Info(ctx, "user registered", "email", r.Email)
	return nil
}

// Login authenticates, fetches the profile and the branding, and persists the
// resulting session. A branding that cannot be fetched is left empty.
func (a *AuthService) Login(ctx context.Context, email string, password []byte) (state.Session, error) {
	tokens, err := a.backend.Login(ctx, directus.Credentials{Email: strings.TrimSpace(email), Password: string(password)})
	if err != nil {
		return state.Session{}, err
	}
	a.backend.SetToken(tokens.AccessToken)

	user, err := a.backend.Me(ctx)
	if err != nil {
		a.backend.SetToken("")
		return state.Session{}, &RemoteReadError{Op: "load profile", Err: err}
	}

	sess := state.Session{
		UserID:       user.ID,
		Email:        user.Email,
		FirstName:    orUnavailable(user.FirstName),
		LastName:     orUnavailable(user.LastName),
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}

	if b, err := loadBranding(ctx, a.branding, user.ID); err != nil {
		a.log.Warn(ctx, "branding not loaded", "user_id", user.ID, "error", err)
	} else {
		sess.Branding = b
	}

	if err := a.store.SaveSession(ctx, sess); err != nil {
		return state.Session{}, err
	}
	a.log.Info(ctx, "logged in", "user_id", user.ID)
	return sess, nil
}

// Profile re-reads the current user from the backend. When the backend
// rejects the token the session is dropped and ErrSessionExpired returned.
func (a *AuthService) Profile(ctx context.Context) (state.Session, error) {
	sess := a.store.Session()
	if !sess.LoggedIn() {
		return state.Session{}, ErrNotLoggedIn
	}

	user, err := a.backend.Me(ctx)
	if errors.Is(err, directus.ErrUnauthorized) {
		a.log.Info(ctx, "session rejected by backend", "user_id", sess.UserID)
		if lerr := a.Logout(ctx); lerr != nil {
			return state.Session{}, lerr
		}
		return state.Session{}, ErrSessionExpired
	}
	if err != nil {
		return sess, &RemoteReadError{Op: "load profile", Err: err}
	}

	sess.Email = user.Email
	sess.FirstName = orUnavailable(user.FirstName)
	sess.LastName = orUnavailable(user.LastName)
	if err := a.store.SaveSession(ctx, sess); err != nil {
		return state.Session{}, err
	}
	return sess, nil
}

// Logout forgets the token and the saved session.
func (a *AuthService) Logout(ctx context.Context) error {
	a.backend.SetToken("")
	return a.store.ClearSession(ctx)
}

// Restore loads the session saved by a previous run and starts using its
// token. A session whose token has expired is discarded.
func (a *AuthService) Restore(ctx context.Context) (state.Session, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return state.Session{}, err
	}
	if !sess.LoggedIn() {
		return state.Session{}, nil
	}
	if directus.TokenExpired(sess.Token, a.now()) {
		a.log.Info(ctx, "saved session expired", "user_id", sess.UserID)
		if err := a.Logout(ctx); err != nil {
			return state.Session{}, err
		}
		return state.Session{}, ErrSessionExpired
	}
	a.backend.SetToken(sess.Token)
	return sess, nil
}

func orUnavailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return NameUnavailable
	}
	return s
}

// fieldsError lists the empty required fields of a form.
type fieldsError struct {
	fields []string
}

func (e *fieldsError) Error() string {
	return ErrMissingField.Error() + ": " + strings.Join(e.fields, ", ")
}

func (e *fieldsError) Unwrap() error { return ErrMissingField }
