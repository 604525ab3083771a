package services

import (
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/rentkeeper/internal/client/directus"
	"github.com/dmitrijs2005/rentkeeper/internal/client/state"
	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func openStore(t *testing.T) *state.Store {
	t.Helper()
	s, err := state.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func loggedIn(t *testing.T, s *state.Store) {
	t.Helper()
	require.NoError(t, s.SaveSession(context.Background(), state.Session{UserID: "u1", Token: "tok"}))
}

var quiet = logging.Discard()

// ---- fake backend ----

// fakeBackend implements ContractBackend, AuthBackend and BrandingBackend.
type fakeBackend struct {
	calls int

	// contracts
	ListRet   []contracts.RawRecord
	ListErr   error
	CreateRet contracts.RawRecord
	CreateErr error
	UpdateRet contracts.RawRecord
	UpdateErr error
	DeleteErr error

	LastUserID   string
	LastRecord   contracts.RawRecord
	LastUpdateID string
	LastDeleteID string

	// auth
	LoginRet      directus.Tokens
	LoginErr      error
	MeRet         directus.User
	MeErr         error
	CreateUserErr error

	LastCreds    directus.Credentials
	LastRegToken string
	LastNewUser  directus.NewUser
	Token        string

	// branding
	BrandingRet   directus.BrandingRecord
	BrandingFound bool
	BrandingErr   error
	SaveRet       directus.BrandingRecord
	SaveErr       error
	UploadRet     string
	UploadErr     error

	LastSaved      directus.BrandingRecord
	LastUploadName string
	LastUploadBody string
	Uploads        int
}

func (f *fakeBackend) ListContracts(ctx context.Context, userID string) ([]contracts.RawRecord, error) {
	f.calls++
	f.LastUserID = userID
	return f.ListRet, f.ListErr
}

func (f *fakeBackend) CreateContract(ctx context.Context, rec contracts.RawRecord) (contracts.RawRecord, error) {
	f.calls++
	f.LastRecord = rec
	return f.CreateRet, f.CreateErr
}

func (f *fakeBackend) UpdateContract(ctx context.Context, id string, rec contracts.RawRecord) (contracts.RawRecord, error) {
	f.calls++
	f.LastUpdateID = id
	f.LastRecord = rec
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeBackend) DeleteContract(ctx context.Context, id string) error {
	f.calls++
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeBackend) Login(ctx context.Context, creds directus.Credentials) (directus.Tokens, error) {
	f.calls++
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeBackend) Me(ctx context.Context) (directus.User, error) {
	f.calls++
	return f.MeRet, f.MeErr
}

func (f *fakeBackend) CreateUser(ctx context.Context, token string, u directus.NewUser) error {
	f.calls++
	f.LastRegToken = token
	f.LastNewUser = u
	return f.CreateUserErr
}

func (f *fakeBackend) SetToken(token string) { f.Token = token }

func (f *fakeBackend) GetBranding(ctx context.Context, userID string) (directus.BrandingRecord, bool, error) {
	f.calls++
	f.LastUserID = userID
	return f.BrandingRet, f.BrandingFound, f.BrandingErr
}

func (f *fakeBackend) SaveBranding(ctx context.Context, rec directus.BrandingRecord) (directus.BrandingRecord, error) {
	f.calls++
	f.LastSaved = rec
	return f.SaveRet, f.SaveErr
}

func (f *fakeBackend) UploadFile(ctx context.Context, name string, r io.Reader) (string, error) {
	f.calls++
	f.Uploads++
	f.LastUploadName = name
	b, _ := io.ReadAll(r)
	f.LastUploadBody = string(b)
	return f.UploadRet, f.UploadErr
}
