package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/branding"
	"github.com/dmitrijs2005/rentkeeper/internal/client/config"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/client/state"
	"github.com/dmitrijs2005/rentkeeper/internal/client/views"
	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func lines(ls ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(ls, "\n") + "\n"))
}

func noTerminal(t *testing.T) {
	t.Helper()
	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })
}

func openStore(t *testing.T) *state.Store {
	t.Helper()
	s, err := state.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func loggedIn(t *testing.T, s *state.Store) {
	t.Helper()
	require.NoError(t, s.SaveSession(context.Background(), state.Session{
		UserID: "u1", Email: "ana@example.com", FirstName: "Ana", LastName: "Ruiz", Token: "tok",
	}))
}

func newTestApp(t *testing.T, in *bufio.Reader, mode Mode) (*App, *fakeServices, *bytes.Buffer) {
	t.Helper()
	noTerminal(t)

	store := openStore(t)
	fs := &fakeServices{store: store}
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()

	app := &App{
		config:    cfg,
		auth:      fs,
		contracts: fs,
		branding:  fs,
		store:     store,
		pinger:    fs,
		log:       logging.Discard(),
		view:      views.NewSearchView(nil),
		reader:    in,
		out:       out,
		now:       func() time.Time { return testNow },
		mode:      mode,
	}
	return app, fs, out
}

func contract(id, first string, dni int64, end string) contracts.Contract {
	c := contracts.New()
	c.ID = id
	c.OwnerUserID = "u1"
	c.Tenant = contracts.Person{FirstName: first, LastName: "Test", NationalID: dni}
	c.EndDate = end
	return c
}

// fakeServices stands in for the auth, contract and branding services and
// the backend ping. Auth calls go through to the real store so the App sees
// sessions come and go.
type fakeServices struct {
	store *state.Store
	calls []string

	LoginSess    state.Session
	LoginErr     error
	LastEmail    string
	LastPassword string

	RegisterErr error
	LastReg     services.Registration

	ProfileErr error
	RestoreErr error

	ListRet   []contracts.Contract
	ListErr   error
	CreateErr error
	Created   contracts.Contract
	UpdateErr error
	UpdatedID string
	Updated   contracts.Contract
	RemoveErr error
	RemovedID string

	SaveErr     error
	SavedBrand  branding.Branding
	LogoName    string
	LogoContent string
	PingErr     error
}

func (f *fakeServices) call(name string) { f.calls = append(f.calls, name) }

func (f *fakeServices) Register(ctx context.Context, r services.Registration) error {
	f.call("register")
	f.LastReg = r
	f.LastReg.Password = bytes.Clone(r.Password)
	return f.RegisterErr
}

func (f *fakeServices) Login(ctx context.Context, email string, password []byte) (state.Session, error) {
	f.call("login")
	f.LastEmail, f.LastPassword = email, string(password)
	if f.LoginErr != nil {
		return state.Session{}, f.LoginErr
	}
	if err := f.store.SaveSession(ctx, f.LoginSess); err != nil {
		return state.Session{}, err
	}
	return f.LoginSess, nil
}

func (f *fakeServices) Profile(ctx context.Context) (state.Session, error) {
	f.call("profile")
	if errors.Is(f.ProfileErr, services.ErrSessionExpired) {
		_ = f.store.ClearSession(ctx)
		return state.Session{}, f.ProfileErr
	}
	return f.store.Session(), f.ProfileErr
}

func (f *fakeServices) Logout(ctx context.Context) error {
	f.call("logout")
	return f.store.ClearSession(ctx)
}

func (f *fakeServices) Restore(ctx context.Context) (state.Session, error) {
	f.call("restore")
	if f.RestoreErr != nil {
		return state.Session{}, f.RestoreErr
	}
	return f.store.Load(ctx)
}

func (f *fakeServices) List(ctx context.Context) ([]contracts.Contract, error) {
	f.call("list")
	return f.ListRet, f.ListErr
}

func (f *fakeServices) Create(ctx context.Context, c contracts.Contract) (contracts.Contract, error) {
	f.call("create")
	f.Created = c
	if f.CreateErr != nil {
		return contracts.Contract{}, f.CreateErr
	}
	c.ID = "101"
	c.OwnerUserID = f.store.Session().UserID
	return c, nil
}

func (f *fakeServices) Update(ctx context.Context, id string, c contracts.Contract) (contracts.Contract, error) {
	f.call("update")
	f.UpdatedID, f.Updated = id, c
	if f.UpdateErr != nil {
		return contracts.Contract{}, f.UpdateErr
	}
	c.ID = id
	return c, nil
}

func (f *fakeServices) Remove(ctx context.Context, id string) error {
	f.call("remove")
	f.RemovedID = id
	return f.RemoveErr
}

func (f *fakeServices) Save(ctx context.Context, b branding.Branding, logo *services.Logo) (branding.Branding, error) {
	f.call("save branding")
	f.SavedBrand = b
	if logo != nil {
		f.LogoName = logo.Name
		data, err := io.ReadAll(logo.Content)
		if err != nil {
			return branding.Branding{}, err
		}
		f.LogoContent = string(data)
		b.LogoFileID = "file-1"
	}
	if f.SaveErr != nil {
		return branding.Branding{}, f.SaveErr
	}
	if err := f.store.SaveBranding(ctx, b); err != nil {
		return branding.Branding{}, err
	}
	return b, nil
}

func (f *fakeServices) Ping(ctx context.Context) error {
	f.call("ping")
	return f.PingErr
}

// flakyPinger is safe for the watcher goroutine.
type flakyPinger struct {
	mu  sync.Mutex
	err error
}

func (p *flakyPinger) set(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *flakyPinger) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
