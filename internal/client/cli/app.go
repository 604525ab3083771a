package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/branding"
	"github.com/dmitrijs2005/rentkeeper/internal/client/config"
	"github.com/dmitrijs2005/rentkeeper/internal/client/directus"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/client/state"
	"github.com/dmitrijs2005/rentkeeper/internal/client/views"
	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type authService interface {
	Register(ctx context.Context, r services.Registration) error
	Login(ctx context.Context, email string, password []byte) (state.Session, error)
	Profile(ctx context.Context) (state.Session, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (state.Session, error)
}

type contractService interface {
	List(ctx context.Context) ([]contracts.Contract, error)
	Create(ctx context.Context, c contracts.Contract) (contracts.Contract, error)
	Update(ctx context.Context, id string, c contracts.Contract) (contracts.Contract, error)
	Remove(ctx context.Context, id string) error
}

type brandingService interface {
	Save(ctx context.Context, b branding.Branding, logo *services.Logo) (branding.Branding, error)
}

// localStore is the part of *state.Store the REPL uses directly.
type localStore interface {
	Session() state.Session
	SaveContracts(ctx context.Context, userID string, list []contracts.Contract) error
	LoadContracts(ctx context.Context, userID string) ([]contracts.Contract, error)
	PutContract(ctx context.Context, userID string, c contracts.Contract) error
	DeleteContract(ctx context.Context, userID, id string) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config    *config.Config
	auth      authService
	contracts contractService
	branding  brandingService
	store     localStore
	pinger    pinger
	log       logging.Logger

	view   *views.SearchView
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
	close  func() error

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens the local state database and builds the backend client and
// services described by c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := state.Open(ctx, c.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}

	api := directus.New(directus.Options{
		BaseURL:             c.BackendURL,
		Timeout:             c.RequestTimeout,
		ContractsCollection: c.ContractsCollection,
		BrandingCollection:  c.BrandingCollection,
		Logger:              log,
	})

	return &App{
		config:    c,
		auth:      services.NewAuthService(api, api, store, c.RegistrationToken, log),
		contracts: services.NewContractService(api, store, log),
		branding:  services.NewBrandingService(api, store, log),
		store:     store,
		pinger:    api,
		log:       log.With("component", "cli"),
		view:      views.NewSearchView(nil),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		now:       time.Now,
		close:     store.Close,
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// SetOutput redirects user-facing output, os.Stdout by default.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Mode returns the last known connectivity state.
func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) isOnline() bool {
	return a.Mode() == ModeOnline
}

func (a *App) isLoggedIn() bool {
	return a.store.Session().LoggedIn()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// checkOnline pings the backend once and records the outcome.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.pingTimeout())
	err := a.pinger.Ping(ctx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) pingTimeout() time.Duration {
	if a.config != nil && a.config.RequestTimeout > 0 {
		return a.config.RequestTimeout
	}
	return 3 * time.Second
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done, switching the app between online and offline mode.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Start determines connectivity, restores the saved session and loads its
// contracts. An expired session is dropped with a notice.
func (a *App) Start(ctx context.Context) error {
	a.checkOnline(ctx)

	sess, err := a.auth.Restore(ctx)
	if errors.Is(err, services.ErrSessionExpired) {
		a.println(DescribeError(err))
		return nil
	}
	if err != nil {
		return err
	}
	if !sess.LoggedIn() {
		return nil
	}
	return a.loadContracts(ctx)
}

// Root runs the interactive session until the user exits or stdin closes.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Start(ctx); err != nil {
		a.println(DescribeError(err))
	}
	a.greet()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) greet() {
	sess := a.store.Session()
	theme := sess.Branding.Theme(a.config.BackendURL)
	a.printf("%s (type 'help' for commands)\n", theme.AgencyName)
	if sess.LoggedIn() {
		a.printf("Welcome back, %s. %d contracts loaded.\n", sess.DisplayName(), a.view.Len())
	}
}

func (a *App) getStatus() string {
	s := ""
	if sess := a.store.Session(); sess.LoggedIn() {
		s = sess.Email + " "
	}
	if mode := a.Mode(); mode != ModeUnknown {
		s += string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
