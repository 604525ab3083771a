package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for email, password and names and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	if err := a.requireOnline(); err != nil {
		return err
	}

	var r services.Registration
	var err error
	if r.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if r.Password, err = getPassword(a.reader, a.out); err != nil {
		return err
	}
	defer common.WipeByteArray(r.Password)
	if r.FirstName, err = getSimpleText(a.reader, "Enter first name", a.out); err != nil {
		return err
	}
	if r.LastName, err = getSimpleText(a.reader, "Enter last name", a.out); err != nil {
		return err
	}

	if err := a.auth.Register(ctx, r); err != nil {
		return a.noteUnavailable(err)
	}
	a.println("Account created. You can log in now.")
	return nil
}

// Login prompts for credentials, opens the session and loads its contracts.
// Users without a complete branding are told to run "brand".
func (a *App) Login(ctx context.Context) error {
	if err := a.requireOnline(); err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return a.noteUnavailable(err)
	}
	a.resetView()

	a.printf("Welcome, %s!\n", sess.DisplayName())
	if !sess.Branding.IsComplete() {
		a.println("Your agency branding is not set up yet. Run 'brand' to customize it.")
	}
	return a.loadContracts(ctx)
}

// Logout forgets the session and its saved contracts.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.resetView()
	a.println("Logged out.")
	return nil
}

// Profile checks the session against the backend and prints it. Offline the
// saved profile is shown as is.
func (a *App) Profile(ctx context.Context) error {
	sess := a.store.Session()
	if a.isOnline() {
		var err error
		sess, err = a.auth.Profile(ctx)
		if errors.Is(err, services.ErrSessionExpired) {
			a.resetView()
			return err
		}
		if err != nil {
			return a.remoteFailed(ctx, err)
		}
	}

	theme := sess.Branding.Theme(a.config.BackendURL)
	a.printf("Name:   %s\n", sess.DisplayName())
	a.printf("Email:  %s\n", sess.Email)
	a.printf("Agency: %s\n", theme.AgencyName)
	a.printf("Mode:   %s\n", orDash(string(a.Mode())))
	return nil
}
