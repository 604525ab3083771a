package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/client/directus"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
)

// loadContracts fills the view from the backend when online, saving the
// snapshot on the way, and from the snapshot otherwise.
func (a *App) loadContracts(ctx context.Context) error {
	userID := a.store.Session().UserID

	if a.isOnline() {
		list, err := a.contracts.List(ctx)
		switch {
		case err == nil:
			if err := a.store.SaveContracts(ctx, userID, list); err != nil {
				a.log.Warn(ctx, "save snapshot failed", "error", err)
			}
			a.view.Replace(list)
			return nil
		case errors.Is(err, directus.ErrUnauthorized):
			return a.expireSession(ctx)
		case errors.Is(err, directus.ErrUnavailable):
			a.setMode(ModeOffline)
		default:
			return err
		}
	}

	list, err := a.store.LoadContracts(ctx, userID)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	a.view.Replace(list)
	a.println("Offline: showing saved contracts.")
	return nil
}

// expireSession drops a session the backend no longer accepts.
func (a *App) expireSession(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout failed", "error", err)
	}
	a.resetView()
	return services.ErrSessionExpired
}

func (a *App) resetView() {
	a.view.Replace(nil)
	a.view.SetTerm("")
	a.view.SetSortByExpiry(false)
}

// remoteFailed reacts to a failed call made with the session token and
// returns err for reporting.
func (a *App) remoteFailed(ctx context.Context, err error) error {
	if errors.Is(err, directus.ErrUnauthorized) {
		return a.expireSession(ctx)
	}
	return a.noteUnavailable(err)
}

func (a *App) noteUnavailable(err error) error {
	if errors.Is(err, directus.ErrUnavailable) {
		a.setMode(ModeOffline)
	}
	return err
}

func (a *App) requireOnline() error {
	if !a.isOnline() {
		return ErrOffline
	}
	return nil
}

func (a *App) find(id string) (contracts.Contract, error) {
	c, ok := a.view.Find(id)
	if !ok {
		return contracts.Contract{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, nil
}

func (a *App) List(ctx context.Context) error {
	visible := a.view.Visible()
	if len(visible) == 0 {
		if a.view.Term() != "" {
			a.printf("No contracts match %q.\n", a.view.Term())
		} else {
			a.println("No contracts yet. Use 'add' to create one.")
		}
		return nil
	}
	if err := renderTable(a.out, visible); err != nil {
		return err
	}
	if a.view.Term() != "" {
		a.printf("%d of %d contracts match %q.\n", len(visible), a.view.Len(), a.view.Term())
	}
	return nil
}

// ListMatching lists with the given search term and ordering. Used by the
// one-shot "list" command.
func (a *App) ListMatching(ctx context.Context, term string, byExpiry bool) error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}
	a.view.SetTerm(term)
	a.view.SetSortByExpiry(byExpiry)
	return a.List(ctx)
}

// Search sets the tenant name filter (empty clears it) and lists.
func (a *App) Search(ctx context.Context, term string) error {
	a.view.SetTerm(term)
	return a.List(ctx)
}

// Sort toggles ordering by end date and lists.
func (a *App) Sort(ctx context.Context) error {
	if a.view.ToggleSort() {
		a.println("Sorted by end date, soonest first.")
	} else {
		a.println("Sorting off.")
	}
	return a.List(ctx)
}

// Stats summarizes the whole contract book, ignoring the search term.
func (a *App) Stats(ctx context.Context) error {
	if !a.isLoggedIn() {
		return services.ErrNotLoggedIn
	}
	renderStats(a.out, a.view.Stats(a.now()))
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	c, err := a.find(id)
	if err != nil {
		return err
	}
	return renderDetail(a.out, c)
}

// Add walks the contract form and creates the contract on the backend.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireOnline(); err != nil {
		return err
	}
	c, err := fillContract(a.reader, a.out, contracts.New())
	if err != nil {
		return err
	}

	created, err := a.contracts.Create(ctx, c)
	if err != nil {
		return a.remoteFailed(ctx, err)
	}
	a.keep(ctx, created)
	a.printf("Contract %s created.\n", created.ID)
	return nil
}

// Edit walks the contract form over contract id and saves the result.
func (a *App) Edit(ctx context.Context, id string) error {
	if err := a.requireOnline(); err != nil {
		return err
	}
	current, err := a.find(id)
	if err != nil {
		return err
	}
	c, err := fillContract(a.reader, a.out, current)
	if err != nil {
		return err
	}

	updated, err := a.contracts.Update(ctx, id, c)
	if err != nil {
		return a.remoteFailed(ctx, err)
	}
	a.keep(ctx, updated)
	a.printf("Contract %s updated.\n", updated.ID)
	return nil
}

// Delete removes contract id after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireOnline(); err != nil {
		return err
	}
	c, err := a.find(id)
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete contract %s (%s)?", id, fullName(c.Tenant.FirstName, c.Tenant.LastName)), a.out)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	if err := a.contracts.Remove(ctx, id); err != nil {
		return a.remoteFailed(ctx, err)
	}
	a.view.Remove(id)
	if err := a.store.DeleteContract(ctx, a.store.Session().UserID, id); err != nil {
		a.log.Warn(ctx, "evict from snapshot failed", "id", id, "error", err)
	}
	a.printf("Contract %s deleted.\n", id)
	return nil
}

// Refresh re-checks connectivity and reloads the contract list.
func (a *App) Refresh(ctx context.Context) error {
	a.checkOnline(ctx)
	if err := a.loadContracts(ctx); err != nil {
		return err
	}
	a.printf("%d contracts loaded.\n", a.view.Len())
	return nil
}

// keep puts a contract the backend accepted into the view and the snapshot.
func (a *App) keep(ctx context.Context, c contracts.Contract) {
	a.view.Upsert(c)
	if err := a.store.PutContract(ctx, a.store.Session().UserID, c); err != nil {
		a.log.Warn(ctx, "update snapshot failed", "id", c.ID, "error", err)
	}
}
