package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/dmitrijs2005/rentkeeper/internal/filex"
)

// Brand edits the agency name, colors and logo. The form starts from the
// saved branding with default colors filled in; an empty logo answer keeps
// the current logo.
func (a *App) Brand(ctx context.Context) error {
	if err := a.requireOnline(); err != nil {
		return err
	}

	b := a.store.Session().Branding.WithFormDefaults()
	var err error
	if b.AgencyName, err = GetWithDefault(a.reader, "Agency name", b.AgencyName, a.out); err != nil {
		return err
	}
	if b.PrimaryColor, err = GetWithDefault(a.reader, "Primary color (#rrggbb)", b.PrimaryColor, a.out); err != nil {
		return err
	}
	if b.SecondaryColor, err = GetWithDefault(a.reader, "Secondary color (#rrggbb)", b.SecondaryColor, a.out); err != nil {
		return err
	}
	path, err := GetSimpleText(a.reader, "Logo image file (empty keeps the current logo)", a.out)
	if err != nil {
		return err
	}

	var logo *services.Logo
	if path != "" {
		expanded, err := filex.ExpandHome(path)
		if err != nil {
			return err
		}
		f, err := os.Open(expanded)
		if err != nil {
			return fmt.Errorf("open logo: %w", err)
		}
		defer f.Close()
		logo = &services.Logo{Name: filepath.Base(expanded), Content: f}
	}

	saved, err := a.branding.Save(ctx, b, logo)
	if err != nil {
		return a.remoteFailed(ctx, err)
	}

	theme := saved.Theme(a.config.BackendURL)
	a.printf("Branding saved: %s (%s / %s)\n", theme.AgencyName, theme.PrimaryColor, theme.SecondaryColor)
	a.printf("Logo: %s\n", theme.LogoURL)
	return nil
}
