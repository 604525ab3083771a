package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/rentkeeper/internal/branding"
	"github.com/dmitrijs2005/rentkeeper/internal/client/directus"
	"github.com/dmitrijs2005/rentkeeper/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrand_UploadsLogo(t *testing.T) {
	logo := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("PNG"), 0o600))

	app, fs, out := newTestApp(t, lines("Casa Propia", "", "#000000", logo), ModeOnline)
	loggedIn(t, fs.store)

	require.NoError(t, app.Brand(context.Background()))

	assert.Equal(t, branding.Branding{
		AgencyName:     "Casa Propia",
		PrimaryColor:   branding.DefaultPrimaryColor,
		SecondaryColor: "#000000",
	}, fs.SavedBrand)
	assert.Equal(t, "logo.png", fs.LogoName)
	assert.Equal(t, "PNG", fs.LogoContent)
	assert.Contains(t, out.String(), "Branding saved: Casa Propia (#4f46e5 / #000000)")
	assert.Contains(t, out.String(), "Logo: http://localhost:8055/assets/file-1")
	assert.Equal(t, "file-1", fs.store.Session().Branding.LogoFileID)
}

func TestBrand_KeepsCurrentLogo(t *testing.T) {
	ctx := context.Background()
	app, fs, out := newTestApp(t, lines("", "", "", ""), ModeOnline)
	loggedIn(t, fs.store)
	current := branding.Branding{ID: "5", AgencyName: "Norte", LogoFileID: "old", PrimaryColor: "#111111"}
	require.NoError(t, fs.store.SaveBranding(ctx, current))

	require.NoError(t, app.Brand(ctx))

	want := current
	want.SecondaryColor = branding.DefaultSecondaryColor
	assert.Equal(t, want, fs.SavedBrand)
	assert.Empty(t, fs.LogoName)
	assert.Contains(t, out.String(), "Agency name [Norte]")
	assert.Contains(t, out.String(), "Logo: http://localhost:8055/assets/old")
}

func TestBrand_MissingLogoFile(t *testing.T) {
	app, fs, _ := newTestApp(t, lines("", "", "", filepath.Join(t.TempDir(), "nope.png")), ModeOnline)
	loggedIn(t, fs.store)

	err := app.Brand(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open logo")
	assert.Empty(t, fs.calls)
}

func TestBrand_SaveFailure(t *testing.T) {
	app, fs, _ := newTestApp(t, lines("", "", "", ""), ModeOnline)
	loggedIn(t, fs.store)
	fs.SaveErr = &services.RemoteWriteError{Op: "save branding", Err: directus.ErrUnavailable}

	require.ErrorIs(t, app.Brand(context.Background()), directus.ErrUnavailable)
	assert.Equal(t, ModeOffline, app.Mode())
	assert.Equal(t, branding.Branding{}, fs.store.Session().Branding)
}
