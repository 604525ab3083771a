package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/rentkeeper/internal/branding"
	"github.com/dmitrijs2005/rentkeeper/internal/client/directus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandingLoad(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{BrandingFound: true, BrandingRet: directus.BrandingRecord{ID: "3", Logo: "f1", PrimaryColor: "#111"}}
	svc := NewBrandingService(fb, store, quiet)

	b, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, branding.Branding{ID: "3", LogoFileID: "f1", PrimaryColor: "#111"}, b)
	assert.Equal(t, "u1", fb.LastUserID)
}

func TestBrandingLoad_NoneAndFailure(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)

	fb := &fakeBackend{}
	b, err := NewBrandingService(fb, store, quiet).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, branding.Branding{}, b)

	fb = &fakeBackend{BrandingErr: directus.ErrUnavailable}
	_, err = NewBrandingService(fb, store, quiet).Load(context.Background())
	var re *RemoteReadError
	require.ErrorAs(t, err, &re)
}

func TestBrandingSave_CreatesWithoutLogo(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{SaveRet: directus.BrandingRecord{ID: "7"}}
	svc := NewBrandingService(fb, store, quiet)

	in := branding.Branding{AgencyName: "Casa", PrimaryColor: "#4f46e5", SecondaryColor: "#f9fafb"}
	got, err := svc.Save(ctx, in, nil)
	require.NoError(t, err)

	assert.Equal(t, "7", got.ID)
	assert.Zero(t, fb.Uploads)
	assert.Equal(t, directus.BrandingRecord{
		UserID: "u1", AgencyName: "Casa", PrimaryColor: "#4f46e5", SecondaryColor: "#f9fafb",
	}, fb.LastSaved)
	assert.Equal(t, got, store.Session().Branding)
}

func TestBrandingSave_KeepsExistingLogo(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{SaveRet: directus.BrandingRecord{ID: "7"}}
	svc := NewBrandingService(fb, store, quiet)

	got, err := svc.Save(context.Background(), branding.Branding{ID: "7", LogoFileID: "old"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "old", got.LogoFileID)
	assert.Equal(t, "old", fb.LastSaved.Logo)
	assert.Equal(t, directus.ID("7"), fb.LastSaved.ID)
}

func TestBrandingSave_UploadsNewLogo(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{UploadRet: "new-file", SaveRet: directus.BrandingRecord{ID: "7"}}
	svc := NewBrandingService(fb, store, quiet)

	logo := &Logo{Name: "logo.png", Content: strings.NewReader("PNG")}
	got, err := svc.Save(context.Background(), branding.Branding{ID: "7", LogoFileID: "old"}, logo)
	require.NoError(t, err)

	assert.Equal(t, "new-file", got.LogoFileID)
	assert.Equal(t, "new-file", fb.LastSaved.Logo)
	assert.Equal(t, "logo.png", fb.LastUploadName)
	assert.Equal(t, "PNG", fb.LastUploadBody)
}

func TestBrandingSave_UploadFailureAbortsSave(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{UploadErr: directus.ErrUnavailable}
	svc := NewBrandingService(fb, store, quiet)

	_, err := svc.Save(context.Background(), branding.Branding{}, &Logo{Name: "x.png", Content: strings.NewReader("")})
	var we *RemoteWriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "upload logo", we.Op)
	assert.Equal(t, 1, fb.calls)
}

func TestBrandingSave_InvalidColorMakesNoCalls(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{}
	svc := NewBrandingService(fb, store, quiet)

	_, err := svc.Save(context.Background(), branding.Branding{PrimaryColor: "blue"}, nil)
	require.ErrorIs(t, err, branding.ErrInvalid)
	assert.Zero(t, fb.calls)
}

func TestBrandingSave_RemoteFailure(t *testing.T) {
	store := openStore(t)
	loggedIn(t, store)
	fb := &fakeBackend{SaveErr: &directus.APIError{Status: 403}}
	svc := NewBrandingService(fb, store, quiet)

	_, err := svc.Save(context.Background(), branding.Branding{ID: "7"}, nil)
	var we *RemoteWriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "7", we.ID)
	require.ErrorIs(t, err, directus.ErrUnauthorized)
	assert.Equal(t, branding.Branding{}, store.Session().Branding)
}
