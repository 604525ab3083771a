package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/rentkeeper/internal/branding"
	"github.com/dmitrijs2005/rentkeeper/internal/client/directus"
	"github.com/dmitrijs2005/rentkeeper/internal/client/state"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
)

// BrandingBackend is the remote branding collection plus file uploads.
type BrandingBackend interface {
	GetBranding(ctx context.Context, userID string) (directus.BrandingRecord, bool, error)
	SaveBranding(ctx context.Context, rec directus.BrandingRecord) (directus.BrandingRecord, error)
	UploadFile(ctx context.Context, filename string, r io.Reader) (string, error)
}

// BrandingStore keeps the branding of the current session.
type BrandingStore interface {
	Session() state.Session
	SaveBranding(ctx context.Context, b branding.Branding) error
}

// Logo is an image to upload along with a branding change.
type Logo struct {
	Name    string
	Content io.Reader
}

type BrandingService struct {
	backend BrandingBackend
	store   BrandingStore
	log     logging.Logger
}

func NewBrandingService(backend BrandingBackend, store BrandingStore, log logging.Logger) *BrandingService {
	return &BrandingService{backend: backend, store: store, log: log.With("service", "branding")}
}

// Load fetches the current user's branding. A user without one gets the zero
// Branding.
func (s *BrandingService) Load(ctx context.Context) (branding.Branding, error) {
	sess := s.store.Session()
	if !sess.LoggedIn() {
		return branding.Branding{}, ErrNotLoggedIn
	}
	b, err := loadBranding(ctx, s.backend, sess.UserID)
	if err != nil {
		return branding.Branding{}, err
	}
	return b, nil
}

// Save validates b, uploads logo when given, and creates or updates the
// branding record. Without a new logo the existing LogoFileID is kept. The
// saved branding becomes part of the session.
func (s *BrandingService) Save(ctx context.Context, b branding.Branding, logo *Logo) (branding.Branding, error) {
	if err := branding.Validate(b); err != nil {
		return branding.Branding{}, err
	}
	sess := s.store.Session()
	if !sess.LoggedIn() {
		return branding.Branding{}, ErrNotLoggedIn
	}

	if logo != nil {
		id, err := s.backend.UploadFile(ctx, logo.Name, logo.Content)
		if err != nil {
			s.log.Warn(ctx, "logo upload failed", "file", logo.Name, "error", err)
			return branding.Branding{}, &RemoteWriteError{Op: "upload logo", Err: err}
		}
		b.LogoFileID = id
	}

	saved, err := s.backend.SaveBranding(ctx, directus.BrandingRecord{
		ID:             directus.ID(b.ID),
		UserID:         sess.UserID,
		AgencyName:     b.AgencyName,
		Logo:           b.LogoFileID,
		PrimaryColor:   b.PrimaryColor,
		SecondaryColor: b.SecondaryColor,
	})
	if err != nil {
		s.log.Warn(ctx, "save branding failed", "error", err)
		return branding.Branding{}, &RemoteWriteError{Op: "save branding", ID: b.ID, Err: err}
	}
	if saved.ID != "" {
		b.ID = string(saved.ID)
	}

	if err := s.store.SaveBranding(ctx, b); err != nil {
		return branding.Branding{}, err
	}
	s.log.Info(ctx, "branding saved", "id", b.ID)
	return b, nil
}

func loadBranding(ctx context.Context, backend BrandingBackend, userID string) (branding.Branding, error) {
	rec, ok, err := backend.GetBranding(ctx, userID)
	if err != nil {
		return branding.Branding{}, &RemoteReadError{Op: "load branding", Err: err}
	}
	if !ok {
		return branding.Branding{}, nil
	}
	return branding.Branding{
		ID:             string(rec.ID),
		AgencyName:     rec.AgencyName,
		LogoFileID:     rec.Logo,
		PrimaryColor:   rec.PrimaryColor,
		SecondaryColor: rec.SecondaryColor,
	}, nil
}
