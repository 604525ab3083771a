package directus

import (
	"context"
	"net/http"
	"net/url"
)

// BrandingRecord is a row of the branding collection.
type BrandingRecord struct {
	ID             ID     `json:"id,omitempty"`
	UserID         string `json:"user_id"`
	AgencyName     string `json:"nombreInmobiliaria"`
	Logo           string `json:"logoInmobiliaria"`
	PrimaryColor   string `json:"colorPrincipal"`
	SecondaryColor string `json:"colorSecundario"`
}

// brandingPayload sends an empty logo as null so the file relation is cleared
// instead of pointing at "".
type brandingPayload struct {
	UserID         string  `json:"user_id"`
	AgencyName     string  `json:"nombreInmobiliaria"`
	Logo           *string `json:"logoInmobiliaria"`
	PrimaryColor   string  `json:"colorPrincipal"`
	SecondaryColor string  `json:"colorSecundario"`
}

func (c *Client) brandingPath() string {
	return "/items/" + url.PathEscape(c.branding)
}

// GetBranding returns the branding owned by userID. ok is false when the user
// has none yet.
func (c *Client) GetBranding(ctx context.Context, userID string) (rec BrandingRecord, ok bool, err error) {
	q := url.Values{}
	q.Set("filter[user_id][_eq]", userID)
	q.Set("limit", "1")

	var out []BrandingRecord
	if err := c.do(ctx, request{method: http.MethodGet, path: c.brandingPath(), query: q}, nil, &out); err != nil {
		return BrandingRecord{}, false, err
	}
	if len(out) == 0 {
		return BrandingRecord{}, false, nil
	}
	return out[0], true, nil
}

// SaveBranding creates rec when it has no ID and patches it otherwise.
func (c *Client) SaveBranding(ctx context.Context, rec BrandingRecord) (BrandingRecord, error) {
	p := brandingPayload{
		UserID:         rec.UserID,
		AgencyName:     rec.AgencyName,
		PrimaryColor:   rec.PrimaryColor,
		SecondaryColor: rec.SecondaryColor,
	}
	if rec.Logo != "" {
		p.Logo = &rec.Logo
	}

	r := request{method: http.MethodPost, path: c.brandingPath()}
	if rec.ID != "" {
		r.method = http.MethodPatch
		r.path += "/" + url.PathEscape(string(rec.ID))
	}

	var out BrandingRecord
	if err := c.do(ctx, r, p, &out); err != nil {
		return BrandingRecord{}, err
	}
	return out, nil
}
