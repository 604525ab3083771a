// Package branding holds an agency's visual identity and resolves the theme
// shown by the client.
package branding

import (
	"net/url"
	"strings"
)

const (
	DefaultAgencyName     = "Inmobiliaria App"
	DefaultPrimaryColor   = "#4f46e5"
	DefaultSecondaryColor = "#f9fafb"

	// DefaultAccentColor is the header's secondary color when none is set.
	DefaultAccentColor = "#818cf8"

	StockLogoURL = "https://tailwindcss.com/plus-assets/img/logos/mark.svg?color=indigo&shade=500"
)

// Branding is the per-user customization record.
type Branding struct {
	ID             string `json:"id,omitempty"`
	AgencyName     string `json:"agency_name,omitempty"`
	LogoFileID     string `json:"logo_file_id,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

// Theme is a fully resolved Branding: every field has a value.
type Theme struct {
	AgencyName     string
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
}

// IsComplete reports whether both colors were chosen. Users with an
// incomplete branding are asked to customize after login.
func (b Branding) IsComplete() bool {
	return b.PrimaryColor != "" && b.SecondaryColor != ""
}

// WithFormDefaults fills the colors the customization form starts from.
func (b Branding) WithFormDefaults() Branding {
	if b.PrimaryColor == "" {
		b.PrimaryColor = DefaultPrimaryColor
	}
	if b.SecondaryColor == "" {
		b.SecondaryColor = DefaultSecondaryColor
	}
	return b
}

// LogoURL is the public address of the logo, or the stock logo when none was
// uploaded.
func (b Branding) LogoURL(backendURL string) string {
	if b.LogoFileID == "" {
		return StockLogoURL
	}
	return strings.TrimRight(backendURL, "/") + "/assets/" + url.PathEscape(b.LogoFileID)
}

// Theme resolves b against the defaults.
func (b Branding) Theme(backendURL string) Theme {
	t := Theme{
		AgencyName:     b.AgencyName,
		LogoURL:        b.LogoURL(backendURL),
		PrimaryColor:   b.PrimaryColor,
		SecondaryColor: b.SecondaryColor,
	}
	if t.AgencyName == "" {
		t.AgencyName = DefaultAgencyName
	}
	if t.PrimaryColor == "" {
		t.PrimaryColor = DefaultPrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = DefaultAccentColor
	}
	return t
}
