package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the rentkeeper client.
type Config struct {
	BackendURL          string
	StatePath           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	LogJSON             bool

	// RegistrationToken authorizes sign-ups; empty disables "register".
	RegistrationToken   string
	ContractsCollection string
	BrandingCollection  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:8055"
	c.StatePath = "~/.rentkeeper/state.db"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "warn"
	c.LogJSON = false
	c.RegistrationToken = ""
	c.ContractsCollection = "Contratos"
	c.BrandingCollection = "Usuarios"
}

// LoadConfig reads .env, the environment, the JSON file and os.Args.
func LoadConfig() (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	return Load(os.Args[1:], os.LookupEnv)
}

// Load builds a Config from defaults, lookup (environment), the JSON file
// named in args and finally the flags in args.
func Load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.BackendURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("backend url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("backend url %q: scheme must be http or https", c.BackendURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("backend url %q: missing host", c.BackendURL))
	}
	if c.StatePath == "" {
		errs = append(errs, errors.New("state path is empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval))
	}
	if c.ContractsCollection == "" || c.BrandingCollection == "" {
		errs = append(errs, errors.New("collection names must not be empty"))
	}
	return errors.Join(errs...)
}
