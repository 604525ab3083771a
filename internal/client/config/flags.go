package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/flagx"
)

// Flags understood by parseFlags. Everything else in args belongs to the
// command line front end.
var (
	valueFlags = []string{"-a", "-d", "-r", "-i", "-l", "-c", "-config", "--config"}
	boolFlags  = []string{"-j"}
)

// StripArgs removes the config flags, -c/-config included, from args and
// returns what is left for the command front end.
func StripArgs(args []string) []string {
	_, rest := flagx.Split(args, valueFlags, boolFlags)
	return rest
}

// parseFlags overlays cfg with the command-line flags in args.
func parseFlags(cfg *Config, args []string) error {
	args, _ = flagx.Split(args, valueFlags, boolFlags)

	fs := flag.NewFlagSet("rentkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.StatePath, "d", cfg.StatePath, "local state database path")
	timeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.LogJSON, "j", cfg.LogJSON, "log as JSON")
	// parsed by parseJson; declared so Parse accepts them
	fs.String("c", "", "path to config file")
	fs.String("config", "", "path to config file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "r":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
