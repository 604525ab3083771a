// Package config loads runtime configuration for the rentkeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed RENTKEEPER_, optionally seeded from a
//     .env file in the working directory (see LoadDotEnv).
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   path of the local state database
//	-r int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-l string   log level: debug, info, warn, error
//	-j          log as JSON
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds. Absent keys leave earlier values alone:
//
//	{
//	  "backend_url": "https://cms.example.com",
//	  "state_path": "~/.rentkeeper/state.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "log_level": "info",
//	  "log_json": false,
//	  "registration_token": "…",
//	  "contracts_collection": "Contratos",
//	  "branding_collection": "Usuarios"
//	}
//
// The registration token is deliberately not a flag so it does not show up
// in process listings.
package config
