// Package config loads pantry's runtime configuration.
//
// # Resolution Order
//
// Load builds a Config in layers, each overriding the previous:
//
//  1. Built-in defaults (Default)
//  2. The TOML file at the given path, or ~/.config/pantry/config.toml
//  3. PANTRY_API_URL, PANTRY_LOG_LEVEL and PANTRY_LOG_FILE from the environment
//
// A missing config file is not an error. Empty string fields in the file are
// ignored so that a partially filled file still works. LoadDotEnv can seed the
// environment from a .env file before Load runs; it never overrides variables
// that are already set.
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8000/v1"
//	catalog_prefix = "/fridge2fork/v1"
//	timeout_seconds = 10
//	cooldown_ms = 3000
//	requests_per_second = 10   # 0 disables client-side rate limiting
//	request_burst = 20
//	refresh_seconds = 30       # must be between 5 and 300
//	auto_refresh = true
//	page_size = 20             # 1..100
//	log_file = "~/.local/state/pantry/pantry.log"
//	log_level = "info"
//
// Tilde paths are expanded and relative paths made absolute.
//
// # Validation
//
// Validate rejects refresh intervals outside the scheduler's bounds, page
// sizes the backend would refuse, negative request rates and log levels
// zerolog does not recognise. Load returns these errors so that a bad file
// fails at startup instead of surfacing as odd behaviour later.
package config
