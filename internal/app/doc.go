// Package app is the composition root for pantry.
//
// # Startup
//
//  1. Load a .env file when present (config.LoadDotEnv)
//  2. Load ~/.config/pantry/config.toml and apply environment overrides
//  3. Load ~/.config/pantry/prefs.toml
//  4. Open the log file; the TUI owns the terminal
//  5. Build one reachability gate and the API client that shares it
//  6. Run the TUI until the user quits or the context is cancelled
//
// The system view's refresh interval comes from config, then prefs, then the
// --poll flag, each overriding the one before.
//
// # Check
//
// Check runs the overview reads once against the configured backend and
// prints one row per read. An unreachable backend produces a report with
// fallback rows rather than an error; callers use the degraded result to set
// an exit code.
//
// # Errors
//
// Config, env file and logging problems are returned from Run and Check.
// Backend problems never are: they show up in the UI or the report.
package app
