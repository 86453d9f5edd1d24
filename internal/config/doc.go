// Package config handles loading and parsing Sanctuary configuration files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/sanctuary/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/sanctuary/config.toml
//   - Actor endpoint: 127.0.0.1:4943
//   - Request timeout: 5s, poll interval: 10s
//   - Log file: ~/.local/state/sanctuary/sanctuary.log
//   - Timer lengths: 25/5/15 minute Pomodoro phases, 40 minute Animedoro study
//
// # TOML Format
//
//	api_bind = "127.0.0.1:4943"
//	request_timeout = "5s"
//	poll_interval = "10s"
//	log_file = "~/.local/state/sanctuary/sanctuary.log"
//	log_level = "info"
//
//	[timer]
//	work_minutes = 25
//	short_break_minutes = 5
//	long_break_minutes = 15
//	study_minutes = 40
//
//	[ambient]
//	player = "mpv"
//	autoplay = false
//
//	[[ambient.sounds]]
//	id = "brown-noise"
//	name = "Brown Noise"
//	url = "~/Music/brown.ogg"
//
// Every field is optional. Tilde expansion is performed on the config path
// and log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), TOML parsing errors and
// unparseable durations. Parse failures mention "parse config".
package config
