// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.rtm2ics/rtm2ics.toml or OS-specific config directory)
// 3. Project config file (rtm2ics.toml or .rtm2ics.toml in the current directory)
// 4. Environment variables (RTM2ICS_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.rtm2ics/rtm2ics.toml (preferred)
// - Windows: %APPDATA%\rtm2ics\rtm2ics.toml
// - macOS: ~/Library/Application Support/rtm2ics/rtm2ics.toml
// - Linux/BSD: $XDG_CONFIG_HOME/rtm2ics/rtm2ics.toml or ~/.config/rtm2ics/rtm2ics.toml
//
// Project-level config locations (overrides user config):
// - ./rtm2ics.toml (preferred)
// - ./.rtm2ics.toml
package config
