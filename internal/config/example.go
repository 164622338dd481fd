package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# rtm2ics configuration file
# Values can be overridden by RTM2ICS_* environment variables or CLI flags

# Directory for per-list .ics files (default: the export's directory)
# output_dir = "~/calendars"

# Write one combined calendar instead (use "-" for stdout)
# output_file = "rtm.ics"

# Calendar name used for combined output
calendar_name = "RTM Tasks"

# One calendar per RTM list
split_by_list = true

# IANA timezone for rendered dates (empty: local time)
# timezone = "Europe/Berlin"

# Filters
incomplete_only = false
# skip_completed_before = "2020-01-01"
# lists = ["Personal", "Work"]
# exclude_lists = ["Archive"]

# Validate the export against the JSON schema before converting
strict = false

# Re-parse each calendar before writing it
verify = false

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
