package config

import "time"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultCalendarName = "RTM Tasks"
	DefaultSplitByList  = true
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for rtm2ics.
type Config struct {
	// Output
	OutputDir    string `toml:"output_dir"`
	OutputFile   string `toml:"output_file"`
	CalendarName string `toml:"calendar_name"`
	SplitByList  bool   `toml:"split_by_list"`

	// Timezone names the IANA zone dates are rendered in; empty means local.
	Timezone string `toml:"timezone"`

	// Filters
	IncompleteOnly      bool     `toml:"incomplete_only"`
	SkipCompletedBefore string   `toml:"skip_completed_before"`
	Lists               []string `toml:"lists"`
	ExcludeLists        []string `toml:"exclude_lists"`

	// Checks
	Strict bool `toml:"strict"`
	Verify bool `toml:"verify"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Args holds the positional arguments left after flag parsing.
	Args []string `toml:"-"`

	// Computed by finalizeConfig.
	location   *time.Location
	skipBefore time.Time
}
