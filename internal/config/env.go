package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/rtm2ics/internal/utils"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RTM2ICS_"

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}
	str := func(name string, target *string, field string) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*target = v
			set(field)
		}
	}
	list := func(name string, target *[]string, field string) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*target = utils.SplitAndTrim(v, ",")
			set(field)
		}
	}
	var boolErr error
	boolean := func(name string, target *bool, field string) {
		v := os.Getenv(EnvPrefix + name)
		if v == "" {
			return
		}
		b, ok := boolFromString(v)
		if !ok {
			if boolErr == nil {
				boolErr = fmt.Errorf("%s%s: invalid boolean %q", EnvPrefix, name, v)
			}
			return
		}
		*target = b
		set(field)
	}

	str("OUTPUT_DIR", &cfg.OutputDir, "output_dir")
	str("OUTPUT_FILE", &cfg.OutputFile, "output_file")
	str("CALENDAR_NAME", &cfg.CalendarName, "calendar_name")
	boolean("SPLIT_BY_LIST", &cfg.SplitByList, "split_by_list")
	str("TIMEZONE", &cfg.Timezone, "timezone")

	boolean("INCOMPLETE_ONLY", &cfg.IncompleteOnly, "incomplete_only")
	str("SKIP_COMPLETED_BEFORE", &cfg.SkipCompletedBefore, "skip_completed_before")
	list("LISTS", &cfg.Lists, "lists")
	list("EXCLUDE_LISTS", &cfg.ExcludeLists, "exclude_lists")

	boolean("STRICT", &cfg.Strict, "strict")
	boolean("VERIFY", &cfg.Verify, "verify")

	// Logging configuration
	str("LOG_LEVEL", &cfg.LogLevel, "log_level")
	str("LOG_FORMAT", &cfg.LogFormat, "log_format")
	boolean("LOG_TIMESTAMPS", &cfg.LogTimestamps, "log_timestamps")
	boolean("LOG_CALLER", &cfg.LogCaller, "log_caller")

	return boolErr
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
