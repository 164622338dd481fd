package config

import (
	"flag"
	"strings"

	"github.com/nibzard/rtm2ics/internal/utils"
)

// listValue is a comma-separated flag.Value bound to a string slice.
type listValue struct {
	target *[]string
}

func (v listValue) String() string {
	if v.target == nil {
		return ""
	}
	return strings.Join(*v.target, ",")
}

func (v listValue) Set(s string) error {
	*v.target = utils.SplitAndTrim(s, ",")
	return nil
}

// flagToSource maps flag names to source field names.
var flagToSource = map[string]string{
	"output-dir":            "output_dir",
	"output":                "output_file",
	"o":                     "output_file",
	"name":                  "calendar_name",
	"split":                 "split_by_list",
	"timezone":              "timezone",
	"incomplete-only":       "incomplete_only",
	"skip-completed-before": "skip_completed_before",
	"lists":                 "lists",
	"exclude-lists":         "exclude_lists",
	"strict":                "strict",
	"verify":                "verify",
	"log-level":             "log_level",
	"log-format":            "log_format",
	"log-timestamps":        "log_timestamps",
	"log-caller":            "log_caller",
}

// parseFlags defines CLI flags on fs, parses args and records flag sources.
// Flags may appear before, between or after positional arguments; the
// positional arguments end up in cfg.Args.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}

	// Output
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory for per-list .ics files (default: next to the export)")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Write one combined calendar to this file (- for stdout)")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "Shorthand for -output")
	fs.StringVar(&cfg.CalendarName, "name", cfg.CalendarName, "Calendar name for combined output")
	fs.BoolVar(&cfg.SplitByList, "split", cfg.SplitByList, "Write one calendar per list")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA timezone for rendered dates (default: local)")

	// Filters
	fs.BoolVar(&cfg.IncompleteOnly, "incomplete-only", cfg.IncompleteOnly, "Only convert incomplete tasks")
	fs.StringVar(&cfg.SkipCompletedBefore, "skip-completed-before", cfg.SkipCompletedBefore, "Skip tasks completed before DATE (YYYY-MM-DD)")
	fs.Var(listValue{&cfg.Lists}, "lists", "Only convert these lists (comma-separated)")
	fs.Var(listValue{&cfg.ExcludeLists}, "exclude-lists", "Skip these lists (comma-separated)")

	// Checks
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Validate the export against the JSON schema first")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "Re-parse every calendar before writing it")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	cfg.Args = positional

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if fieldName, ok := flagToSource[f.Name]; ok {
				sources[fieldName] = SourceFlag
			}
		})
	}
	return nil
}

// parseInterspersed parses args with fs, collecting positional arguments
// found between flags. Everything after a bare "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
