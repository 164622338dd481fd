package config

import (
	"path/filepath"
	"time"

	"github.com/nibzard/rtm2ics/internal/filter"
	"github.com/nibzard/rtm2ics/internal/writer"
)

// Stdout is the output_file value that selects standard output.
const Stdout = writer.Stdout

// Location returns the zone dates are rendered in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// FilterOptions returns the selection rules configured in c.
func (c *Config) FilterOptions() filter.Options {
	return filter.Options{
		IncompleteOnly:      c.IncompleteOnly,
		SkipCompletedBefore: c.skipBefore,
		Lists:               append([]string(nil), c.Lists...),
		ExcludeLists:        append([]string(nil), c.ExcludeLists...),
	}
}

// SingleOutput reports whether all tasks go into one calendar.
func (c *Config) SingleOutput() bool {
	return c.OutputFile != "" || !c.SplitByList
}

// SetOutputDir sets output_dir from a command-line positional, expanding it
// the same way as the key and flag.
func (c *Config) SetOutputDir(dir string) {
	c.OutputDir = expandPath(dir)
}

// OutputDirFor returns the per-list output directory for an export at
// inputPath: the configured output_dir, or the export's own directory.
func (c *Config) OutputDirFor(inputPath string) string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Dir(inputPath)
}

// OutputFileFor returns the combined calendar path for an export at
// inputPath. Without output_file it is <calendar name>.ics in the output
// directory.
func (c *Config) OutputFileFor(inputPath string) string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	name := writer.SanitizeFilename(c.CalendarName)
	if name == "" {
		name = appName
	}
	return filepath.Join(c.OutputDirFor(inputPath), name+writer.Extension)
}
