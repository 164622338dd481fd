// Package cmd implements the CLI command structure for rtm2ics.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/rtm2ics/internal/config"
	"github.com/nibzard/rtm2ics/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the rtm2ics CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("rtm2ics", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.NewFromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	for _, path := range cws.Files {
		logger.Debug("Loaded config file", "path", path)
	}

	// Determine the subcommand
	// If the first positional is not a command, it is the export for convert
	subcommand := "convert"
	remainingArgs := cfg.Args
	if len(remainingArgs) > 0 && isCommand(remainingArgs[0]) {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "convert":
		if len(remainingArgs) > 0 && !isExistingFile(remainingArgs[0]) && !strings.HasSuffix(strings.ToLower(remainingArgs[0]), ".json") {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", remainingArgs[0])
			printUsage(fs, os.Stderr)
			return fmt.Errorf("unknown command: %s", remainingArgs[0])
		}
		return convertCommand(ctx, cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "lists":
		return listsCommand(cfg, logger, remainingArgs)
	case "validate":
		return validateCommand(logger, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	}
	return fmt.Errorf("unknown command: %s", subcommand)
}

var commands = map[string]bool{
	"convert":  true,
	"tui":      true,
	"lists":    true,
	"validate": true,
	"config":   true,
	"version":  true,
	"help":     true,
}

func isCommand(name string) bool {
	return commands[name]
}

func isExistingFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// configCommand prints the effective configuration.
//
//	rtm2ics config           effective config as TOML
//	rtm2ics config sources   where each value came from
//	rtm2ics config example   commented example file
func configCommand(cws *config.ConfigWithSources, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	mode := ""
	if len(args) == 1 {
		mode = args[0]
	}

	switch mode {
	case "":
		if path := cws.GetConfigFile(); path != "" {
			fmt.Fprintf(os.Stdout, "# Config file: %s\n", path)
		}
		return config.Encode(os.Stdout, cws.Config)
	case "sources":
		fields := make([]string, 0, len(cws.Sources))
		width := 0
		for field := range cws.Sources {
			fields = append(fields, field)
			if len(field) > width {
				width = len(field)
			}
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(os.Stdout, "%-*s  %s\n", width, field, cws.Sources[field])
		}
		return nil
	case "example":
		fmt.Fprint(os.Stdout, config.ExampleConfig())
		return nil
	default:
		return fmt.Errorf("unknown config mode %q (want sources or example)", mode)
	}
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("rtm2ics version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "rtm2ics - Convert Remember The Milk exports to iCalendar tasks for Nextcloud")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  rtm2ics [options] <export.json> [output_dir]")
	fmt.Fprintln(w, "  rtm2ics <command> [options] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert <file> [dir]  Convert an export (default command)")
	fmt.Fprintln(w, "  tui <file> [dir]      Pick lists and filters interactively, then convert")
	fmt.Fprintln(w, "  lists <file>          Show the lists of an export with task counts")
	fmt.Fprintln(w, "  validate <file>       Check an export against the export schema")
	fmt.Fprintln(w, "  config [mode]         Show effective config (modes: sources, example)")
	fmt.Fprintln(w, "  version               Show version information")
	fmt.Fprintln(w, "  help                  Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  rtm2ics rtm_export.json")
	fmt.Fprintln(w, "  rtm2ics rtm_export.json --incomplete-only")
	fmt.Fprintln(w, "  rtm2ics rtm_export.json --skip-completed-before 2020-01-01")
	fmt.Fprintln(w, "  rtm2ics rtm_export.json --lists \"Personal,Work,Shopping\"")
	fmt.Fprintln(w, "  rtm2ics rtm_export.json --exclude-lists \"Archive,Someday\"")
	fmt.Fprintln(w, "  rtm2ics rtm_export.json output/ --incomplete-only --lists \"Personal,Work\"")
	fmt.Fprintln(w, "  rtm2ics rtm_export.json -o - > tasks.ics")
}

// logLines logs each line at info level.
func logLines(logger *log.Logger, lines ...string) {
	for _, line := range lines {
		logger.Info(line)
	}
}
