package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/rtm2ics/internal/config"
	"github.com/nibzard/rtm2ics/internal/filter"
	"github.com/nibzard/rtm2ics/internal/ical"
	"github.com/nibzard/rtm2ics/internal/logging"
	"github.com/nibzard/rtm2ics/internal/rtm"
	"github.com/nibzard/rtm2ics/internal/ui"
	"github.com/nibzard/rtm2ics/internal/writer"
)

// errMissingExport is returned when no export file is given.
var errMissingExport = errors.New("missing export file (usage: rtm2ics <export.json> [output_dir])")

// loadedExport is a decoded export ready for conversion.
type loadedExport struct {
	path string
	exp  *rtm.Export
	idx  *rtm.Index
}

// exportArgs resolves <export.json> [output_dir] into the input path and
// applies the optional output directory to cfg.
func exportArgs(cfg *config.Config, args []string, allowOutput bool) (string, error) {
	limit := 1
	if allowOutput {
		limit = 2
	}
	if len(args) == 0 {
		return "", errMissingExport
	}
	if len(args) > limit {
		return "", fmt.Errorf("unexpected arguments: %v", args[limit:])
	}
	if len(args) == 2 {
		cfg.SetOutputDir(args[1])
	}
	return args[0], nil
}

// loadExport reads, optionally validates, and decodes the export at path.
func loadExport(cfg *config.Config, logger *log.Logger, path string) (*loadedExport, error) {
	logger.Info("Reading RTM export", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}

	if cfg.Strict {
		if err := validateData(logger, path, data); err != nil {
			return nil, err
		}
	}

	exp, err := rtm.ParseBytes(data, rtm.WithWarnings(logging.WarnFunc(logger)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Decoded export", "tasks", len(exp.Tasks), "lists", len(exp.Lists), "notes", len(exp.Notes))
	return &loadedExport{path: path, exp: exp, idx: rtm.NewIndex(exp)}, nil
}

// validateData checks data against the export schema and logs every violation.
func validateData(logger *log.Logger, path string, data []byte) error {
	result, err := rtm.ValidateJSON(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if result.Valid {
		return nil
	}
	for _, verr := range result.Errors {
		logger.Error("Schema violation", "error", verr)
	}
	return fmt.Errorf("%s: export does not match schema (%d errors)", path, len(result.Errors))
}

// convertCommand converts an export with the configured filters.
func convertCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	path, err := exportArgs(cfg, args, true)
	if err != nil {
		return err
	}
	in, err := loadExport(cfg, logger, path)
	if err != nil {
		return err
	}
	return convert(ctx, cfg, logger, in, cfg.FilterOptions())
}

// tuiCommand lets the user pick lists and filters, then converts.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	path, err := exportArgs(cfg, args, true)
	if err != nil {
		return err
	}
	in, err := loadExport(cfg, logger, path)
	if err != nil {
		return err
	}

	output := cfg.OutputDirFor(in.path)
	if cfg.SingleOutput() {
		output = cfg.OutputFileFor(in.path)
	}
	if abs, err := filepath.Abs(output); err == nil && output != config.Stdout {
		output = abs
	}

	sel, err := ui.Run(ctx, in.exp.ListTaskCounts(in.idx),
		ui.WithPaths(filepath.Base(in.path), output),
		ui.WithInitial(cfg.FilterOptions()),
		ui.WithLocation(cfg.Location()),
	)
	if err != nil {
		return err
	}
	if sel == nil {
		logger.Info("Cancelled, nothing written")
		return nil
	}
	return convert(ctx, cfg, logger, in, sel.Options())
}

// convert filters, groups and writes the tasks of in.
func convert(ctx context.Context, cfg *config.Config, logger *log.Logger, in *loadedExport, opts filter.Options) error {
	if opts.Active() {
		logger.Info("Active filters")
		for _, line := range opts.Describe() {
			logger.Info("  - " + line)
		}
	}

	result := filter.NewSelector(in.idx, opts, cfg.Location()).Apply(in.exp.Tasks)
	if result.Filtered > 0 {
		logger.Info("Filtered out tasks", "count", result.Filtered)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	conv := ical.New(ical.WithLocation(cfg.Location()))
	w := writer.New(conv, in.idx, writer.WithVerify(cfg.Verify))

	logger.Info("Converting tasks to VCALENDAR/VTODO format")
	for i := range result.Selected {
		t := &result.Selected[i]
		logger.Debug("Task", "uid", ical.UID(t.ID), "list", in.idx.DisplayName(t.ListID), "completed", t.IsCompleted())
	}

	var files []writer.File
	if cfg.SingleOutput() {
		f, err := w.WriteSingle(cfg.OutputFileFor(in.path), cfg.CalendarName, result.Selected)
		if err != nil {
			return err
		}
		files = append(files, f)
	} else {
		written, err := w.WriteGroups(cfg.OutputDirFor(in.path), result.Groups)
		if err != nil {
			return err
		}
		files = written
	}

	var total filter.Stats
	for _, f := range files {
		total.Add(f.Stats)
		logger.Info(f.Name, "tasks", f.Stats.Total, "file", displayPath(f.Path))
	}

	logger.Info("Conversion complete",
		"tasks", total.Total,
		"incomplete", total.Incomplete,
		"completed", total.Completed,
		"files", len(files),
	)
	if cfg.SingleOutput() && cfg.OutputFile == config.Stdout {
		return nil
	}
	dir := cfg.OutputDirFor(in.path)
	if cfg.SingleOutput() {
		dir = filepath.Dir(cfg.OutputFileFor(in.path))
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	logger.Info("Output directory", "path", dir)
	logLines(logger,
		"Import these files into Nextcloud Tasks via:",
		"  Calendar app → Settings & Import → Import Calendar",
	)
	if !cfg.SingleOutput() {
		logger.Info("  (Import each .ics file separately to create separate task lists)")
	}
	return nil
}

func displayPath(path string) string {
	if path == writer.Stdout {
		return "stdout"
	}
	return filepath.Base(path)
}

// listsCommand prints every list of an export with its task counts.
func listsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	path, err := exportArgs(cfg, args, false)
	if err != nil {
		return err
	}
	in, err := loadExport(cfg, logger, path)
	if err != nil {
		return err
	}

	counts := in.exp.ListTaskCounts(in.idx)
	width := 0
	for _, c := range counts {
		if len(c.Name) > width {
			width = len(c.Name)
		}
	}
	for _, c := range counts {
		fmt.Fprintf(os.Stdout, "%-*s  %d tasks: %d incomplete, %d completed\n",
			width, c.Name, c.Total, c.Incomplete, c.Completed)
	}
	return nil
}

// validateCommand checks an export against the schema and decodes it.
func validateCommand(logger *log.Logger, args []string) error {
	if len(args) == 0 {
		return errMissingExport
	}
	var failed int
	for _, path := range args {
		if err := validateFile(logger, path); err != nil {
			logger.Error("Invalid export", "path", path, "error", err)
			failed++
			continue
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d exports invalid", failed, len(args))
	}
	return nil
}

func validateFile(logger *log.Logger, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read export file: %w", err)
	}
	if err := validateData(logger, path, data); err != nil {
		return err
	}
	exp, err := rtm.ParseBytes(data, rtm.WithWarnings(logging.WarnFunc(logger)))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s: valid (%d tasks, %d lists, %d notes)\n",
		path, len(exp.Tasks), len(exp.Lists), len(exp.Notes))
	return nil
}
