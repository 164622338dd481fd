// Package writer places converted calendars on disk or stdout.
package writer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/nibzard/rtm2ics/internal/filter"
	"github.com/nibzard/rtm2ics/internal/ical"
	"github.com/nibzard/rtm2ics/internal/rtm"
)

// Extension is appended to every per-list file name.
const Extension = ".ics"

// Stdout is the output path that selects standard output.
const Stdout = "-"

// File describes one written calendar.
type File struct {
	// Path is the written file, or Stdout.
	Path string
	// Name is the calendar name (X-WR-CALNAME).
	Name  string
	Stats filter.Stats
}

// Writer renders tasks with a converter and stores the result.
type Writer struct {
	conv   *ical.Converter
	idx    *rtm.Index
	verify bool
	stdout io.Writer
}

// Option configures a Writer.
type Option func(*Writer)

// WithVerify re-parses every calendar before it is stored.
func WithVerify(verify bool) Option {
	return func(w *Writer) {
		w.verify = verify
	}
}

// WithStdout sets the destination used for the Stdout path.
func WithStdout(out io.Writer) Option {
	return func(w *Writer) {
		if out != nil {
			w.stdout = out
		}
	}
}

// New creates a Writer. A nil converter uses ical defaults.
func New(conv *ical.Converter, idx *rtm.Index, opts ...Option) *Writer {
	if conv == nil {
		conv = ical.New()
	}
	if idx == nil {
		idx = rtm.NewIndex(nil)
	}
	w := &Writer{conv: conv, idx: idx, stdout: os.Stdout}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SanitizeFilename keeps letters, digits, spaces, '-' and '_' and replaces
// every other rune with '_'.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == ' ', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// rendered is a calendar that passed rendering and is ready to be written.
type rendered struct {
	file File
	data []byte
}

// WriteGroups writes one calendar file per group into dir, creating dir if
// needed. Names that sanitize to the same file get a numeric suffix.
// Every group is rendered first; nothing is written if any group fails.
func (w *Writer) WriteGroups(dir string, groups []filter.Group) ([]File, error) {
	used := make(map[string]bool)
	pending := make([]rendered, 0, len(groups))
	for _, g := range groups {
		base := SanitizeFilename(g.Name)
		if base == "" {
			base = "_"
		}
		fileName := base + Extension
		for n := 2; used[strings.ToLower(fileName)]; n++ {
			fileName = fmt.Sprintf("%s_%d%s", base, n, Extension)
		}
		used[strings.ToLower(fileName)] = true

		path := filepath.Join(dir, fileName)
		data, err := w.render(g.Name, g.Tasks)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", g.Name, err)
		}
		pending = append(pending, rendered{
			file: File{Path: path, Name: g.Name, Stats: filter.Count(g.Tasks)},
			data: data,
		})
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	files := make([]File, 0, len(pending))
	for _, r := range pending {
		if err := os.WriteFile(r.file.Path, r.data, 0644); err != nil {
			return files, fmt.Errorf("write %s: %w", r.file.Path, err)
		}
		files = append(files, r.file)
	}
	return files, nil
}

// WriteSingle writes every task into one calendar at path. The Stdout path
// writes to the configured stdout instead of a file.
func (w *Writer) WriteSingle(path, name string, tasks []rtm.Task) (File, error) {
	if name == "" {
		name = ical.DefaultCalendarName
	}
	file := File{Path: path, Name: name, Stats: filter.Count(tasks)}

	data, err := w.render(name, tasks)
	if err != nil {
		return file, err
	}

	if path == Stdout {
		if _, err := w.stdout.Write(data); err != nil {
			return file, fmt.Errorf("write stdout: %w", err)
		}
		return file, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return file, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return file, fmt.Errorf("write %s: %w", path, err)
	}
	return file, nil
}

func (w *Writer) render(name string, tasks []rtm.Task) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.conv.WriteCalendar(&buf, name, tasks, w.idx); err != nil {
		return nil, err
	}
	if w.verify {
		result, err := ical.Verify(buf.String())
		if err != nil {
			return nil, fmt.Errorf("verify calendar: %w", err)
		}
		if result.Todos != len(tasks) {
			return nil, fmt.Errorf("verify calendar: parsed %d todos, want %d", result.Todos, len(tasks))
		}
	}
	return buf.Bytes(), nil
}
