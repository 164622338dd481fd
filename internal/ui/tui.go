// Package ui provides the interactive list selector.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/rtm2ics/internal/filter"
	"github.com/nibzard/rtm2ics/internal/rtm"
	"github.com/nibzard/rtm2ics/internal/utils"
)

// ErrNoTTY is returned by Run when stdout is not a terminal.
var ErrNoTTY = errors.New("tui requires a TTY")

// Selection is what the user chose before converting.
type Selection struct {
	// Lists holds the selected list names, or nil when every list is selected.
	Lists               []string
	IncompleteOnly      bool
	SkipCompletedBefore time.Time
}

// Options returns the selection as filter options.
func (s Selection) Options() filter.Options {
	return filter.Options{
		IncompleteOnly:      s.IncompleteOnly,
		SkipCompletedBefore: s.SkipCompletedBefore,
		Lists:               append([]string(nil), s.Lists...),
	}
}

// TUIOption configures the selector.
type TUIOption func(*Model)

// WithPaths shows the input file and output location in the header.
func WithPaths(input, output string) TUIOption {
	return func(m *Model) {
		m.inputPath = input
		m.outputPath = output
	}
}

// WithInitial preselects filters, typically from configuration.
func WithInitial(opts filter.Options) TUIOption {
	return func(m *Model) {
		m.incompleteOnly = opts.IncompleteOnly
		if !opts.SkipCompletedBefore.IsZero() {
			m.dateInput = opts.SkipCompletedBefore.Format(filter.DateLayout)
		}
		if len(opts.Lists) > 0 || len(opts.ExcludeLists) > 0 {
			for i := range m.items {
				name := m.items[i].count.Name
				m.items[i].selected = (len(opts.Lists) == 0 || utils.ContainsTrimmed(opts.Lists, name)) &&
					!utils.ContainsTrimmed(opts.ExcludeLists, name)
			}
		}
	}
}

// WithLocation sets the zone the skip date is parsed in.
func WithLocation(loc *time.Location) TUIOption {
	return func(m *Model) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// Run shows the selector and returns the selection, or nil when the user
// quit without converting.
func Run(ctx context.Context, counts []rtm.ListCount, opts ...TUIOption) (*Selection, error) {
	if !utils.IsTTY(os.Stdout) {
		return nil, ErrNoTTY
	}
	model := NewModel(counts, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := finalModel.(*Model); ok {
		return m.Selection(), nil
	}
	return nil, nil
}

type listItem struct {
	count    rtm.ListCount
	selected bool
}

// Model is the bubbletea model of the selector.
type Model struct {
	items          []listItem
	cursor         int
	incompleteOnly bool
	dateInput      string
	editingDate    bool
	errMsg         string
	inputPath      string
	outputPath     string
	loc            *time.Location
	selection      *Selection
	quitting       bool
}

// NewModel creates a selector over counts with every list selected.
// counts are shown in the given order.
func NewModel(counts []rtm.ListCount, opts ...TUIOption) *Model {
	m := &Model{loc: time.Local}
	for _, c := range counts {
		m.items = append(m.items, listItem{count: c, selected: true})
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Selection returns the confirmed selection, or nil.
func (m *Model) Selection() *Selection {
	return m.selection
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.editingDate {
		m.updateDate(key)
		return m, nil
	}

	switch key.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ", "space", "x":
		if len(m.items) > 0 {
			m.items[m.cursor].selected = !m.items[m.cursor].selected
		}
		m.errMsg = ""
	case "a":
		m.setAll(true)
	case "n":
		m.setAll(false)
	case "i":
		m.incompleteOnly = !m.incompleteOnly
	case "d":
		m.editingDate = true
		m.errMsg = ""
	case "c", "enter":
		if sel, problem := m.confirm(); problem != "" {
			m.errMsg = problem
		} else {
			m.selection = sel
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updateDate(key tea.KeyMsg) {
	switch key.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.editingDate = false
	case tea.KeyBackspace:
		if n := len(m.dateInput); n > 0 {
			m.dateInput = m.dateInput[:n-1]
		}
	case tea.KeyRunes:
		for _, r := range key.Runes {
			if (r >= '0' && r <= '9') || r == '-' {
				if len(m.dateInput) < len(filter.DateLayout) {
					m.dateInput += string(r)
				}
			}
		}
	}
}

func (m *Model) setAll(selected bool) {
	for i := range m.items {
		m.items[i].selected = selected
	}
	m.errMsg = ""
}

// confirm builds the selection, or returns a message explaining why it
// cannot be built.
func (m *Model) confirm() (*Selection, string) {
	sel := &Selection{IncompleteOnly: m.incompleteOnly}

	var names []string
	for _, item := range m.items {
		if item.selected {
			names = append(names, item.count.Name)
		}
	}
	if len(names) == 0 {
		return nil, "No lists selected!"
	}
	if len(names) < len(m.items) {
		sel.Lists = names
	}

	if s := strings.TrimSpace(m.dateInput); s != "" {
		t, err := filter.ParseDate(s, m.loc)
		if err != nil {
			return nil, "Invalid date format! Use YYYY-MM-DD"
		}
		sel.SkipCompletedBefore = t
	}
	return sel, ""
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func (m *Model) View() string {
	if m.quitting || m.selection != nil {
		return ""
	}
	var b strings.Builder
	writeTitle(&b)
	writePaths(&b, m.inputPath, m.outputPath)
	writeLists(&b, m.items, m.cursor)
	writeFilters(&b, m.incompleteOnly, m.dateInput, m.editingDate)
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n\n")
	}
	writeFooter(&b, m.editingDate)
	return b.String()
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("RTM to Nextcloud Tasks Converter") + "\n\n")
}

func writePaths(b *strings.Builder, input, output string) {
	if input != "" {
		b.WriteString(sectionStyle.Render("Input file:") + "\n")
		b.WriteString("  " + input + "\n")
	}
	if output != "" {
		b.WriteString(sectionStyle.Render("Output:") + "\n")
		b.WriteString("  " + output + "\n")
	}
	if input != "" || output != "" {
		b.WriteString("\n")
	}
}

func writeLists(b *strings.Builder, items []listItem, cursor int) {
	b.WriteString(sectionStyle.Render("Select lists to convert:") + "\n")
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  No lists with tasks.") + "\n\n")
		return
	}
	for i, item := range items {
		pointer := "  "
		if i == cursor {
			pointer = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", pointer, checkbox(item.selected), item.count.Name,
			dimStyle.Render(formatCounts(item.count))))
	}
	b.WriteString("\n")
}

func writeFilters(b *strings.Builder, incompleteOnly bool, date string, editing bool) {
	b.WriteString(sectionStyle.Render("Filters:") + "\n")
	b.WriteString(fmt.Sprintf("  %s Incomplete tasks only\n", checkbox(incompleteOnly)))
	value := date
	if value == "" && !editing {
		value = dimStyle.Render("YYYY-MM-DD")
	}
	if editing {
		value = cursorStyle.Render(value + "_")
	}
	b.WriteString("  Skip completed before: " + value + "\n\n")
}

func writeFooter(b *strings.Builder, editing bool) {
	if editing {
		b.WriteString(dimStyle.Render("Type a date | backspace delete | enter/esc done") + "\n")
		return
	}
	b.WriteString(dimStyle.Render("j/k move | space toggle | a all | n none | i incomplete only | d date | c convert | q quit") + "\n")
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func formatCounts(c rtm.ListCount) string {
	return fmt.Sprintf("(%d tasks: %d incomplete, %d completed)", c.Total, c.Incomplete, c.Completed)
}
