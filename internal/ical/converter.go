package ical

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/rtm2ics/internal/rtm"
)

const (
	// DefaultProdID identifies the producer in the PRODID property.
	DefaultProdID = "-//RTM to Nextcloud Converter//EN"
	// DefaultCalendarName is used when no calendar name is given.
	DefaultCalendarName = "RTM Tasks"
	// UIDPrefix namespaces task ids in UID and RELATED-TO.
	UIDPrefix = "rtm-"
	// UntitledSummary replaces a missing or empty task name.
	UntitledSummary = "Untitled Task"

	crlf = "\r\n"
)

// Option configures a Converter.
type Option func(*Converter)

// WithLocation sets the zone used to render timestamps.
// The default is the local zone of the host.
func WithLocation(loc *time.Location) Option {
	return func(c *Converter) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithProdID overrides the PRODID property.
func WithProdID(prodID string) Option {
	return func(c *Converter) {
		if prodID != "" {
			c.prodID = prodID
		}
	}
}

// Converter turns RTM tasks into VTODO components.
// It holds no per-conversion state and may be reused.
type Converter struct {
	loc    *time.Location
	prodID string
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		loc:    time.Local,
		prodID: DefaultProdID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the zone timestamps are rendered in.
func (c *Converter) Location() *time.Location {
	return c.loc
}

// UID returns the calendar UID for an RTM task id.
func UID(id rtm.ID) string {
	return UIDPrefix + string(id)
}

// Todo renders task as the content lines of one VTODO, BEGIN and END included.
func (c *Converter) Todo(task *rtm.Task, idx *rtm.Index) []string {
	if idx == nil {
		idx = rtm.NewIndex(nil)
	}
	lines := make([]string, 0, 16)
	lines = append(lines, "BEGIN:VTODO")
	lines = append(lines, "UID:"+UID(task.ID))

	if !task.ParentID.IsZero() {
		lines = append(lines, "RELATED-TO:"+UID(task.ParentID))
	}

	summary := task.Name
	if summary == "" {
		summary = UntitledSummary
	}
	lines = append(lines, "SUMMARY:"+Escape(summary))

	if code, ok := task.Priority.ICalCode(); ok {
		lines = append(lines, "PRIORITY:"+strconv.Itoa(code))
	}

	if !task.DateDue.IsZero() {
		lines = append(lines, c.dateProperty("DUE", task.DateDue, task.DueHasTime))
	}
	if !task.DateStart.IsZero() {
		lines = append(lines, c.dateProperty("DTSTART", task.DateStart, task.StartHasTime))
	}

	if task.IsCompleted() {
		lines = append(lines, "STATUS:COMPLETED")
		lines = append(lines, "COMPLETED:"+FormatTimestamp(task.DateCompleted, true, c.loc))
	} else {
		lines = append(lines, "STATUS:NEEDS-ACTION")
	}

	if !task.DateCreated.IsZero() {
		lines = append(lines, "CREATED:"+FormatTimestamp(task.DateCreated, true, c.loc))
	}
	if !task.DateModified.IsZero() {
		lines = append(lines, "LAST-MODIFIED:"+FormatTimestamp(task.DateModified, true, c.loc))
	}

	if task.Repeat != "" {
		lines = append(lines, "RRULE:"+task.Repeat)
	}
	if task.URL != "" {
		lines = append(lines, "URL:"+Escape(task.URL))
	}

	if cats := categories(task, idx); len(cats) > 0 {
		lines = append(lines, "CATEGORIES:"+strings.Join(cats, ","))
	}

	if notes := idx.Notes(task.SeriesID); len(notes) > 0 {
		lines = append(lines, "DESCRIPTION:"+Escape(strings.Join(notes, "\n\n")))
	}

	if task.Postponed > 0 {
		lines = append(lines, "X-RTM-POSTPONE-COUNT:"+strconv.Itoa(task.Postponed))
	}
	if task.Source != "" {
		lines = append(lines, "X-RTM-SOURCE:"+Escape(task.Source))
	}

	lines = append(lines, "END:VTODO")
	return lines
}

func (c *Converter) dateProperty(name string, ts rtm.Timestamp, hasTime bool) string {
	value := FormatTimestamp(ts, hasTime, c.loc)
	if hasTime {
		return name + ":" + value
	}
	return name + ";VALUE=DATE:" + value
}

// categories returns the escaped tags followed by the list name.
func categories(task *rtm.Task, idx *rtm.Index) []string {
	cats := make([]string, 0, len(task.Tags)+1)
	for _, tag := range task.Tags {
		cats = append(cats, Escape(tag))
	}
	if name, ok := idx.ListName(task.ListID); ok {
		cats = append(cats, Escape(name))
	}
	return cats
}

// WriteCalendar writes a VCALENDAR named name holding one VTODO per task.
// Every line, the last included, ends with CRLF.
func (c *Converter) WriteCalendar(w io.Writer, name string, tasks []rtm.Task, idx *rtm.Index) error {
	if name == "" {
		name = DefaultCalendarName
	}
	if idx == nil {
		idx = rtm.NewIndex(nil)
	}

	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString(crlf)
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:" + c.prodID)
	writeLine("CALSCALE:GREGORIAN")
	writeLine("X-WR-CALNAME:" + Escape(name))
	for i := range tasks {
		for _, line := range c.Todo(&tasks[i], idx) {
			writeLine(line)
		}
	}
	writeLine("END:VCALENDAR")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}

// Calendar returns the VCALENDAR text for tasks.
func (c *Converter) Calendar(name string, tasks []rtm.Task, idx *rtm.Index) string {
	var b strings.Builder
	// strings.Builder never fails.
	_ = c.WriteCalendar(&b, name, tasks, idx)
	return b.String()
}

// Convert renders every task of exp into one calendar named name.
func Convert(exp *rtm.Export, name string, opts ...Option) string {
	return New(opts...).Calendar(name, exp.Tasks, rtm.NewIndex(exp))
}
