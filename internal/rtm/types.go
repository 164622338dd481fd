package rtm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ID is an RTM identifier. Exports carry ids as strings or numbers;
// both decode to the same textual form.
type ID string

// IsZero returns true if the id is absent.
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	switch {
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*id = ID(n.String())
	default:
		return fmt.Errorf("id must be a string or number, got %s", b)
	}
	return nil
}

// Timestamp is a point in time in milliseconds since the Unix epoch.
// The zero value means the timestamp is absent.
type Timestamp int64

// Timestamps must render as a four-digit year in any zone, so the bounds sit
// one day inside years 1 and 9999.
var (
	minMillis = time.Date(1, time.January, 2, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxMillis = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC).UnixMilli()
)

// IsZero returns true if the timestamp is absent.
func (ts Timestamp) IsZero() bool {
	return ts == 0
}

// Time converts the timestamp to a time in loc.
func (ts Timestamp) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(int64(ts)).In(loc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*ts = 0
		return nil
	}
	if b[0] != '-' && (b[0] < '0' || b[0] > '9') {
		return fmt.Errorf("timestamp must be a number of milliseconds, got %s", b)
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return fmt.Errorf("invalid timestamp %s: not an integer number of milliseconds", b)
		}
		i = int64(f)
	}
	if i != 0 && (i < minMillis || i > maxMillis) {
		return fmt.Errorf("timestamp %s out of range for years 1-9999", b)
	}
	*ts = Timestamp(i)
	return nil
}

// Priority is an RTM task priority.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "P1"
	PriorityMedium Priority = "P2"
	PriorityLow    Priority = "P3"
)

// ParsePriority maps an export value onto the closed priority set.
// Unknown values, including RTM's "PN", map to PriorityNone.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityNone
	}
}

// ICalCode returns the RFC 5545 PRIORITY value for p.
// The second result is false when no PRIORITY property should be written.
func (p Priority) ICalCode() (int, bool) {
	switch p {
	case PriorityHigh:
		return 1, true
	case PriorityMedium:
		return 5, true
	case PriorityLow:
		return 9, true
	default:
		return 0, false
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Priority) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*p = PriorityNone
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("priority must be a string: %w", err)
	}
	*p = ParsePriority(s)
	return nil
}

// Task is a single task record of an export.
type Task struct {
	ID            ID        `json:"id"`
	Name          string    `json:"name"`
	ParentID      ID        `json:"parent_id"`
	SeriesID      ID        `json:"series_id"`
	ListID        ID        `json:"list_id"`
	Priority      Priority  `json:"priority"`
	DateDue       Timestamp `json:"date_due"`
	DueHasTime    bool      `json:"date_due_has_time"`
	DateStart     Timestamp `json:"date_start"`
	StartHasTime  bool      `json:"date_start_has_time"`
	DateCompleted Timestamp `json:"date_completed"`
	DateCreated   Timestamp `json:"date_created"`
	DateModified  Timestamp `json:"date_modified"`
	Repeat        string    `json:"repeat"`
	URL           string    `json:"url"`
	Tags          []string  `json:"tags"`
	Postponed     int       `json:"postponed"`
	Source        string    `json:"source"`
}

// UnmarshalJSON accepts has_due_time and has_start_time as aliases of the
// date_*_has_time flags.
func (t *Task) UnmarshalJSON(b []byte) error {
	type Alias Task
	aux := &struct {
		*Alias
		HasDueTime   *bool `json:"has_due_time"`
		HasStartTime *bool `json:"has_start_time"`
	}{Alias: (*Alias)(t)}
	if err := json.Unmarshal(b, aux); err != nil {
		return err
	}
	if aux.HasDueTime != nil && *aux.HasDueTime {
		t.DueHasTime = true
	}
	if aux.HasStartTime != nil && *aux.HasStartTime {
		t.StartHasTime = true
	}
	return nil
}

// IsCompleted returns true if the task has a completion timestamp.
func (t *Task) IsCompleted() bool {
	return !t.DateCompleted.IsZero()
}

// List is a named RTM list.
type List struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Note is a free-text note attached to a task series.
type Note struct {
	SeriesID ID     `json:"series_id"`
	Content  string `json:"content"`
}

// UnmarshalJSON accepts "text" as an alias of "content".
func (n *Note) UnmarshalJSON(b []byte) error {
	type Alias Note
	aux := &struct {
		*Alias
		Text *string `json:"text"`
	}{Alias: (*Alias)(n)}
	if err := json.Unmarshal(b, aux); err != nil {
		return err
	}
	if n.Content == "" && aux.Text != nil {
		n.Content = *aux.Text
	}
	return nil
}

// Export is a decoded RTM export document.
type Export struct {
	Tasks []Task
	Lists []List
	Notes []Note
}
