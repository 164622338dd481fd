// Package filter selects and groups export tasks before conversion.
//
// The converter itself never drops tasks; every list, date and completion
// rule lives here and is applied to the decoded export first.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/rtm2ics/internal/rtm"
	"github.com/nibzard/rtm2ics/internal/utils"
)

// DateLayout is the accepted format for date filters.
const DateLayout = "2006-01-02"

// Options holds the selection rules. The zero value selects everything.
type Options struct {
	// IncompleteOnly drops every completed task.
	IncompleteOnly bool
	// SkipCompletedBefore drops tasks completed before this instant.
	// The zero time disables the rule.
	SkipCompletedBefore time.Time
	// Lists, when non-empty, keeps only tasks of these lists (by name).
	Lists []string
	// ExcludeLists drops tasks of these lists (by name).
	ExcludeLists []string
}

// Active returns true if any rule is set.
func (o Options) Active() bool {
	return o.IncompleteOnly || !o.SkipCompletedBefore.IsZero() ||
		len(o.Lists) > 0 || len(o.ExcludeLists) > 0
}

// Describe returns one human-readable line per active rule.
func (o Options) Describe() []string {
	var lines []string
	if o.IncompleteOnly {
		lines = append(lines, "only incomplete tasks")
	}
	if !o.SkipCompletedBefore.IsZero() {
		lines = append(lines, fmt.Sprintf("skip completed tasks before %s", o.SkipCompletedBefore.Format(DateLayout)))
	}
	if len(o.Lists) > 0 {
		lines = append(lines, "only lists: "+strings.Join(o.Lists, ", "))
	}
	if len(o.ExcludeLists) > 0 {
		lines = append(lines, "exclude lists: "+strings.Join(o.ExcludeLists, ", "))
	}
	return lines
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// Selector applies Options to the tasks of one export.
type Selector struct {
	idx  *rtm.Index
	opts Options
	loc  *time.Location
}

// NewSelector creates a selector. List rules resolve names through idx.
func NewSelector(idx *rtm.Index, opts Options, loc *time.Location) *Selector {
	if idx == nil {
		idx = rtm.NewIndex(nil)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Selector{idx: idx, opts: opts, loc: loc}
}

// Include reports whether task passes every rule.
func (s *Selector) Include(task *rtm.Task) bool {
	name := s.idx.DisplayName(task.ListID)

	if len(s.opts.Lists) > 0 && !utils.ContainsTrimmed(s.opts.Lists, name) {
		return false
	}
	if len(s.opts.ExcludeLists) > 0 && utils.ContainsTrimmed(s.opts.ExcludeLists, name) {
		return false
	}

	if !task.IsCompleted() {
		return true
	}
	if s.opts.IncompleteOnly {
		return false
	}
	if !s.opts.SkipCompletedBefore.IsZero() &&
		task.DateCompleted.Time(s.loc).Before(s.opts.SkipCompletedBefore) {
		return false
	}
	return true
}

// Group is the selected tasks of one list.
type Group struct {
	ListID rtm.ID
	Name   string
	Tasks  []rtm.Task
}

// Result is the outcome of Apply.
type Result struct {
	// Groups are ordered by the first selected task of each list.
	Groups []Group
	// Selected holds every selected task in export order.
	Selected []rtm.Task
	// Filtered counts the tasks that were dropped.
	Filtered int
}

// Apply selects tasks and groups them by list.
func (s *Selector) Apply(tasks []rtm.Task) Result {
	var result Result
	pos := make(map[rtm.ID]int)
	for i := range tasks {
		task := tasks[i]
		if !s.Include(&task) {
			result.Filtered++
			continue
		}
		result.Selected = append(result.Selected, task)

		gi, ok := pos[task.ListID]
		if !ok {
			gi = len(result.Groups)
			pos[task.ListID] = gi
			result.Groups = append(result.Groups, Group{
				ListID: task.ListID,
				Name:   s.idx.DisplayName(task.ListID),
			})
		}
		result.Groups[gi].Tasks = append(result.Groups[gi].Tasks, task)
	}
	return result
}

// Stats counts tasks by completion.
type Stats struct {
	Total      int
	Incomplete int
	Completed  int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Total += other.Total
	s.Incomplete += other.Incomplete
	s.Completed += other.Completed
}

// Count returns the completion stats of tasks.
func Count(tasks []rtm.Task) Stats {
	var st Stats
	for i := range tasks {
		st.Total++
		if tasks[i].IsCompleted() {
			st.Completed++
		} else {
			st.Incomplete++
		}
	}
	return st
}
