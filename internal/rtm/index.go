package rtm

import (
	"fmt"
	"sort"
)

// Index holds the lookup tables used while converting tasks.
// It is built once per export and never modified afterwards.
type Index struct {
	lists map[ID]string
	notes map[ID][]string
}

// NewIndex builds list-name and notes-by-series tables for exp.
// Notes keep their export order within a series; empty notes and notes
// without a series id are dropped.
func NewIndex(exp *Export) *Index {
	idx := &Index{
		lists: make(map[ID]string),
		notes: make(map[ID][]string),
	}
	if exp == nil {
		return idx
	}
	for _, l := range exp.Lists {
		idx.lists[l.ID] = l.Name
	}
	for _, n := range exp.Notes {
		if n.SeriesID.IsZero() || n.Content == "" {
			continue
		}
		idx.notes[n.SeriesID] = append(idx.notes[n.SeriesID], n.Content)
	}
	return idx
}

// ListName returns the name of list id.
func (idx *Index) ListName(id ID) (string, bool) {
	if id.IsZero() {
		return "", false
	}
	name, ok := idx.lists[id]
	return name, ok
}

// DisplayName returns the list name, or a placeholder for unknown lists.
func (idx *Index) DisplayName(id ID) string {
	if name, ok := idx.ListName(id); ok {
		return name
	}
	if id.IsZero() {
		return "Unlisted"
	}
	return fmt.Sprintf("List-%s", id)
}

// Notes returns the note bodies of series in export order.
func (idx *Index) Notes(series ID) []string {
	if series.IsZero() {
		return nil
	}
	return idx.notes[series]
}

// ListCount summarizes the tasks of one list.
type ListCount struct {
	ListID     ID
	Name       string
	Total      int
	Incomplete int
	Completed  int
}

// ListTaskCounts counts tasks per list, ordered by list name then id.
// Only lists that own at least one task are returned.
func (exp *Export) ListTaskCounts(idx *Index) []ListCount {
	byID := make(map[ID]*ListCount)
	for i := range exp.Tasks {
		t := &exp.Tasks[i]
		c, ok := byID[t.ListID]
		if !ok {
			c = &ListCount{ListID: t.ListID, Name: idx.DisplayName(t.ListID)}
			byID[t.ListID] = c
		}
		c.Total++
		if t.IsCompleted() {
			c.Completed++
		} else {
			c.Incomplete++
		}
	}

	counts := make([]ListCount, 0, len(byID))
	for _, c := range byID {
		counts = append(counts, *c)
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Name != counts[j].Name {
			return counts[i].Name < counts[j].Name
		}
		return counts[i].ListID < counts[j].ListID
	})
	return counts
}
