package ical

import (
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
)

// VerifyResult summarizes a parsed calendar.
type VerifyResult struct {
	Name  string
	Todos int
	UIDs  []string
}

// Verify parses data with an independent iCalendar parser and checks that
// every VTODO carries a UID and that no UID repeats.
func Verify(data string) (*VerifyResult, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	result := &VerifyResult{}
	for _, prop := range cal.CalendarProperties {
		if prop.IANAToken == "X-WR-CALNAME" {
			result.Name = Unescape(prop.Value)
		}
	}

	seen := make(map[string]bool)
	for _, comp := range cal.Components {
		todo, ok := comp.(*ics.VTodo)
		if !ok {
			continue
		}
		result.Todos++
		prop := todo.GetProperty(ics.ComponentPropertyUniqueId)
		if prop == nil || prop.Value == "" {
			return result, fmt.Errorf("todo %d has no UID", result.Todos)
		}
		if seen[prop.Value] {
			return result, fmt.Errorf("duplicate UID %q", prop.Value)
		}
		seen[prop.Value] = true
		result.UIDs = append(result.UIDs, prop.Value)
	}
	return result, nil
}
