package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/nibzard/rtm2ics/internal/rtm"
)

func TestVerify(t *testing.T) {
	exp := &rtm.Export{
		Tasks: []rtm.Task{
			{ID: "1", Name: "One, with comma", Priority: rtm.PriorityHigh, DateDue: 1705276800000},
			{ID: "2", Name: "Two", ParentID: "1", Tags: []string{"t"}},
			{ID: "3", Name: "Three", DateCompleted: 1705276800000},
		},
	}
	out := Convert(exp, "Work; Stuff", WithLocation(time.UTC))

	result, err := Verify(out)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Todos != 3 {
		t.Errorf("Todos: got %d, want 3", result.Todos)
	}
	if strings.Join(result.UIDs, ",") != "rtm-1,rtm-2,rtm-3" {
		t.Errorf("UIDs: got %v", result.UIDs)
	}
	if result.Name != "Work; Stuff" {
		t.Errorf("Name: got %q", result.Name)
	}
}

func TestVerifyDuplicateUID(t *testing.T) {
	exp := &rtm.Export{Tasks: []rtm.Task{{ID: "1"}, {ID: "1"}}}
	if _, err := Verify(Convert(exp, "dup")); err == nil {
		t.Error("expected duplicate UID error")
	}
}

func TestVerifyEmptyCalendar(t *testing.T) {
	result, err := Verify(Convert(&rtm.Export{}, "empty"))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Todos != 0 {
		t.Errorf("Todos: got %d, want 0", result.Todos)
	}
}
