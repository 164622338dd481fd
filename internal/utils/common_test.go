package utils

import (
	"reflect"
	"testing"
)

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "Personal,Work", []string{"Personal", "Work"}},
		{"spaces", " Personal , Work ,Shopping", []string{"Personal", "Work", "Shopping"}},
		{"empty parts dropped", "Inbox,,  ,Work", []string{"Inbox", "Work"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAndTrim(tt.in, ",")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitAndTrim(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestContainsTrimmed(t *testing.T) {
	list := []string{"Personal", " Work "}
	if !ContainsTrimmed(list, "Work") {
		t.Error("expected Work to match padded entry")
	}
	if !ContainsTrimmed(list, " Personal") {
		t.Error("expected padded query to match")
	}
	if ContainsTrimmed(list, "personal") {
		t.Error("match should be case-sensitive")
	}
	if ContainsTrimmed(nil, "Work") {
		t.Error("nil list should not match")
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/tasks", "tasks"},
		{"#/tasks/0/tags/1", "tasks[0].tags[1]"},
		{"/notes/3/series_id", "notes[3].series_id"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
