package rtm

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleExport = `{
	"tasks": [
		{"id": "1", "name": "Buy milk", "list_id": "100", "series_id": "s1", "priority": "P1"},
		{"id": "2", "name": "Pour milk", "parent_id": "1", "list_id": "100", "date_completed": 1705276800000},
		{"id": "3", "name": "File taxes", "list_id": "200"},
		{"id": "4", "name": "Orphan"}
	],
	"lists": [
		{"id": "100", "name": "Personal"},
		{"id": "200", "name": "Work"},
		{"id": "300", "name": "Empty"}
	],
	"notes": [
		{"series_id": "s1", "content": "A"},
		{"series_id": "s2", "content": "other"},
		{"series_id": "s1", "content": ""},
		{"series_id": "s1", "content": "B"},
		{"series_id": null, "content": "dangling"}
	]
}`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtm.json")
	if err := os.WriteFile(path, []byte(sampleExport), 0644); err != nil {
		t.Fatal(err)
	}

	exp, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(exp.Tasks) != 4 {
		t.Errorf("Tasks: got %d, want 4", len(exp.Tasks))
	}
	if len(exp.Lists) != 3 {
		t.Errorf("Lists: got %d, want 3", len(exp.Lists))
	}
	if len(exp.Notes) != 5 {
		t.Errorf("Notes: got %d, want 5", len(exp.Notes))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseTolerance(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTasks int
		wantWarn  int
	}{
		{"empty object", `{}`, 0, 0},
		{"null root", `null`, 0, 0},
		{"null tasks", `{"tasks": null}`, 0, 0},
		{"tasks not an array", `{"tasks": "nope"}`, 0, 1},
		{"tasks object", `{"tasks": {"id": 1}}`, 0, 1},
		{"lists and notes malformed", `{"tasks": [{"id": 1}], "lists": 5, "notes": {}}`, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warnings []string
			exp, err := Parse(strings.NewReader(tt.input), WithWarnings(func(msg string) {
				warnings = append(warnings, msg)
			}))
			if err != nil {
				t.Fatalf("Parse error = %v", err)
			}
			if len(exp.Tasks) != tt.wantTasks {
				t.Errorf("Tasks: got %d, want %d", len(exp.Tasks), tt.wantTasks)
			}
			if len(warnings) != tt.wantWarn {
				t.Errorf("warnings: got %v, want %d", warnings, tt.wantWarn)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		collection string
		index      int
	}{
		{"bad task field", `{"tasks": [{"id": 1}, {"id": 2, "tags": 3}]}`, "tasks", 1},
		{"bad list", `{"lists": [{"id": {}}]}`, "lists", 0},
		{"bad note", `{"notes": [{"series_id": "s", "content": 1}]}`, "notes", 0},
		{"due out of range", `{"tasks": [{"id": 1, "date_due": 1e30, "date_due_has_time": true}]}`, "tasks", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := ParseBytes([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if exp != nil {
				t.Error("expected no partial export on error")
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("error %v is not a DecodeError", err)
			}
			if de.Collection != tt.collection || de.Index != tt.index {
				t.Errorf("DecodeError at %s[%d], want %s[%d]", de.Collection, de.Index, tt.collection, tt.index)
			}
		})
	}

	for _, input := range []string{`{"tasks": [`, `[]`, `"text"`} {
		if _, err := ParseBytes([]byte(input)); err == nil {
			t.Errorf("ParseBytes(%s) succeeded, want error", input)
		}
	}
}
