package rtm

import (
	"reflect"
	"testing"
)

func TestIndex(t *testing.T) {
	exp, err := ParseBytes([]byte(sampleExport))
	if err != nil {
		t.Fatal(err)
	}
	idx := NewIndex(exp)

	if name, ok := idx.ListName("100"); !ok || name != "Personal" {
		t.Errorf("ListName(100) = %q, %v", name, ok)
	}
	if _, ok := idx.ListName("999"); ok {
		t.Error("ListName(999) should be unknown")
	}
	if _, ok := idx.ListName(""); ok {
		t.Error("ListName(\"\") should be unknown")
	}

	if got := idx.Notes("s1"); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Notes(s1) = %v, want [A B]", got)
	}
	if got := idx.Notes(""); got != nil {
		t.Errorf("Notes(\"\") = %v, want nil", got)
	}
	if got := idx.Notes("missing"); len(got) != 0 {
		t.Errorf("Notes(missing) = %v, want empty", got)
	}
}

func TestIndexDisplayName(t *testing.T) {
	idx := NewIndex(&Export{Lists: []List{{ID: "1", Name: "Inbox"}}})
	tests := []struct {
		id   ID
		want string
	}{
		{"1", "Inbox"},
		{"9", "List-9"},
		{"", "Unlisted"},
	}
	for _, tt := range tests {
		if got := idx.DisplayName(tt.id); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
	if NewIndex(nil).DisplayName("") != "Unlisted" {
		t.Error("nil export index should still resolve placeholders")
	}
}

func TestListTaskCounts(t *testing.T) {
	exp, err := ParseBytes([]byte(sampleExport))
	if err != nil {
		t.Fatal(err)
	}
	counts := exp.ListTaskCounts(NewIndex(exp))

	want := []ListCount{
		{ListID: "100", Name: "Personal", Total: 2, Incomplete: 1, Completed: 1},
		{ListID: "", Name: "Unlisted", Total: 1, Incomplete: 1},
		{ListID: "200", Name: "Work", Total: 1, Incomplete: 1},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("ListTaskCounts() = %+v, want %+v", counts, want)
	}
}
