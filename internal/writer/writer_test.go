package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/rtm2ics/internal/filter"
	"github.com/nibzard/rtm2ics/internal/ical"
	"github.com/nibzard/rtm2ics/internal/rtm"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Work", "Work"},
		{"Home & Garden", "Home _ Garden"},
		{"a/b\\c:d", "a_b_c_d"},
		{"Über-list_1", "Über-list_1"},
		{"日本語", "日本語"},
		{"..", "__"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func testGroups() (*rtm.Index, []filter.Group) {
	exp := &rtm.Export{
		Lists: []rtm.List{{ID: "1", Name: "Work/Office"}, {ID: "2", Name: "Work?Office"}},
		Tasks: []rtm.Task{
			{ID: "10", ListID: "1", Name: "Report"},
			{ID: "11", ListID: "1", Name: "Done", DateCompleted: 1700000000000},
			{ID: "20", ListID: "2", Name: "Call"},
		},
	}
	idx := rtm.NewIndex(exp)
	result := filter.NewSelector(idx, filter.Options{}, time.UTC).Apply(exp.Tasks)
	return idx, result.Groups
}

func TestWriteGroups(t *testing.T) {
	idx, groups := testGroups()
	dir := filepath.Join(t.TempDir(), "out")

	w := New(ical.New(ical.WithLocation(time.UTC)), idx, WithVerify(true))
	files, err := w.WriteGroups(dir, groups)
	if err != nil {
		t.Fatalf("WriteGroups() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("WriteGroups() wrote %d files, want 2", len(files))
	}

	wantNames := []string{"Work_Office.ics", "Work_Office_2.ics"}
	for i, f := range files {
		if got := filepath.Base(f.Path); got != wantNames[i] {
			t.Errorf("file %d = %s, want %s", i, got, wantNames[i])
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		res, err := ical.Verify(string(data))
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if res.Name != groups[i].Name {
			t.Errorf("calendar name = %q, want %q", res.Name, groups[i].Name)
		}
	}

	if files[0].Stats != (filter.Stats{Total: 2, Incomplete: 1, Completed: 1}) {
		t.Errorf("stats = %+v", files[0].Stats)
	}
}

func TestWriteSingle(t *testing.T) {
	idx, groups := testGroups()
	tasks := append(append([]rtm.Task{}, groups[0].Tasks...), groups[1].Tasks...)

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "all.ics")
		f, err := New(nil, idx).WriteSingle(path, "", tasks)
		if err != nil {
			t.Fatalf("WriteSingle() error = %v", err)
		}
		if f.Name != ical.DefaultCalendarName {
			t.Errorf("Name = %q", f.Name)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if n := strings.Count(string(data), "BEGIN:VTODO"); n != 3 {
			t.Errorf("got %d todos, want 3", n)
		}
	})

	t.Run("stdout", func(t *testing.T) {
		var buf bytes.Buffer
		f, err := New(nil, idx, WithStdout(&buf)).WriteSingle(Stdout, "All", tasks)
		if err != nil {
			t.Fatalf("WriteSingle() error = %v", err)
		}
		if f.Path != Stdout || f.Stats.Total != 3 {
			t.Errorf("File = %+v", f)
		}
		if !strings.Contains(buf.String(), "X-WR-CALNAME:All\r\n") {
			t.Errorf("stdout missing calendar name:\n%s", buf.String())
		}
	})
}

func TestWriteGroupsBadDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	idx, groups := testGroups()
	if _, err := New(nil, idx).WriteGroups(blocker, groups); err == nil {
		t.Error("WriteGroups() into a regular file succeeded, want error")
	}
}

func TestWriteGroupsVerifyFailureWritesNothing(t *testing.T) {
	groups := []filter.Group{
		{ListID: "1", Name: "Good", Tasks: []rtm.Task{{ID: "1", Name: "Fine"}}},
		{ListID: "2", Name: "Bad", Tasks: []rtm.Task{{ID: "2", Name: "One"}, {ID: "2", Name: "Two"}}},
	}
	dir := filepath.Join(t.TempDir(), "out")

	w := New(ical.New(ical.WithLocation(time.UTC)), rtm.NewIndex(nil), WithVerify(true))
	files, err := w.WriteGroups(dir, groups)
	if err == nil {
		t.Fatal("WriteGroups() with a duplicate UID succeeded, want error")
	}
	if !strings.Contains(err.Error(), `"Bad"`) {
		t.Errorf("error %q does not name the failing list", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want none", files)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		entries, _ := os.ReadDir(dir)
		t.Errorf("output dir exists after failure with %d entries", len(entries))
	}
}
