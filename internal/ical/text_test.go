package ical

import (
	"regexp"
	"testing"
	"time"

	"github.com/nibzard/rtm2ics/internal/rtm"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Buy milk", "Buy milk"},
		{"comma", "eggs, milk", `eggs\, milk`},
		{"semicolon", "a;b", `a\;b`},
		{"newline", "line1\nline2", `line1\nline2`},
		{"backslash", `C:\temp`, `C:\\temp`},
		{"backslash before n", `\n`, `\\n`},
		{"crlf normalized", "a\r\nb\rc", `a\nb\nc`},
		{"mixed", "a\\,b;c\n", `a\\\,b\;c\n`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`\`,
		`\\`,
		`\n`,
		"\n",
		`,;\`,
		"a\\,b;c\nd",
		"\\\n\\;,,;;\n\n\\",
		"trailing backslash\\",
		"Ünïcödé, ✓; done\n",
	}
	for _, in := range inputs {
		escaped := Escape(in)
		if got := Unescape(escaped); got != in {
			t.Errorf("Unescape(Escape(%q)) = %q", in, got)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`a\Nb`, "a\nb"},
		{`a\:b`, "a:b"},
		{`end\`, `end\`},
	}
	for _, tt := range tests {
		if got := Unescape(tt.in); got != tt.want {
			t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

var (
	dateOnlyPattern = regexp.MustCompile(`^\d{8}$`)
	dateTimePattern = regexp.MustCompile(`^\d{8}T\d{6}$`)
)

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	tests := []struct {
		name    string
		at      time.Time
		hasTime bool
		want    string
	}{
		{"date only", time.Date(2024, 1, 15, 0, 0, 0, 0, loc), false, "20240115"},
		{"date with time", time.Date(2024, 1, 15, 9, 5, 7, 0, loc), true, "20240115T090507"},
		{"late evening stays on day", time.Date(2024, 12, 31, 23, 59, 59, 0, loc), false, "20241231"},
		{"padding", time.Date(2024, 3, 4, 1, 2, 3, 0, loc), true, "20240304T010203"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := rtm.Timestamp(tt.at.UnixMilli())
			got := FormatTimestamp(ms, tt.hasTime, loc)
			if got != tt.want {
				t.Errorf("FormatTimestamp() = %q, want %q", got, tt.want)
			}
			pattern := dateOnlyPattern
			if tt.hasTime {
				pattern = dateTimePattern
			}
			if !pattern.MatchString(got) {
				t.Errorf("FormatTimestamp() = %q does not match %s", got, pattern)
			}
		})
	}
}

func TestFormatTimestampUsesLocation(t *testing.T) {
	utcMidnight := rtm.Timestamp(time.Date(2024, 1, 15, 0, 30, 0, 0, time.UTC).UnixMilli())
	west := time.FixedZone("UTC-8", -8*60*60)

	if got := FormatTimestamp(utcMidnight, false, time.UTC); got != "20240115" {
		t.Errorf("UTC: got %q", got)
	}
	if got := FormatTimestamp(utcMidnight, false, west); got != "20240114" {
		t.Errorf("UTC-8: got %q, want previous day", got)
	}
	if got := FormatTimestamp(utcMidnight, true, west); got != "20240114T163000" {
		t.Errorf("UTC-8 with time: got %q", got)
	}
}
