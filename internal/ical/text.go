package ical

import (
	"strings"
	"time"

	"github.com/nibzard/rtm2ics/internal/rtm"
)

const (
	dateLayout     = "20060102"
	dateTimeLayout = "20060102T150405"
)

var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Escape escapes s for use as an iCalendar TEXT value.
// Backslash is escaped first so later escapes are not doubled.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	s = newlineNormalizer.Replace(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// Unescape reverses Escape. Unknown escape sequences keep the escaped
// character; a trailing lone backslash is kept as is.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// FormatTimestamp renders ms as YYYYMMDD, or as YYYYMMDDTHHMMSS when
// hasTime is set, in loc. A nil loc means the local zone.
func FormatTimestamp(ms rtm.Timestamp, hasTime bool, loc *time.Location) string {
	t := ms.Time(loc)
	if hasTime {
		return t.Format(dateTimeLayout)
	}
	return t.Format(dateLayout)
}
