// Package encoders holds the pure value transforms that turn snapshot
// fragments into form-ready primitives. Nothing here knows field names or
// the snapshot shape; extractors in fieldmap compose these functions.
package encoders

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts are tried in order before any pattern fallback.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

var (
	isoDatePattern    = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	dottedDatePattern = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)
	eightDigits       = regexp.MustCompile(`^\d{8}$`)
)

// Date converts whatever date string the wizard collected into the
// 8-digit DDMMYYYY token the form expects. It never fails: inputs that
// resist every strategy degrade to their first 8 characters, which is
// wrong but type-safe and keeps the field write from aborting the run.
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02012006")
		}
	}

	// Embedded ISO date, e.g. "2024-03-05T10:00:00" with an offset the
	// layouts above did not match.
	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		return m[3] + m[2] + m[1]
	}

	// Dotted Polish notation: drop the separators.
	if m := dottedDatePattern.FindStringSubmatch(s); m != nil {
		return m[1] + m[2] + m[3]
	}

	// Already normalised.
	if eightDigits.MatchString(s) {
		return s
	}

	return Truncate(s, 8)
}

// Truncate shortens s to at most max characters (runes, not bytes).
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
