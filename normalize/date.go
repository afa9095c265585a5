package normalize

import (
	"strings"
	"time"
)

// verboseLayouts cover written-out dates like "Jan 5, 2024".
var verboseLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Date parses a calendar date from the formats seen in bank exports:
// MM/DD/YYYY, YYYY-MM-DD, DD-MM-YYYY, and verbose forms ("Jan 5, 2024").
// Numeric day/month dates are read month-first; a day-first reading is
// accepted only when the leading component exceeds 12, which rules the
// month-first reading out. Anything else fails with DateParseError rather
// than guessing. The returned time is midnight UTC; no time-of-day
// semantics are attached.
func Date(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &DateParseError{Input: s}
	}

	// ISO first: unambiguous.
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006/01/02", s); err == nil {
		return t, nil
	}

	for _, sep := range []string{"/", "-"} {
		if t, ok := parseNumeric(s, sep); ok {
			return t, nil
		}
	}

	for _, layout := range verboseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &DateParseError{Input: s}
}

// parseNumeric handles two-component-then-year dates with the given
// separator, applying the month-first convention.
func parseNumeric(s, sep string) (time.Time, bool) {
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	monthFirst := "01" + sep + "02" + sep + "2006"
	dayFirst := "02" + sep + "01" + sep + "2006"
	shortYear := "01" + sep + "02" + sep + "06"

	if t, err := time.Parse(monthFirst, s); err == nil {
		return t, true
	}
	// Day-first only with corroboration: the first component cannot be a
	// month. "13/05/2024" is unambiguously day-first; "05/13/2024" already
	// parsed above as month-first.
	if first := strings.TrimLeft(parts[0], "0"); len(parts[0]) <= 2 {
		if v := atoi(first); v > 12 && v <= 31 {
			if t, err := time.Parse(dayFirst, s); err == nil {
				return t, true
			}
		}
	}
	if len(parts[2]) == 2 {
		if t, err := time.Parse(shortYear, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}
