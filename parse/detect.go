package parse

import "strings"

// Format classifies the shape of a raw input blob.
type Format int

const (
	// LogLike is free-form, line-oriented text. The default: log parsing
	// degrades gracefully by skipping unparseable lines.
	LogLike Format = iota
	// CSVLike is delimited tabular text with a header row.
	CSVLike
)

func (f Format) String() string {
	if f == CSVLike {
		return "csv"
	}
	return "log"
}

// delimiters recognized for tabular input, in priority order.
var delimiters = []rune{',', '\t', ';'}

// detectSampleSize is how many lines after the first are checked for a
// consistent column count.
const detectSampleSize = 10

// Detect classifies raw text as CSVLike or LogLike and reports the
// delimiter for the CSV case. It never fails: ambiguous input is LogLike.
func Detect(raw string) (Format, rune) {
	lines := nonEmptyLines(raw, detectSampleSize+1)
	if len(lines) == 0 {
		return LogLike, 0
	}

	for _, d := range delimiters {
		cols := strings.Count(lines[0], string(d))
		if cols == 0 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if strings.Count(line, string(d)) != cols {
				consistent = false
				break
			}
		}
		if consistent {
			return CSVLike, d
		}
	}
	return LogLike, 0
}

// nonEmptyLines returns up to limit non-blank lines of raw.
func nonEmptyLines(raw string, limit int) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}
