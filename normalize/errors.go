// Package normalize contains the pure field normalizers used on every path
// where raw transaction data enters the system: date parsing, exact
// minor-unit amount conversion, and business label extraction.
package normalize

import "fmt"

// DateParseError reports a date value that could not be parsed without
// guessing. Rows carrying one are skipped, never coerced.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unparseable date %q", e.Input)
}

// AmountParseError reports an amount value that is not a valid decimal.
type AmountParseError struct {
	Input string
}

func (e *AmountParseError) Error() string {
	return fmt.Sprintf("unparseable amount %q", e.Input)
}
