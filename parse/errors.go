// Package parse turns raw pasted text (CSV exports or free-form transaction
// logs) into normalized transaction candidates, collecting one structured
// error per unparseable record instead of aborting the batch.
package parse

import (
	"errors"
	"fmt"

	"github.com/codyde/payme/normalize"
)

// SchemaError means the CSV header could not be resolved to the required
// semantic columns. It is fatal to the whole batch: without a schema no row
// is recoverable.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "unresolvable schema: " + e.Reason
}

// RowError describes one skipped record.
type RowError struct {
	// Row is the 1-based line number in the original input, counting a CSV
	// header as line 1.
	Row    int    `json:"row_index"`
	Raw    string `json:"raw_content"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Reason, e.Detail)
}

// Error reason classes surfaced to callers.
const (
	ReasonRowParse    = "RowParseError"
	ReasonDateParse   = "DateParseError"
	ReasonAmountParse = "AmountParseError"
)

// rowError classifies err into a RowError for the given input line.
func rowError(row int, raw string, err error) RowError {
	reason := ReasonRowParse
	var de *normalize.DateParseError
	var ae *normalize.AmountParseError
	switch {
	case errors.As(err, &de):
		reason = ReasonDateParse
	case errors.As(err, &ae):
		reason = ReasonAmountParse
	}
	return RowError{Row: row, Raw: raw, Reason: reason, Detail: err.Error()}
}
