package parse

import "github.com/codyde/payme/models"

// Result is the outcome of running one batch through detection, parsing,
// and normalization. Accepted candidates and row errors keep input order.
type Result struct {
	Format   Format
	Accepted []models.Candidate
	Errors   []RowError
}

// Batch classifies raw input and runs the matching parser over it,
// normalizing every record independently. A bad record is skipped and
// reported, never fatal; the only batch-level failure is a CSV SchemaError,
// where no row is recoverable without a resolvable header.
func Batch(raw string) (*Result, error) {
	format, delim := Detect(raw)
	if format == CSVLike {
		accepted, rowErrs, err := parseCSV(raw, delim)
		if err != nil {
			return nil, err
		}
		return &Result{Format: format, Accepted: accepted, Errors: rowErrs}, nil
	}
	accepted, rowErrs := parseLog(raw)
	return &Result{Format: format, Accepted: accepted, Errors: rowErrs}, nil
}
