package parse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/codyde/payme/models"
	"github.com/codyde/payme/normalize"
)

// columnMap holds the semantic column indices resolved from a header row.
// -1 marks an absent column.
type columnMap struct {
	date   int
	desc   int
	amount int
	debit  int
	credit int
}

// parseCSV parses delimited input with a header row. A SchemaError aborts
// the whole batch; individual bad rows are skipped and collected.
func parseCSV(raw string, delim rune) ([]models.Candidate, []RowError, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, &SchemaError{Reason: fmt.Sprintf("malformed delimited input: %v", err)}
	}
	if len(records) < 1 {
		return nil, nil, &SchemaError{Reason: "empty input"}
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, nil, err
	}
	rows := records[1:]

	// A lone unsigned amount column carries no debit/credit convention.
	// Refuse to guess. Only cells that parse as valid decimals weigh in;
	// unparseable cells are a row-level problem, not a schema one.
	if cols.amount >= 0 && cols.debit < 0 && cols.credit < 0 {
		if allUnsigned(rows, cols.amount) {
			return nil, nil, &SchemaError{
				Reason: "single amount column with no signed values; cannot determine debit/credit convention",
			}
		}
	}

	var accepted []models.Candidate
	var rowErrs []RowError
	for i, rec := range rows {
		line := i + 2 // 1-based, header is line 1
		if isBlankRecord(rec) {
			continue
		}
		cand, err := parseRow(rec, cols)
		if err != nil {
			rowErrs = append(rowErrs, rowError(line, strings.Join(rec, string(delim)), err))
			continue
		}
		accepted = append(accepted, *cand)
	}
	return accepted, rowErrs, nil
}

// mapHeader resolves semantic columns from header names with a
// case-insensitive keyword match.
func mapHeader(header []string) (*columnMap, error) {
	cols := &columnMap{date: -1, desc: -1, amount: -1, debit: -1, credit: -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.date < 0 && strings.Contains(h, "date"):
			cols.date = i
		case cols.desc < 0 && (strings.HasPrefix(h, "desc") || h == "memo" || h == "narrative" || h == "payee" || h == "details"):
			cols.desc = i
		// Exact debit/credit names bind before anything else; a header like
		// "Credit Amount" is an amount column, not a credit column.
		case cols.debit < 0 && (h == "debit" || h == "debits" || h == "withdrawal" || h == "withdrawals"):
			cols.debit = i
		case cols.credit < 0 && (h == "credit" || h == "credits" || h == "deposit" || h == "deposits"):
			cols.credit = i
		case cols.amount < 0 && (strings.Contains(h, "amount") || h == "amt"):
			cols.amount = i
		case cols.debit < 0 && (strings.Contains(h, "debit") || strings.Contains(h, "withdrawal")):
			cols.debit = i
		case cols.credit < 0 && (strings.Contains(h, "credit") || strings.Contains(h, "deposit")):
			cols.credit = i
		}
	}
	if cols.date < 0 {
		return nil, &SchemaError{Reason: "no date column in header"}
	}
	if cols.amount < 0 && cols.debit < 0 && cols.credit < 0 {
		return nil, &SchemaError{Reason: "no amount, debit, or credit column in header"}
	}
	return cols, nil
}

// parseRow normalizes one data row. Fields are checked left to right: date,
// then amount, so the first failing field determines the error class.
func parseRow(rec []string, cols *columnMap) (*models.Candidate, error) {
	date, err := normalize.Date(cell(rec, cols.date))
	if err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(cell(rec, cols.desc))

	amount, err := rowAmount(rec, cols)
	if err != nil {
		return nil, err
	}

	return &models.Candidate{
		Date:        date,
		Description: desc,
		Business:    normalize.Business(desc),
		Amount:      amount,
	}, nil
}

// rowAmount resolves the signed amount for a row, combining paired
// debit/credit columns into one value when present.
func rowAmount(rec []string, cols *columnMap) (models.Money, error) {
	if cols.debit >= 0 || cols.credit >= 0 {
		debitVal := strings.TrimSpace(cell(rec, cols.debit))
		creditVal := strings.TrimSpace(cell(rec, cols.credit))
		switch {
		case debitVal != "" && creditVal != "":
			d, err := normalize.SignedAmount(debitVal, true)
			if err != nil {
				return 0, err
			}
			c, err := normalize.SignedAmount(creditVal, false)
			if err != nil {
				return 0, err
			}
			if d != 0 && c != 0 {
				return 0, errors.New("row has both a debit and a credit value")
			}
			return d + c, nil
		case debitVal != "":
			return normalize.SignedAmount(debitVal, true)
		case creditVal != "":
			return normalize.SignedAmount(creditVal, false)
		case cols.amount >= 0:
			// fall through to the plain amount column
		default:
			return 0, &normalize.AmountParseError{Input: ""}
		}
	}
	return normalize.Amount(cell(rec, cols.amount))
}

// allUnsigned reports whether the column holds at least one valid decimal
// and none of the valid values carries an explicit sign.
func allUnsigned(rows [][]string, col int) bool {
	sawValid := false
	for _, rec := range rows {
		val := cell(rec, col)
		if _, err := normalize.Amount(val); err != nil {
			continue
		}
		if normalize.HasExplicitSign(val) {
			return false
		}
		sawValid = true
	}
	return sawValid
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
