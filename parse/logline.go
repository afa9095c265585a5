package parse

import (
	"errors"
	"regexp"
	"strings"

	"github.com/codyde/payme/models"
	"github.com/codyde/payme/normalize"
)

// A lineStrategy attempts to split one log line into raw (date,
// description, amount) strings. Strategies are tried in order; the first
// match wins. Matching is purely structural; field validation happens in
// the normalizers afterwards.
type lineStrategy func(line string) (date, desc, amount string, ok bool)

var lineStrategies = []lineStrategy{
	splitDelimited,
	splitWhitespace,
	splitInlineCurrency,
}

var (
	dateHeadRe  = regexp.MustCompile(`^(\d{1,4}[/-]\d{1,2}[/-]\d{2,4}|[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4})`)
	moneyTailRe = regexp.MustCompile(`(\(?[-+]?\$?\d[\d,]*(?:\.\d+)?\)?-?)$`)
	moneyMarkRe = regexp.MustCompile(`(\(?-?\$\d[\d,]*(?:\.\d+)?\)?)`)
)

// parseLog parses free-text transaction-log lines. A line matching no
// strategy, or failing normalization, is skipped and reported; the batch
// never fails as a whole.
func parseLog(raw string) ([]models.Candidate, []RowError) {
	var accepted []models.Candidate
	var rowErrs []RowError

	for i, line := range strings.Split(raw, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		dateStr, desc, amountStr, ok := matchLine(trimmed)
		if !ok {
			rowErrs = append(rowErrs, RowError{
				Row:    lineNo,
				Raw:    trimmed,
				Reason: ReasonRowParse,
				Detail: "line matches no known transaction pattern",
			})
			continue
		}

		cand, err := normalizeLine(dateStr, desc, amountStr)
		if err != nil {
			rowErrs = append(rowErrs, rowError(lineNo, trimmed, err))
			continue
		}
		accepted = append(accepted, *cand)
	}
	return accepted, rowErrs
}

func matchLine(line string) (date, desc, amount string, ok bool) {
	for _, strat := range lineStrategies {
		if d, ds, a, matched := strat(line); matched {
			return d, ds, a, true
		}
	}
	return "", "", "", false
}

// normalizeLine validates the raw fields left to right: date first, then
// amount, so the first failing field determines the error class.
func normalizeLine(dateStr, desc, amountStr string) (*models.Candidate, error) {
	date, err := normalize.Date(dateStr)
	if err != nil {
		return nil, err
	}
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil, errors.New("line has no description")
	}
	amount, err := normalize.Amount(amountStr)
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

// splitDelimited handles tab- or pipe-delimited triplets:
// "01/15/2024\tCOFFEE SHOP\t-4.50" or "01/15/2024 | COFFEE SHOP | -4.50".
func splitDelimited(line string) (string, string, string, bool) {
	var fields []string
	switch {
	case strings.Contains(line, "\t"):
		fields = strings.Split(line, "\t")
	case strings.Contains(line, "|"):
		fields = strings.Split(line, "|")
	default:
		return "", "", "", false
	}

	var parts []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	if len(parts) < 3 {
		return "", "", "", false
	}
	return parts[0], strings.Join(parts[1:len(parts)-1], " "), parts[len(parts)-1], true
}

// splitWhitespace handles the common "DATE  DESCRIPTION  AMOUNT" shape with
// a leading date token and a trailing money token.
func splitWhitespace(line string) (string, string, string, bool) {
	dm := dateHeadRe.FindString(line)
	if dm == "" {
		return "", "", "", false
	}
	rest := strings.TrimSpace(line[len(dm):])

	am := moneyTailRe.FindString(rest)
	if am == "" || am == rest {
		return "", "", "", false
	}
	desc := strings.TrimSpace(strings.TrimSuffix(rest, am))
	return dm, desc, am, true
}

// splitInlineCurrency handles lines where the amount carries an explicit
// currency marker anywhere: "Paid $12.50 at COFFEE SHOP on 01/15/2024".
func splitInlineCurrency(line string) (string, string, string, bool) {
	am := moneyMarkRe.FindString(line)
	if am == "" {
		return "", "", "", false
	}
	dm := dateAnywhere(line)
	if dm == "" {
		return "", "", "", false
	}
	desc := strings.TrimSpace(strings.Replace(strings.Replace(line, am, "", 1), dm, "", 1))
	desc = strings.Trim(desc, " -:,")
	return dm, desc, am, true
}

var dateAnyRe = regexp.MustCompile(`\d{1,4}[/-]\d{1,2}[/-]\d{2,4}|[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}`)

func dateAnywhere(line string) string {
	return dateAnyRe.FindString(line)
}
