package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/codyde/payme/models"
)

// Amount parses a decimal amount string into exact minor units. The full
// fractional value is carried through decimal arithmetic and rounded
// half-to-even at the final step, so "-4.99" is exactly -499 and a value
// like "12.005" lands on 1200, never drifts through a float intermediate.
//
// Accepted noise: currency symbol, thousands separators, surrounding
// whitespace, and accounting-style parentheses for negatives.
func Amount(s string) (models.Money, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &AmountParseError{Input: raw}
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	// Trailing minus appears in some exports ("4.99-").
	if strings.HasSuffix(s, "-") {
		neg = true
		s = strings.TrimSuffix(s, "-")
	}

	s = strings.ReplaceAll(s, ",", "")
	// The symbol may sit before or after the sign ("-$4.50", "$-4.50").
	s = strings.Replace(s, "$", "", 1)
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &AmountParseError{Input: raw}
	}
	if neg {
		d = d.Neg()
	}
	return models.FromDecimal(d), nil
}

// SignedAmount parses an amount and forces the debit/credit sign convention
// from a paired column layout: a debit value is negative regardless of how
// the export printed it, a credit value positive.
func SignedAmount(s string, debit bool) (models.Money, error) {
	m, err := Amount(s)
	if err != nil {
		return 0, err
	}
	if debit && m > 0 {
		return -m, nil
	}
	if !debit && m < 0 {
		return -m, nil
	}
	return m, nil
}

// HasExplicitSign reports whether the raw amount string carries its own
// debit/credit marker: a leading sign, trailing minus, or accounting
// parentheses. Used to reject unsigned single-amount CSVs whose sign
// convention cannot be known.
func HasExplicitSign(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return true
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return true
	}
	return strings.HasSuffix(s, "-")
}
