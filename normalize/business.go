package normalize

import (
	"regexp"
	"strings"
)

// Fallback labels used when no business identity can be derived.
const (
	BusinessUnknown  = "Unknown"
	BusinessTransfer = "Transfer"
	BusinessDeposit  = "Deposit"
)

var (
	transferRe = regexp.MustCompile(`(?i)\b(transfer|xfer|zelle|wire)\b`)
	depositRe  = regexp.MustCompile(`(?i)\bdeposit\b`)

	// Trailing account fragment on transfer descriptions, e.g.
	// "TRANSFER TO ACCT 4412", "TRANSFER SAVINGS ...7890", "XFER #1234".
	acctRe = regexp.MustCompile(`(?i)(?:acct|account|a/c|#|x+|\*+|\.{3})\s*(\d{3,6})\b`)

	// Transactional boilerplate stripped from the front of descriptions.
	prefixRe = regexp.MustCompile(`(?i)^(pos debit|pos purchase|pos|ach credit|ach debit|ach|debit card purchase|debit card|check card|checkcard|recurring payment|online payment|web pmt|visa|eft)\b[\s:-]*`)

	// Trailing reference numbers and card fragments.
	trailingRefRe = regexp.MustCompile(`(?i)[\s#]*(?:ref(?:erence)?\s*#?\s*)?\d{5,}$|\s+x{2,}\d+$`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// genericTerms are transaction words that do not identify a business. A
// description reduced to nothing but these yields "Unknown".
var genericTerms = map[string]bool{
	"payroll": true, "salary": true, "paycheck": true, "direct": true,
	"dep": true, "deposit": true, "withdrawal": true, "withdraw": true,
	"payment": true, "pmt": true, "pymt": true, "purchase": true,
	"debit": true, "credit": true, "fee": true, "interest": true,
	"atm": true, "check": true, "chk": true, "cash": true,
	"online": true, "mobile": true, "recurring": true, "pending": true,
	"card": true, "to": true, "from": true, "of": true, "the": true,
}

// Business derives a short label from a raw transaction description.
// Transfer-pattern descriptions additionally capture a trailing account
// fragment ("Transfer •4412"). When nothing identifying survives the
// boilerplate stripping, the label falls back to Transfer, Deposit, or
// Unknown.
func Business(description string) string {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return BusinessUnknown
	}

	if transferRe.MatchString(desc) {
		if m := acctRe.FindStringSubmatch(desc); m != nil {
			return BusinessTransfer + " •" + m[1]
		}
		return BusinessTransfer
	}

	label := cleanLabel(desc)
	if label != "" {
		return label
	}
	if depositRe.MatchString(desc) {
		return BusinessDeposit
	}
	return BusinessUnknown
}

// cleanLabel strips boilerplate and reference noise, then drops the label
// entirely if only generic transaction terms remain.
func cleanLabel(desc string) string {
	s := prefixRe.ReplaceAllString(desc, "")
	s = trailingRefRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return ""
	}

	meaningful := false
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,*#-")
		if tok == "" || genericTerms[tok] || isNumeric(tok) {
			continue
		}
		meaningful = true
		break
	}
	if !meaningful {
		return ""
	}
	return s
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
