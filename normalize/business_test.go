package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusiness(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"plain business", "Coffee Shop", "Coffee Shop"},
		{"generic payroll", "Payroll", "Unknown"},
		{"empty", "", "Unknown"},
		{"transfer with account", "TRANSFER TO ACCT 4412", "Transfer •4412"},
		{"transfer without account", "ONLINE TRANSFER", "Transfer"},
		{"transfer masked account", "TRANSFER TO SAVINGS xx7890", "Transfer •7890"},
		{"deposit", "MOBILE DEPOSIT", "Deposit"},
		{"pos prefix stripped", "POS DEBIT STARBUCKS STORE", "STARBUCKS STORE"},
		{"ach prefix and ref stripped", "ACH CREDIT ACME CORP REF 1234567", "ACME CORP"},
		{"only numbers", "1234567890", "Unknown"},
		{"atm withdrawal", "ATM WITHDRAWAL 00412", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Business(tt.desc))
		})
	}
}
