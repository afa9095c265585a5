package models

import "time"

// Transaction statuses. A transaction mirrors its parent invoice: completing
// an invoice marks every member transaction paid.
const (
	TxnStatusPending = "pending"
	TxnStatusPaid    = "paid"
)

// Transaction represents one financial movement owned by a user.
type Transaction struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
	Business    string  `json:"business"`
	Amount      Money   `json:"amount"` // minor units, negative = debit
	InvoiceID   *string `json:"invoice_id"`
	UserID      string  `json:"user_id"`
	Status      string  `json:"status"` // pending, paid
	Notes       string  `json:"notes"`
}

// Candidate is a normalized transaction produced by the import engine,
// not yet assigned an id, owner, or status.
type Candidate struct {
	Date        time.Time `json:"-"`
	Description string    `json:"description"`
	Business    string    `json:"business"`
	Amount      Money     `json:"amount"`
}

// TransactionInput is used for creating/updating transactions.
type TransactionInput struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Business    string  `json:"business"`
	Amount      Money   `json:"amount"`
	InvoiceID   *string `json:"invoice_id"`
	Notes       string  `json:"notes"`
}

func (t *TransactionInput) Validate() string {
	if t.Date == "" {
		return "date is required"
	}
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return "date must be YYYY-MM-DD"
	}
	if t.Description == "" {
		return "description is required"
	}
	if t.Business == "" {
		t.Business = "Unknown"
	}
	return ""
}
