package models

import "time"

// Invoice statuses. An invoice transitions unpaid -> paid exactly once;
// repeating the completion is a no-op.
const (
	InvoiceStatusUnpaid = "unpaid"
	InvoiceStatusPaid   = "paid"
)

// Invoice is a billing grouping of transactions.
type Invoice struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	BillablePerson string    `json:"billable_person"`
	Status         string    `json:"status"` // unpaid, paid
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	// Computed fields
	TotalAmount Money `json:"total_amount"`
}

// InvoiceInput is used for creating invoices.
type InvoiceInput struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	BillablePerson string `json:"billable_person"`
}

func (i *InvoiceInput) Validate() string {
	if i.Name == "" {
		return "name is required"
	}
	if i.BillablePerson == "" {
		return "billable_person is required"
	}
	return ""
}
