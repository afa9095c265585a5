package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/codyde/payme/models"
)

// Store provides ledger operations over a SQL database. It is injected
// into its callers rather than held as a package global.
type Store struct {
	db *sql.DB
}

// New returns a Store backed by db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const dateLayout = "2006-01-02"

const txnSelectQuery = `SELECT id, date, description, business, amount,
	invoice_id, user_id, status, notes FROM transactions`

func scanTransaction(scanner interface{ Scan(...any) error }) (models.Transaction, error) {
	var t models.Transaction
	err := scanner.Scan(&t.ID, &t.Date, &t.Description, &t.Business, &t.Amount,
		&t.InvoiceID, &t.UserID, &t.Status, &t.Notes)
	return t, err
}

// InsertBatch commits candidates as a single unit owned by owner, optionally
// assigned to an invoice. Either every candidate is inserted or none are.
func (s *Store) InsertBatch(ctx context.Context, owner string, invoiceID *string, cands []models.Candidate) ([]int64, error) {
	if len(cands) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &PersistenceError{Op: "insert batch", Err: err}
	}
	defer tx.Rollback()

	status := models.TxnStatusPending
	if invoiceID != nil {
		invStatus, err := invoiceStatus(ctx, tx, *invoiceID)
		if err != nil {
			return nil, err
		}
		// New members mirror the parent invoice.
		if invStatus == models.InvoiceStatusPaid {
			status = models.TxnStatusPaid
		}
	}

	ids := make([]int64, 0, len(cands))
	for _, c := range cands {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO transactions (date, description, business, amount, invoice_id, user_id, status, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, '') RETURNING id`,
			c.Date.Format(dateLayout), c.Description, c.Business, c.Amount, invoiceID, owner, status).Scan(&id)
		if err != nil {
			return nil, &PersistenceError{Op: "insert batch", Err: err}
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, &PersistenceError{Op: "insert batch", Err: err}
	}
	return ids, nil
}

// CompleteInvoice marks the invoice paid and propagates the paid status to
// every member transaction, as one transaction. Completing an already-paid
// invoice is a no-op success.
func (s *Store) CompleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "complete invoice", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE invoices SET status = ? WHERE id = ?`, models.InvoiceStatusPaid, invoiceID)
	if err != nil {
		return &PersistenceError{Op: "complete invoice", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Kind: "invoice", ID: invoiceID}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET status = ? WHERE invoice_id = ?`, models.TxnStatusPaid, invoiceID); err != nil {
		return &PersistenceError{Op: "complete invoice", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "complete invoice", Err: err}
	}
	return nil
}

// DeleteInvoice removes the invoice and every transaction referencing it,
// as one transaction. No orphaned references survive.
func (s *Store) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "delete invoice", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE invoice_id = ?`, invoiceID); err != nil {
		return &PersistenceError{Op: "delete invoice", Err: err}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, invoiceID)
	if err != nil {
		return &PersistenceError{Op: "delete invoice", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Kind: "invoice", ID: invoiceID}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "delete invoice", Err: err}
	}
	return nil
}

// AssignToInvoice points a transaction at an invoice. Concurrent assigns of
// the same transaction are last-write-wins. The transaction's status mirrors
// the invoice it joins.
func (s *Store) AssignToInvoice(ctx context.Context, transactionID int64, invoiceID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "assign to invoice", Err: err}
	}
	defer tx.Rollback()

	invStatus, err := invoiceStatus(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	txnStatus := models.TxnStatusPending
	if invStatus == models.InvoiceStatusPaid {
		txnStatus = models.TxnStatusPaid
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE transactions SET invoice_id = ?, status = ? WHERE id = ?`,
		invoiceID, txnStatus, transactionID)
	if err != nil {
		return &PersistenceError{Op: "assign to invoice", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Kind: "transaction", ID: strconv.FormatInt(transactionID, 10)}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "assign to invoice", Err: err}
	}
	return nil
}

// ComputeTotal sums member transaction amounts in minor units. An invoice
// with no transactions totals zero.
func (s *Store) ComputeTotal(ctx context.Context, invoiceID string) (models.Money, error) {
	if _, err := s.GetInvoice(ctx, invoiceID); err != nil {
		return 0, err
	}
	var total models.Money
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE invoice_id = ?`, invoiceID).Scan(&total)
	if err != nil {
		return 0, &PersistenceError{Op: "compute total", Err: err}
	}
	return total, nil
}

// CreateTransaction inserts one directly entered transaction.
func (s *Store) CreateTransaction(ctx context.Context, owner string, in models.TransactionInput) (models.Transaction, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO transactions (date, description, business, amount, invoice_id, user_id, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		in.Date, in.Description, in.Business, in.Amount, in.InvoiceID, owner,
		models.TxnStatusPending, in.Notes).Scan(&id)
	if err != nil {
		return models.Transaction{}, &PersistenceError{Op: "create transaction", Err: err}
	}
	return s.GetTransaction(ctx, owner, id)
}

// GetTransaction fetches one owner-scoped transaction.
func (s *Store) GetTransaction(ctx context.Context, owner string, id int64) (models.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRowContext(ctx,
		txnSelectQuery+` WHERE id = ? AND user_id = ?`, id, owner))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, &NotFoundError{Kind: "transaction", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return models.Transaction{}, &PersistenceError{Op: "get transaction", Err: err}
	}
	return t, nil
}

// ListTransactions returns the owner's transactions, optionally filtered by
// invoice membership or status.
func (s *Store) ListTransactions(ctx context.Context, owner string, invoiceID, status string) ([]models.Transaction, error) {
	query := txnSelectQuery + ` WHERE user_id = ?`
	args := []any{owner}
	if invoiceID != "" {
		query += ` AND invoice_id = ?`
		args = append(args, invoiceID)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &PersistenceError{Op: "list transactions", Err: err}
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, &PersistenceError{Op: "list transactions", Err: err}
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// UpdateTransaction replaces the editable fields of an owner's transaction.
func (s *Store) UpdateTransaction(ctx context.Context, owner string, id int64, in models.TransactionInput) (models.Transaction, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET date = ?, description = ?, business = ?, amount = ?, invoice_id = ?, notes = ?
		WHERE id = ? AND user_id = ?`,
		in.Date, in.Description, in.Business, in.Amount, in.InvoiceID, in.Notes, id, owner)
	if err != nil {
		return models.Transaction{}, &PersistenceError{Op: "update transaction", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Transaction{}, &NotFoundError{Kind: "transaction", ID: strconv.FormatInt(id, 10)}
	}
	return s.GetTransaction(ctx, owner, id)
}

// UpdateNotes sets the free-text notes on an owner's transaction.
func (s *Store) UpdateNotes(ctx context.Context, owner string, id int64, notes string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET notes = ? WHERE id = ? AND user_id = ?`, notes, id, owner)
	if err != nil {
		return &PersistenceError{Op: "update notes", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Kind: "transaction", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

// DeleteTransaction removes one owner-scoped transaction.
func (s *Store) DeleteTransaction(ctx context.Context, owner string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, owner)
	if err != nil {
		return &PersistenceError{Op: "delete transaction", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Kind: "transaction", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

// CreateInvoice creates an empty unpaid invoice with a short shareable id.
func (s *Store) CreateInvoice(ctx context.Context, owner string, in models.InvoiceInput) (models.Invoice, error) {
	id := newInvoiceID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invoices (id, name, description, billable_person, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, in.Name, in.Description, in.BillablePerson, models.InvoiceStatusUnpaid, owner)
	if err != nil {
		return models.Invoice{}, &PersistenceError{Op: "create invoice", Err: err}
	}
	return s.GetInvoice(ctx, id)
}

const invoiceSelectQuery = `SELECT i.id, i.name, i.description, i.billable_person,
	i.status, i.created_by, i.created_at,
	COALESCE(SUM(t.amount), 0)
	FROM invoices i
	LEFT JOIN transactions t ON t.invoice_id = i.id`

func scanInvoice(scanner interface{ Scan(...any) error }) (models.Invoice, error) {
	var inv models.Invoice
	err := scanner.Scan(&inv.ID, &inv.Name, &inv.Description, &inv.BillablePerson,
		&inv.Status, &inv.CreatedBy, &inv.CreatedAt, &inv.TotalAmount)
	return inv, err
}

// GetInvoice fetches one invoice with its derived total.
func (s *Store) GetInvoice(ctx context.Context, id string) (models.Invoice, error) {
	inv, err := scanInvoice(s.db.QueryRowContext(ctx,
		invoiceSelectQuery+` WHERE i.id = ? GROUP BY i.id`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, &NotFoundError{Kind: "invoice", ID: id}
	}
	if err != nil {
		return models.Invoice{}, &PersistenceError{Op: "get invoice", Err: err}
	}
	return inv, nil
}

// ListInvoices returns the owner's invoices with derived totals.
func (s *Store) ListInvoices(ctx context.Context, owner string) ([]models.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		invoiceSelectQuery+` WHERE i.created_by = ? GROUP BY i.id ORDER BY i.created_at DESC`, owner)
	if err != nil {
		return nil, &PersistenceError{Op: "list invoices", Err: err}
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, &PersistenceError{Op: "list invoices", Err: err}
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Summary aggregates an owner's ledger for the dashboard.
type Summary struct {
	TransactionCount int          `json:"transaction_count"`
	PendingCount     int          `json:"pending_count"`
	PaidCount        int          `json:"paid_count"`
	NetAmount        models.Money `json:"net_amount"`
	InvoiceCount     int          `json:"invoice_count"`
	UnpaidInvoices   int          `json:"unpaid_invoices"`
}

// Summarize computes the owner's dashboard aggregates.
func (s *Store) Summarize(ctx context.Context, owner string) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'paid' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(amount), 0)
		FROM transactions WHERE user_id = ?`, owner).
		Scan(&sum.TransactionCount, &sum.PendingCount, &sum.PaidCount, &sum.NetAmount)
	if err != nil {
		return Summary{}, &PersistenceError{Op: "summarize", Err: err}
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'unpaid' THEN 1 ELSE 0 END), 0)
		FROM invoices WHERE created_by = ?`, owner).
		Scan(&sum.InvoiceCount, &sum.UnpaidInvoices)
	if err != nil {
		return Summary{}, &PersistenceError{Op: "summarize", Err: err}
	}
	return sum, nil
}

// invoiceStatus reads an invoice's status inside an open transaction.
func invoiceStatus(ctx context.Context, tx *sql.Tx, invoiceID string) (string, error) {
	var status string
	err := tx.QueryRowContext(ctx,
		`SELECT status FROM invoices WHERE id = ?`, invoiceID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &NotFoundError{Kind: "invoice", ID: invoiceID}
	}
	if err != nil {
		return "", fmt.Errorf("reading invoice status: %w", err)
	}
	return status, nil
}

// newInvoiceID returns a short externally shareable identifier.
func newInvoiceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
