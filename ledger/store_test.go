package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codyde/payme/db"
	"github.com/codyde/payme/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(conn))
	return New(conn)
}

func candidate(date string, desc string, amount models.Money) models.Candidate {
	d, _ := time.Parse("2006-01-02", date)
	return models.Candidate{Date: d, Description: desc, Business: desc, Amount: amount}
}

func TestInsertBatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids, err := s.InsertBatch(ctx, "alice", nil, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
		candidate("2024-01-16", "Payroll", 200000),
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	got, err := s.GetTransaction(ctx, "alice", ids[0])
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", got.Date)
	assert.Equal(t, models.Money(-450), got.Amount)
	assert.Equal(t, models.TxnStatusPending, got.Status)
	assert.Nil(t, got.InvoiceID)
}

func TestInsertBatch_Empty(t *testing.T) {
	s := newTestStore(t)

	ids, err := s.InsertBatch(context.Background(), "alice", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestInsertBatch_UnknownInvoice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bad := "nope"
	_, err := s.InsertBatch(ctx, "alice", &bad, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "invoice", nf.Kind)

	// Nothing from the failed batch is visible.
	txns, err := s.ListTransactions(ctx, "alice", "", "")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestInsertBatch_PaidInvoiceMirrorsStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{Name: "Q1", BillablePerson: "Bob"})
	require.NoError(t, err)
	require.NoError(t, s.CompleteInvoice(ctx, inv.ID))

	ids, err := s.InsertBatch(ctx, "alice", &inv.ID, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	require.NoError(t, err)

	got, err := s.GetTransaction(ctx, "alice", ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.TxnStatusPaid, got.Status)
}

func TestCompleteInvoice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{Name: "Q1", BillablePerson: "Bob"})
	require.NoError(t, err)
	ids, err := s.InsertBatch(ctx, "alice", &inv.ID, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
		candidate("2024-01-16", "Book Store", -1200),
	})
	require.NoError(t, err)

	require.NoError(t, s.CompleteInvoice(ctx, inv.ID))

	got, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, got.Status)
	for _, id := range ids {
		txn, err := s.GetTransaction(ctx, "alice", id)
		require.NoError(t, err)
		assert.Equal(t, models.TxnStatusPaid, txn.Status)
	}

	// Completing again is a no-op success.
	require.NoError(t, s.CompleteInvoice(ctx, inv.ID))
}

func TestCompleteInvoice_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.CompleteInvoice(context.Background(), "nope")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "invoice", nf.Kind)
	assert.Equal(t, "nope", nf.ID)
}

func TestDeleteInvoice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{Name: "Q1", BillablePerson: "Bob"})
	require.NoError(t, err)
	_, err = s.InsertBatch(ctx, "alice", &inv.ID, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteInvoice(ctx, inv.ID))

	_, err = s.GetInvoice(ctx, inv.ID)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)

	// No transaction still references the deleted invoice.
	txns, err := s.ListTransactions(ctx, "alice", inv.ID, "")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestAssignToInvoice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{Name: "Q1", BillablePerson: "Bob"})
	require.NoError(t, err)
	ids, err := s.InsertBatch(ctx, "alice", nil, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	require.NoError(t, err)

	require.NoError(t, s.AssignToInvoice(ctx, ids[0], inv.ID))

	got, err := s.GetTransaction(ctx, "alice", ids[0])
	require.NoError(t, err)
	require.NotNil(t, got.InvoiceID)
	assert.Equal(t, inv.ID, *got.InvoiceID)
	assert.Equal(t, models.TxnStatusPending, got.Status)
}

func TestAssignToInvoice_PaidInvoice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{Name: "Q1", BillablePerson: "Bob"})
	require.NoError(t, err)
	require.NoError(t, s.CompleteInvoice(ctx, inv.ID))

	ids, err := s.InsertBatch(ctx, "alice", nil, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	require.NoError(t, err)
	require.NoError(t, s.AssignToInvoice(ctx, ids[0], inv.ID))

	got, err := s.GetTransaction(ctx, "alice", ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.TxnStatusPaid, got.Status)
}

func TestAssignToInvoice_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{Name: "Q1", BillablePerson: "Bob"})
	require.NoError(t, err)

	var nf *NotFoundError
	err = s.AssignToInvoice(ctx, 999, inv.ID)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "transaction", nf.Kind)

	ids, err := s.InsertBatch(ctx, "alice", nil, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	require.NoError(t, err)
	err = s.AssignToInvoice(ctx, ids[0], "nope")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "invoice", nf.Kind)
}

func TestComputeTotal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{Name: "Q1", BillablePerson: "Bob"})
	require.NoError(t, err)

	total, err := s.ComputeTotal(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(0), total)

	_, err = s.InsertBatch(ctx, "alice", &inv.ID, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
		candidate("2024-01-16", "Payroll", 200000),
	})
	require.NoError(t, err)

	total, err = s.ComputeTotal(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(199550), total)

	_, err = s.ComputeTotal(ctx, "nope")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestListTransactions_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{Name: "Q1", BillablePerson: "Bob"})
	require.NoError(t, err)
	_, err = s.InsertBatch(ctx, "alice", &inv.ID, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	require.NoError(t, err)
	_, err = s.InsertBatch(ctx, "alice", nil, []models.Candidate{
		candidate("2024-01-16", "Book Store", -1200),
	})
	require.NoError(t, err)

	all, err := s.ListTransactions(ctx, "alice", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, "2024-01-16", all[0].Date)

	member, err := s.ListTransactions(ctx, "alice", inv.ID, "")
	require.NoError(t, err)
	require.Len(t, member, 1)
	assert.Equal(t, "Coffee Shop", member[0].Description)

	require.NoError(t, s.CompleteInvoice(ctx, inv.ID))
	paid, err := s.ListTransactions(ctx, "alice", "", models.TxnStatusPaid)
	require.NoError(t, err)
	assert.Len(t, paid, 1)
}

func TestOwnerScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids, err := s.InsertBatch(ctx, "alice", nil, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	require.NoError(t, err)

	var nf *NotFoundError
	_, err = s.GetTransaction(ctx, "mallory", ids[0])
	assert.ErrorAs(t, err, &nf)

	err = s.DeleteTransaction(ctx, "mallory", ids[0])
	assert.ErrorAs(t, err, &nf)

	txns, err := s.ListTransactions(ctx, "mallory", "", "")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestTransactionCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTransaction(ctx, "alice", models.TransactionInput{
		Date:        "2024-01-15",
		Description: "Coffee Shop",
		Business:    "Coffee Shop",
		Amount:      -450,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TxnStatusPending, created.Status)

	updated, err := s.UpdateTransaction(ctx, "alice", created.ID, models.TransactionInput{
		Date:        "2024-01-15",
		Description: "Coffee Shop Downtown",
		Business:    "Coffee Shop",
		Amount:      -500,
	})
	require.NoError(t, err)
	assert.Equal(t, "Coffee Shop Downtown", updated.Description)
	assert.Equal(t, models.Money(-500), updated.Amount)

	require.NoError(t, s.UpdateNotes(ctx, "alice", created.ID, "client lunch"))
	got, err := s.GetTransaction(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "client lunch", got.Notes)

	require.NoError(t, s.DeleteTransaction(ctx, "alice", created.ID))
	var nf *NotFoundError
	_, err = s.GetTransaction(ctx, "alice", created.ID)
	assert.ErrorAs(t, err, &nf)
}

func TestInvoices(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{
		Name:           "Q1 consulting",
		Description:    "January work",
		BillablePerson: "Bob",
	})
	require.NoError(t, err)
	assert.Len(t, inv.ID, 10)
	assert.Equal(t, models.InvoiceStatusUnpaid, inv.Status)
	assert.Equal(t, models.Money(0), inv.TotalAmount)

	_, err = s.InsertBatch(ctx, "alice", &inv.ID, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	require.NoError(t, err)

	list, err := s.ListInvoices(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.Money(-450), list[0].TotalAmount)

	other, err := s.ListInvoices(ctx, "mallory")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSummarize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, err := s.CreateInvoice(ctx, "alice", models.InvoiceInput{Name: "Q1", BillablePerson: "Bob"})
	require.NoError(t, err)
	_, err = s.InsertBatch(ctx, "alice", &inv.ID, []models.Candidate{
		candidate("2024-01-15", "Coffee Shop", -450),
	})
	require.NoError(t, err)
	_, err = s.InsertBatch(ctx, "alice", nil, []models.Candidate{
		candidate("2024-01-16", "Payroll", 200000),
	})
	require.NoError(t, err)
	require.NoError(t, s.CompleteInvoice(ctx, inv.ID))

	sum, err := s.Summarize(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TransactionCount)
	assert.Equal(t, 1, sum.PendingCount)
	assert.Equal(t, 1, sum.PaidCount)
	assert.Equal(t, models.Money(199550), sum.NetAmount)
	assert.Equal(t, 1, sum.InvoiceCount)
	assert.Equal(t, 0, sum.UnpaidInvoices)
}
