package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codyde/payme/models"
)

// ListInvoices lists the caller's invoices
// @Summary      List invoices
// @Description  Get the caller's invoices with derived totals.
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Invoice}
// @Router       /invoices [get]
// @Security     BasicAuth
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Store.ListInvoices(r.Context(), owner(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// GetInvoice retrieves a single invoice by ID
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  Response{data=models.Invoice}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id} [get]
// @Security     BasicAuth
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Store.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CreateInvoice creates a new invoice
// @Summary      Create invoice
// @Description  Create a new empty invoice; transactions are assigned to it over time.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      models.InvoiceInput  true  "Invoice contents"
// @Success      201      {object}  Response{data=models.Invoice}
// @Failure      400      {object}  Response{error=string}
// @Router       /invoices [post]
// @Security     BasicAuth
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	inv, err := h.Store.CreateInvoice(r.Context(), owner(r), input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// CompleteInvoice marks an invoice paid
// @Summary      Complete invoice
// @Description  Mark the invoice paid and propagate the paid status to its transactions. Idempotent.
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  Response{data=models.Invoice}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id}/complete [post]
// @Security     BasicAuth
func (h *Handler) CompleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.CompleteInvoice(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	inv, err := h.Store.GetInvoice(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// DeleteInvoice deletes an invoice and its transactions
// @Summary      Delete invoice
// @Description  Delete the invoice and every transaction referencing it, atomically.
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id} [delete]
// @Security     BasicAuth
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// ListInvoiceTransactions lists the transactions on an invoice
// @Summary      List invoice transactions
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  Response{data=[]models.Transaction}
// @Router       /invoices/{id}/transactions [get]
// @Security     BasicAuth
func (h *Handler) ListInvoiceTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.Store.ListTransactions(r.Context(), owner(r), chi.URLParam(r, "id"), "")
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// AssignInput names the transactions to assign to an invoice.
type AssignInput struct {
	TransactionIDs []int64 `json:"transaction_ids"`
}

// AssignTransactions assigns transactions to an invoice
// @Summary      Assign transactions to invoice
// @Description  Point existing transactions at this invoice. Last write wins per transaction.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id     path      string       true  "Invoice ID"
// @Param        batch  body      AssignInput  true  "Transaction ids"
// @Success      200    {object}  Response{data=map[string]string}
// @Failure      404    {object}  Response{error=string}
// @Router       /invoices/{id}/transactions [post]
// @Security     BasicAuth
func (h *Handler) AssignTransactions(w http.ResponseWriter, r *http.Request) {
	var input AssignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	invoiceID := chi.URLParam(r, "id")
	for _, txnID := range input.TransactionIDs {
		if err := h.Store.AssignToInvoice(r.Context(), txnID, invoiceID); err != nil {
			writeStoreError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "transactions assigned"})
}
