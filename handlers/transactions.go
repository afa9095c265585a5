package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codyde/payme/models"
)

// ListTransactions lists the caller's transactions
// @Summary      List transactions
// @Description  Get the caller's transactions, optionally filtered by invoice or status.
// @Tags         transactions
// @Produce      json
// @Param        invoice_id  query     string  false  "Filter by invoice"
// @Param        status      query     string  false  "Filter by status (pending, paid)"
// @Success      200         {object}  Response{data=[]models.Transaction}
// @Router       /transactions [get]
// @Security     BasicAuth
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.Store.ListTransactions(r.Context(), owner(r),
		r.URL.Query().Get("invoice_id"), r.URL.Query().Get("status"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// GetTransaction retrieves a single transaction by ID
// @Summary      Get transaction
// @Tags         transactions
// @Produce      json
// @Param        id   path      int  true  "Transaction ID"
// @Success      200  {object}  Response{data=models.Transaction}
// @Failure      404  {object}  Response{error=string}
// @Router       /transactions/{id} [get]
// @Security     BasicAuth
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	t, err := h.Store.GetTransaction(r.Context(), owner(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// CreateTransaction creates a new transaction
// @Summary      Create transaction
// @Description  Create a single transaction by direct entry.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        transaction  body      models.TransactionInput  true  "Transaction contents"
// @Success      201          {object}  Response{data=models.Transaction}
// @Failure      400          {object}  Response{error=string}
// @Router       /transactions [post]
// @Security     BasicAuth
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var input models.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	t, err := h.Store.CreateTransaction(r.Context(), owner(r), input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTransaction updates an existing transaction
// @Summary      Update transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id           path      int                      true  "Transaction ID"
// @Param        transaction  body      models.TransactionInput  true  "Updated contents"
// @Success      200          {object}  Response{data=models.Transaction}
// @Failure      404          {object}  Response{error=string}
// @Router       /transactions/{id} [put]
// @Security     BasicAuth
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	var input models.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	t, err := h.Store.UpdateTransaction(r.Context(), owner(r), id, input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTransaction deletes a transaction
// @Summary      Delete transaction
// @Tags         transactions
// @Produce      json
// @Param        id   path      int  true  "Transaction ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /transactions/{id} [delete]
// @Security     BasicAuth
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err := h.Store.DeleteTransaction(r.Context(), owner(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// UpdateNotes sets the notes on a transaction
// @Summary      Update transaction notes
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id     path      int                true  "Transaction ID"
// @Param        notes  body      NotesInput         true  "Notes"
// @Success      200    {object}  Response{data=map[string]string}
// @Failure      404    {object}  Response{error=string}
// @Router       /transactions/{id}/notes [post]
// @Security     BasicAuth
func (h *Handler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	var input NotesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.Store.UpdateNotes(r.Context(), owner(r), id, input.Notes); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "notes updated"})
}

// NotesInput carries a notes update.
type NotesInput struct {
	Notes string `json:"notes"`
}

// BulkInput is a line-delimited paste of "name,purpose,amount" entries.
type BulkInput struct {
	Transactions string  `json:"transactions"`
	Date         string  `json:"date"` // YYYY-MM-DD, defaults to today
	InvoiceID    *string `json:"invoice_id"`
}

// BulkCreate adds transactions from an ad hoc line-delimited paste
// @Summary      Bulk add transactions
// @Description  Parse "name,purpose,amount" lines and insert them as one atomic batch.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        batch  body      BulkInput  true  "Line-delimited entries"
// @Success      201    {object}  Response{data=ingest.BatchResult}
// @Failure      400    {object}  Response{error=string}
// @Router       /transactions/bulk [post]
// @Security     BasicAuth
func (h *Handler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var input BulkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(input.Transactions) == "" {
		writeError(w, http.StatusBadRequest, "transactions data is required")
		return
	}
	res, err := h.Importer.ImportLines(r.Context(), owner(r), input.Transactions, input.Date, input.InvoiceID)
	if err != nil {
		writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
