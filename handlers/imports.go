package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/codyde/payme/ingest"
	"github.com/codyde/payme/parse"
)

// ImportInput is a raw text payload for batch import.
type ImportInput struct {
	Data      string  `json:"data"`
	InvoiceID *string `json:"invoice_id"`
}

// writeImportError maps batch-level import failures onto HTTP statuses.
// Row-level errors never land here; they ride inside a successful result.
func writeImportError(w http.ResponseWriter, err error) {
	var se *parse.SchemaError
	if errors.As(err, &se) {
		writeError(w, http.StatusUnprocessableEntity, se.Error())
		return
	}
	writeStoreError(w, err)
}

// Import ingests a raw CSV or transaction-log paste
// @Summary      Import transactions
// @Description  Detect the input shape (CSV or log), normalize every record, and commit the accepted rows as one atomic batch. Skipped rows are itemized in the result.
// @Tags         imports
// @Accept       json
// @Produce      json
// @Param        batch  body      ImportInput  true  "Raw text payload"
// @Success      201    {object}  Response{data=ingest.BatchResult}
// @Failure      400    {object}  Response{error=string}
// @Failure      422    {object}  Response{error=string}
// @Router       /imports [post]
// @Security     BasicAuth
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var input ImportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(input.Data) == "" {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	res, err := h.Importer.ImportText(r.Context(), owner(r), input.Data, input.InvoiceID)
	if err != nil {
		writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ImportInferred ingests free-form text via the extraction model
// @Summary      Import via inference
// @Description  Delegate extraction of ambiguous free-form text to the configured model, re-validate every candidate field, and commit the accepted rows as one atomic batch.
// @Tags         imports
// @Accept       json
// @Produce      json
// @Param        batch  body      ImportInput  true  "Raw text payload"
// @Success      201    {object}  Response{data=ingest.BatchResult}
// @Failure      400    {object}  Response{error=string}
// @Failure      503    {object}  Response{error=string}
// @Router       /imports/inferred [post]
// @Security     BasicAuth
func (h *Handler) ImportInferred(w http.ResponseWriter, r *http.Request) {
	var input ImportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(input.Data) == "" {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	res, err := h.Importer.ImportInferred(r.Context(), owner(r), input.Data, input.InvoiceID)
	if err != nil {
		if errors.Is(err, ingest.ErrNoExtractor) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
