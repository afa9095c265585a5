package handlers

import "net/http"

// GetDashboard returns the caller's ledger summary
// @Summary      Dashboard
// @Description  Transaction and invoice aggregates for the caller.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Response{data=ledger.Summary}
// @Router       /dashboard [get]
// @Security     BasicAuth
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Store.Summarize(r.Context(), owner(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
