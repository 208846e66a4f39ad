// handlers/audit_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"assetverse/utils"
)

func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	ctx, cancel := opContext(r)
	defer cancel()

	entries, err := h.Audit.List(ctx, p, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, entries)
}
