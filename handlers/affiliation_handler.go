// handlers/affiliation_handler.go
package handlers

import (
	"net/http"

	"assetverse/utils"
)

func (h *Handler) ListAffiliations(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	page, limit := pageParams(r)

	ctx, cancel := opContext(r)
	defer cancel()

	result, err := h.Affiliations.ListActiveByHR(ctx, p, r.URL.Query().Get("email"), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) RemoveAffiliation(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	result, err := h.Affiliations.Remove(ctx, p, r.URL.Query().Get("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}
