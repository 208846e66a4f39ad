// handlers/pricing_handler.go
package handlers

import (
	"net/http"

	"assetverse/utils"
)

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := opContext(r)
	defer cancel()

	packages, err := h.Billing.ListPackages(ctx)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, packages)
}
