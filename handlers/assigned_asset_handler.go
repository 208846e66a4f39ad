// handlers/assigned_asset_handler.go
package handlers

import (
	"net/http"

	"assetverse/utils"
	"assetverse/workflow"
)

// DirectAssign serves both POST /assets/assign and the older
// POST /assignedAssets/assign-assets path.
func (h *Handler) DirectAssign(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var in workflow.DirectAssignInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	assignment, err := h.Assignments.DirectAssign(ctx, p, in)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, assignment)
}

func (h *Handler) ReturnAsset(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := h.Assignments.Return(ctx, p, r.URL.Query().Get("id")); err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "return processed"})
}
