// handlers/asset_handler.go
package handlers

import (
	"net/http"

	"assetverse/utils"
	"assetverse/workflow"
)

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var in workflow.CreateAssetInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	asset, err := h.Inventory.Create(ctx, p, in)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, asset)
}

func (h *Handler) ListAllAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := opContext(r)
	defer cancel()

	assets, err := h.Inventory.ListAll(ctx)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, assets)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := opContext(r)
	defer cancel()

	asset, err := h.Inventory.Get(ctx, r.URL.Query().Get("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, asset)
}

func (h *Handler) ListHRAssets(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	page, limit := pageParams(r)

	ctx, cancel := opContext(r)
	defer cancel()

	result, err := h.Inventory.ListByHR(ctx, p, r.URL.Query().Get("email"), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// ListEmployeeAssets returns the assignments checked out to an employee.
func (h *Handler) ListEmployeeAssets(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	assignments, err := h.Assignments.ListByEmployee(ctx, p, r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, assignments)
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var in workflow.UpdateAssetInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := h.Inventory.Update(ctx, p, r.URL.Query().Get("id"), in); err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "asset updated successfully"})
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := h.Inventory.Delete(ctx, p, r.URL.Query().Get("id")); err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "asset deleted successfully"})
}
