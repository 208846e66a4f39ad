// handlers/stripe_handler.go
package handlers

import (
	"net/http"

	"assetverse/utils"
)

func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var in struct {
		PackageID string `json:"packageId"`
	}
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if in.PackageID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Package ID is required")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	url, err := h.Billing.CreateCheckoutSession(ctx, p, in.PackageID)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	result, err := h.Billing.VerifyPayment(ctx, p, r.URL.Query().Get("session_id"))
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Package upgraded successfully",
		"subscription": result.Subscription,
		"packageLimit": result.PackageLimit,
	})
}
