// handlers/auth_handler.go
package handlers

import (
	"net/http"

	"assetverse/utils"
	"assetverse/workflow"
)

func (h *Handler) RegisterHR(w http.ResponseWriter, r *http.Request) {
	var in workflow.RegisterHRInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	hr, err := h.Accounts.RegisterHR(ctx, in)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "HR registered successfully",
		"userId":  hr.ID.Hex(),
	})
}

func (h *Handler) RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	var in workflow.RegisterEmployeeInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	employee, err := h.Accounts.RegisterEmployee(ctx, in)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Employee registered successfully",
		"userId":  employee.ID.Hex(),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	p, err := h.Accounts.Login(ctx, in.Email, in.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.Tokens.Generate(p)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  p,
	})
}

func (h *Handler) LookupUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := opContext(r)
	defer cancel()

	account, err := h.Accounts.Lookup(ctx, r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, account)
}
