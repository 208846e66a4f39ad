// handlers/request_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"assetverse/utils"
)

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var in struct {
		Note string `json:"note"`
	}
	// A missing body just means no note.
	_ = utils.ParseJSON(r, &in)

	ctx, cancel := opContext(r)
	defer cancel()

	request, err := h.Requests.Submit(ctx, p, r.URL.Query().Get("id"), in.Note)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, request)
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	result, err := h.Requests.Approve(ctx, p, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	if err := h.Requests.Reject(ctx, p, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "request rejected"})
}

func (h *Handler) ListHRRequests(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := opContext(r)
	defer cancel()

	requests, err := h.Requests.ListByHR(ctx, p, r.URL.Query().Get("email"))
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, requests)
}
