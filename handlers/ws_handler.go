// handlers/ws_handler.go
package handlers

import "net/http"

// ServeWS subscribes the calling HR's dashboard to live tenant events.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	h.Hub.ServeWS(w, r, p.Email)
}
