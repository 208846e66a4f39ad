// handlers/health_handler.go
package handlers

import (
	"net/http"
	"time"

	"assetverse/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Health Check",
		"time":    time.Now().UTC(),
	})
}
