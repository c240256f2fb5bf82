package handler

import (
	"net/http"
	"time"
)

// HandleHealth reports liveness.
//
//	GET /api/health
func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
