package handlers

import (
	"database/sql"
	"net/http"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	DB *sql.DB
}

// Health handles GET /health. The database ping is part of the check so
// load balancers stop routing to an instance that lost its connection.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": "connected",
	})
}
