package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"statuswatch/watcher"
)

// RegisterStatusRoutes registers the read-only monitoring endpoints.
func RegisterStatusRoutes(r *gin.Engine, w *watcher.Watcher, store *IncidentStore) {
	g := r.Group("/api")
	g.GET("/providers", handleProviders(w))
	g.GET("/incidents", handleIncidents(store))
}

// handleProviders reports per-provider polling state.
// GET /api/providers
func handleProviders(w *watcher.Watcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"providers": w.Status()})
	}
}

// handleIncidents returns the most recent emitted incidents, newest
// first. An optional ?limit= caps the result.
// GET /api/incidents
func handleIncidents(store *IncidentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		incidents := store.Recent()
		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			if limit < len(incidents) {
				incidents = incidents[:limit]
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"count":     len(incidents),
			"incidents": incidents,
		})
	}
}
