package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"statuswatch/watcher"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(w *watcher.Watcher, store *IncidentStore) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)
	RegisterStatusRoutes(r, w, store)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
