package server

import (
	"net/http"

	"kit-allocator/internal/handlers"
	"kit-allocator/internal/logging"
	"kit-allocator/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP API. registry may be nil, in which case
// /metrics is not served.
func NewRouter(h *handlers.Handler, logger logging.Logger, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.InjectActor())

	api := r.Group("/api")

	// СОТРУДНИКИ
	api.POST("/employees/:id/starter-kit", h.AssignStarterKit)
	api.GET("/employees/:id/assets", h.ListEmployeeAssets)

	// ОБОРУДОВАНИЕ
	api.GET("/assets", h.ListAssets)
	api.POST("/assets", middleware.RequireActor(), h.CreateAsset)

	// ШАБЛОНЫ НАБОРОВ
	api.GET("/kits", h.ListKits)
	api.GET("/kits/:jobTitle", h.GetKit)
	api.PUT("/kits", middleware.RequireActor(), h.SaveKit)

	// АУДИТ
	api.GET("/audit", h.ListAuditLogs)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	if registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	}

	return r
}
