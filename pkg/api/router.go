package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sfd-intake/pkg/middleware"
	"sfd-intake/pkg/models"
)

// NewRouter registers the intake routes on a new gin engine
func NewRouter(h *Handlers, allowedOrigins []string, logger *zap.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger, "/health", "/metrics"))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", h.HealthCheck)
	router.GET("/status", h.Status)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	forms := router.Group("/api")
	for path, variant := range map[string]models.FormVariant{
		"/lead":        models.Lead,
		"/scholarship": models.ScholarshipGrant,
		"/volunteer":   models.Volunteer,
	} {
		forms.POST(path, h.Submit(variant))
		forms.GET(path, h.FormStatus(variant))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
