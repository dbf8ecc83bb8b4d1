package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asbridge/airtable-slack-bridge/interface/http/handler"
	"github.com/asbridge/airtable-slack-bridge/interface/http/middleware"
)

func NewRouter(
	log *slog.Logger,
	webhookHandler *handler.WebhookHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	router := gin.New()

	// Recovery for all routes
	router.Use(middleware.Recovery(log))

	// Health endpoints skip the request middleware stack
	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/metrics", healthHandler.Metrics)

	// The single webhook endpoint with the full middleware stack
	root := router.Group("/")
	root.Use(middleware.RequestID())
	root.Use(middleware.BodyLimit(1 << 20))
	root.Use(middleware.Metrics())
	root.Use(middleware.Logging(log))
	root.POST("", webhookHandler.Handle)

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method not allowed")
	})

	return router
}
