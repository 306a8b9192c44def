package routes

import (
	"time"

	"ruma/handlers"
	"ruma/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWebhookRoute registers the LINE webhook. LINE retries on rate
// limiting, so the limiter is not applied here.
func RegisterWebhookRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/webhook", hb.WebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle, requestsPerMin int) {
	api := r.Group("")
	{
		api.Use(cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
		api.Use(middleware.RateLimitMiddleware(requestsPerMin))
		api.GET("/health", hb.HealthHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, requestsPerMin int) {
	RegisterWebhookRoute(r, hb)
	RegisterHealthRoute(r, hb, requestsPerMin)
}
