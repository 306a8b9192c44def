package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers the router registers.
type HandlerBundle struct {
	// LINE webhook
	WebhookHandler gin.HandlerFunc

	// Operations
	HealthHandler gin.HandlerFunc
}
