package handlers

import (
	"net/http"

	"ruma/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "message": "Hi, I'm RUMA", "dependencies": status})
}
