package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"backend":   h.service.Backend(),
	}

	switch {
	case h.history == nil:
		response["database"] = gin.H{"status": "not configured"}
	default:
		if err := h.history.Ping(c.Request.Context()); err != nil {
			response["database"] = gin.H{"status": "unhealthy", "error": err.Error()}
		} else {
			response["database"] = gin.H{"status": "healthy"}
		}
	}

	c.JSON(http.StatusOK, response)
}
