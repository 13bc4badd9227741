package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type TokenRequest struct {
	AccessKey string `json:"access_key" binding:"required" example:"s3cr3t-key"`
	Client    string `json:"client" example:"recorder-ui"`
}

type TokenResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken godoc
// @Summary      Exchange the access key for a token
// @Description  Only available when access control is configured.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      handler.TokenRequest  true  "Access key"
// @Success      200      {object}  handler.TokenResponse
// @Failure      400      {object}  handler.ErrorResponse
// @Failure      401      {object}  handler.ErrorResponse
// @Failure      404      {object}  handler.ErrorResponse  "Access control disabled"
// @Router       /api/token [post]
func (h *Handler) IssueToken(c *gin.Context) {
	if h.issuer == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "access control is disabled"})
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}
	if err := h.issuer.VerifyAccessKey(req.AccessKey); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid access key"})
		return
	}

	client := strings.TrimSpace(req.Client)
	if client == "" {
		client = c.ClientIP()
	}
	token, expiresAt, err := h.issuer.GenerateToken(client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
