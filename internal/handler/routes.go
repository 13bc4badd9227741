package handler

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/apolaki-ghub/Project3/internal/middleware"
	"github.com/apolaki-ghub/Project3/internal/web"
)

type RouterOptions struct {
	RateLimit       bool
	RateLimitEvery  time.Duration
	RateLimitBurst  int
	RateLimitExpiry time.Duration
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *Handler, opts RouterOptions) (*gin.Engine, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("NewRouter(): failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(h.log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(templates)

	router.GET("/", h.Index)
	router.GET("/script.js", h.Script)
	router.GET("/upload/:filename", h.GetUpload)
	router.GET("/uploads/:filename", h.GetUploads)
	router.GET("/health", h.Health)
	router.GET("/ws/reports", h.ReportFeed)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	writes := []gin.HandlerFunc{}
	if opts.RateLimit {
		writes = append(writes, middleware.RateLimit(opts.RateLimitEvery, opts.RateLimitBurst, opts.RateLimitExpiry))
	}
	writes = append(writes, middleware.AuthMiddleware(h.issuer))

	uploads := router.Group("/", writes...)
	{
		uploads.POST("/upload", h.Upload)
		uploads.POST("/upload_text", h.UploadText)
	}

	api := router.Group("/api")
	{
		api.GET("/history", h.GetHistory)
		if opts.RateLimit {
			api.POST("/token", middleware.RateLimit(opts.RateLimitEvery, opts.RateLimitBurst, opts.RateLimitExpiry), h.IssueToken)
		} else {
			api.POST("/token", h.IssueToken)
		}
	}

	return router, nil
}
