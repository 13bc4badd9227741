/**
* Name: 			handler.go
* Description: 		Gin handlers for the recorder front end
* Workflow: 		listing, upload, text to speech, artifact download, history, token, report feed
 */

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apolaki-ghub/Project3/internal/analysis"
	"github.com/apolaki-ghub/Project3/internal/auth"
	"github.com/apolaki-ghub/Project3/internal/events"
	"github.com/apolaki-ghub/Project3/internal/middleware"
	"github.com/apolaki-ghub/Project3/internal/models"
	"github.com/apolaki-ghub/Project3/internal/storage"
)

const flashCookie = "flash"

// ReportHistory is the read side of the report index.
type ReportHistory interface {
	Recent(ctx context.Context, limit int) ([]models.ReportEntry, error)
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Store          *storage.RecordingStore
	Service        *analysis.Service
	History        ReportHistory
	Hub            *events.Hub
	Issuer         *auth.Issuer
	Logger         *zap.Logger
	MaxUploadBytes int64
}

type Handler struct {
	store          *storage.RecordingStore
	service        *analysis.Service
	history        ReportHistory
	hub            *events.Hub
	issuer         *auth.Issuer
	log            *zap.Logger
	maxUploadBytes int64
}

func New(deps Dependencies) *Handler {
	h := &Handler{
		store:          deps.Store,
		service:        deps.Service,
		history:        deps.History,
		hub:            deps.Hub,
		issuer:         deps.Issuer,
		log:            deps.Logger,
		maxUploadBytes: deps.MaxUploadBytes,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.hub == nil {
		h.hub = events.NewHub(0)
	}
	return h
}

type ErrorResponse struct {
	Error string `json:"error" example:"transcribe stage failed: deadline exceeded"`
}

// AnalysisErrorResponse is returned when an upload could not be analyzed.
// Recording names the file left on disk without a report, if any.
type AnalysisErrorResponse struct {
	Error     string `json:"error" example:"transcribe stage failed: deadline exceeded"`
	Stage     string `json:"stage" example:"transcribe"`
	Timeout   bool   `json:"timeout" example:"true"`
	Recording string `json:"recording,omitempty" example:"20240601-101530AM.wav"`
}

// redirectWithNotice stores a one-shot notice for the listing page.
func redirectWithNotice(c *gin.Context, notice string) {
	c.SetCookie(flashCookie, notice, 60, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func popNotice(c *gin.Context) string {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return value
}

func (h *Handler) renderAnalysisError(c *gin.Context, err error) {
	_ = c.Error(err)
	log := middleware.Logger(c)

	if errors.Is(err, analysis.ErrSynthesisDisabled) || errors.Is(err, analysis.ErrSentimentDisabled) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}

	var se *analysis.StageError
	if !errors.As(err, &se) {
		log.Error("renderAnalysisError(): unexpected failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	status := http.StatusBadGateway
	switch {
	case se.Timeout():
		status = http.StatusGatewayTimeout
	case se.Stage == analysis.StageStore:
		status = http.StatusInternalServerError
	}
	log.Error("renderAnalysisError(): analysis failed",
		zap.String("stage", string(se.Stage)),
		zap.Bool("timeout", se.Timeout()),
		zap.String("orphaned_recording", se.Recording),
		zap.Error(se.Err),
	)
	c.JSON(status, AnalysisErrorResponse{
		Error:     se.Error(),
		Stage:     string(se.Stage),
		Timeout:   se.Timeout(),
		Recording: se.Recording,
	})
}
