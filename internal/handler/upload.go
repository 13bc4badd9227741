package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apolaki-ghub/Project3/internal/analysis"
	"github.com/apolaki-ghub/Project3/internal/middleware"
)

const (
	audioField = "audio_data"
	textField  = "text"
)

// Upload godoc
// @Summary      Upload a recording for analysis
// @Description  Stores the WAV under a timestamp name, runs the configured analysis backend and writes the report next to it.
// @Description  The request blocks until the analysis finishes.
// @Tags         Recordings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio_data  formData  file  true  "Single-channel WAV recording"
// @Success      303  {string}  string  "Redirect to /"
// @Failure      413  {object}  handler.ErrorResponse  "Upload too large"
// @Failure      500  {object}  handler.AnalysisErrorResponse  "Filesystem failure"
// @Failure      502  {object}  handler.AnalysisErrorResponse  "External service failure"
// @Failure      504  {object}  handler.AnalysisErrorResponse  "External service timeout"
// @Router       /upload [post]
func (h *Handler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, header, err := c.Request.FormFile(audioField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "upload too large"})
			return
		}
		redirectWithNotice(c, "No audio data")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		redirectWithNotice(c, "No selected file")
		return
	}

	result, err := h.service.ProcessUpload(c.Request.Context(), file)
	if err != nil {
		h.renderAnalysisError(c, err)
		return
	}

	middleware.Logger(c).Info("Upload(): report written",
		zap.String("recording", result.Recording),
		zap.String("report", result.Report),
		zap.String("backend", result.Backend),
	)
	c.Redirect(http.StatusSeeOther, "/")
}

// UploadText godoc
// @Summary      Synthesize speech from text
// @Description  Synthesizes the text into a new WAV recording and writes a report with the sentiment of the submitted text.
// @Tags         Recordings
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        text  formData  string  true  "Text to synthesize"
// @Success      303  {string}  string  "Redirect to /"
// @Failure      502  {object}  handler.AnalysisErrorResponse  "External service failure"
// @Failure      503  {object}  handler.ErrorResponse  "Speech synthesis not configured"
// @Failure      504  {object}  handler.AnalysisErrorResponse  "External service timeout"
// @Router       /upload_text [post]
func (h *Handler) UploadText(c *gin.Context) {
	result, err := h.service.ProcessText(c.Request.Context(), c.PostForm(textField))
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyText) {
			redirectWithNotice(c, "No text submitted")
			return
		}
		h.renderAnalysisError(c, err)
		return
	}

	middleware.Logger(c).Info("UploadText(): report written",
		zap.String("recording", result.Recording),
		zap.String("report", result.Report),
	)
	c.Redirect(http.StatusSeeOther, "/")
}
