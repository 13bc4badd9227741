package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apolaki-ghub/Project3/internal/middleware"
	"github.com/apolaki-ghub/Project3/internal/models"
	"github.com/apolaki-ghub/Project3/internal/storage"
	"github.com/apolaki-ghub/Project3/internal/web"
)

type HistoryResponse struct {
	History []models.ReportEntry `json:"history"`
}

// Index godoc
// @Summary      Recording listing page
// @Description  Renders the stored recordings, newest first, each with a link to its report.
// @Tags         Recordings
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Failure      500  {object}  handler.ErrorResponse
// @Router       / [get]
func (h *Handler) Index(c *gin.Context) {
	names, err := h.store.List()
	if err != nil {
		middleware.Logger(c).Error("Index(): failed to list recordings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list recordings"})
		return
	}

	items := make([]models.RecordingItem, 0, len(names))
	for _, name := range names {
		items = append(items, models.RecordingItem{
			Name:      name,
			Report:    storage.ReportName(name),
			HasReport: h.store.HasReport(name),
		})
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Notice":     popNotice(c),
		"Backend":    h.service.Backend(),
		"Recordings": items,
	})
}

// GetUpload godoc
// @Summary      Download an artifact by name
// @Description  Returns a recording (.wav) or report (.wav.txt). Only plain file names inside the upload directory are served.
// @Tags         Recordings
// @Produce      octet-stream
// @Param        filename  path  string  true  "Artifact name (e.g. 20240601-101530AM.wav)"
// @Success      200  {file}    file  "Artifact contents"
// @Failure      404  {object}  handler.ErrorResponse
// @Router       /upload/{filename} [get]
func (h *Handler) GetUpload(c *gin.Context) {
	h.serveArtifact(c, c.Param("filename"))
}

// GetUploads godoc
// @Summary      Download an artifact from the upload directory
// @Tags         Recordings
// @Produce      octet-stream
// @Param        filename  path  string  true  "Artifact name (e.g. 20240601-101530AM.wav.txt)"
// @Success      200  {file}    file  "Artifact contents"
// @Failure      404  {object}  handler.ErrorResponse
// @Router       /uploads/{filename} [get]
func (h *Handler) GetUploads(c *gin.Context) {
	h.serveArtifact(c, c.Param("filename"))
}

func (h *Handler) serveArtifact(c *gin.Context, name string) {
	path, err := h.store.Resolve(name)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			middleware.Logger(c).Warn("serveArtifact(): rejected file name", zap.String("filename", name))
		}
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "file not found"})
		return
	}
	c.File(path)
}

// Script serves the recorder client script.
func (h *Handler) Script(c *gin.Context) {
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", web.Script)
}

// GetHistory godoc
// @Summary      Report history
// @Description  Lists indexed reports, newest first.
// @Tags         History
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries (default 50)"
// @Success      200    {object}  handler.HistoryResponse
// @Failure      400    {object}  handler.ErrorResponse
// @Failure      500    {object}  handler.ErrorResponse
// @Router       /api/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	if h.history == nil {
		c.JSON(http.StatusOK, HistoryResponse{History: []models.ReportEntry{}})
		return
	}

	entries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		middleware.Logger(c).Error("GetHistory(): failed to query history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{History: entries})
}
