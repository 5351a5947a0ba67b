package handlers

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"wheeladmin/internal/models"
	"wheeladmin/internal/services"
)

// RegisterActivityRoutes registers the extraction history routes.
func (h *HTTPHandler) RegisterActivityRoutes(r *gin.RouterGroup) {
	r.GET("/activity", h.ListActivity)
	r.GET("/activity/stats", h.GetActivityStats)
	r.GET("/activity/export", h.ExportActivityCSV)
	r.GET("/activity/:id", h.GetActivity)
}

// ListActivity handles the request for all extractions, newest first.
func (h *HTTPHandler) ListActivity(c *gin.Context) {
	entries, err := h.svc.Activity.List(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to list extractions", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetActivityStats handles the request for the extraction totals.
func (h *HTTPHandler) GetActivityStats(c *gin.Context) {
	stats, err := h.svc.Activity.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to load extraction stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetActivity handles the request for one extraction.
func (h *HTTPHandler) GetActivity(c *gin.Context) {
	e, err := h.svc.Activity.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to load extraction", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func extractionStateName(s models.ExtractionState) string {
	switch s.(type) {
	case models.Processing:
		return "processing"
	case models.Completed:
		return "completed"
	case models.Failed:
		return "failed"
	}
	return ""
}

func activityRow(e services.ActivityEntry) []string {
	var extractedBy, assetID, errorMessage string
	if e.ExtractedBy != nil {
		extractedBy = e.ExtractedBy.Username
	}
	if e.WheelAssetID != nil {
		assetID = *e.WheelAssetID
	}
	if f, ok := e.State.(models.Failed); ok {
		errorMessage = f.Error.Message
	}
	return []string{
		e.CreatedAt,
		e.ExtractedForPrincipal,
		extractedBy,
		assetID,
		extractionStateName(e.State),
		errorMessage,
	}
}

// ExportActivityCSV handles the request to download the extractions as a
// CSV file.
func (h *HTTPHandler) ExportActivityCSV(c *gin.Context) {
	entries, err := h.svc.Activity.List(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to list extractions", err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=wheel_extractions.csv")

	// BOM keeps Excel reading the file as UTF-8.
	c.Writer.Write([]byte("\xef\xbb\xbf"))

	w := csv.NewWriter(c.Writer)
	if err := w.Write([]string{"Created at", "Principal", "Scanned by", "Wheel asset", "State", "Error"}); err != nil {
		logger.Errorf("Error writing CSV header: %v", err)
		return
	}
	for _, e := range entries {
		if err := w.Write(activityRow(e)); err != nil {
			logger.Errorf("Error writing CSV row: %v", err)
			return
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		logger.Errorf("Error flushing CSV writer: %v", err)
	}
}
