package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"wheeladmin/internal/models"
	"wheeladmin/internal/services"
)

// RegisterWheelRoutes registers the prize order and spinner routes.
func (h *HTTPHandler) RegisterWheelRoutes(r *gin.RouterGroup) {
	r.GET("/wheel/prizes", h.GetPrizeOrder)
	r.PUT("/wheel/prizes/order", h.ReorderPrizes)
	r.POST("/wheel/prizes/:index/duplicate", h.DuplicatePrize)
	r.DELETE("/wheel/prizes/:index", h.RemovePrize)
	r.PATCH("/wheel/prizes/:id", h.UpdatePrizeSettings)
	r.POST("/wheel/prizes/save", h.SavePrizeOrder)
	r.POST("/wheel/prizes/reset", h.ResetPrizeOrder)
	r.POST("/wheel/prizes/refresh", h.RefreshPrizeOrder)
	r.GET("/wheel/probabilities", h.GetPrizeProbabilities)
	r.POST("/wheel/spin/:index", h.Spin)
	r.POST("/wheel/spin/stop", h.StopSpinning)
	r.DELETE("/wheel/current", h.ResetCurrentPrize)
}

type prizeOrderResponse struct {
	services.PrizeOrderState
	IsSaving   bool `json:"is_saving"`
	IsFetching bool `json:"is_fetching"`
}

func (h *HTTPHandler) prizeOrder() prizeOrderResponse {
	return prizeOrderResponse{
		PrizeOrderState: h.svc.Prizes.State(),
		IsSaving:        h.svc.Prizes.IsSaving(),
		IsFetching:      h.svc.Prizes.IsFetching(),
	}
}

func indexParam(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid index %q", c.Param("index")))
		return 0, false
	}
	return i, true
}

// GetPrizeOrder handles the request for the locally edited prize list.
func (h *HTTPHandler) GetPrizeOrder(c *gin.Context) {
	c.JSON(http.StatusOK, h.prizeOrder())
}

type reorderRequest struct {
	UniqueIndexes []float64 `json:"unique_indexes" binding:"required"`
}

// ReorderPrizes handles a drag and drop of the prize list.
func (h *HTTPHandler) ReorderPrizes(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.Prizes.ReorderByUniqueIndex(req.UniqueIndexes); err != nil {
		h.fail(c, "Failed to reorder prizes", err)
		return
	}
	c.JSON(http.StatusOK, h.prizeOrder())
}

// DuplicatePrize handles the request to add another slice of a prize.
func (h *HTTPHandler) DuplicatePrize(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	if err := h.svc.Prizes.Duplicate(i); err != nil {
		h.fail(c, "Failed to duplicate prize", err)
		return
	}
	c.JSON(http.StatusOK, h.prizeOrder())
}

// RemovePrize handles the request to drop one slice of a prize.
func (h *HTTPHandler) RemovePrize(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	if err := h.svc.Prizes.Remove(i); err != nil {
		h.fail(c, "Failed to remove prize", err)
		return
	}
	c.JSON(http.StatusOK, h.prizeOrder())
}

type prizeSettingsRequest struct {
	WheelUISettings models.WheelAssetUISettings `json:"wheel_ui_settings" binding:"required"`
}

// UpdatePrizeSettings handles a color change of every slice of a prize.
func (h *HTTPHandler) UpdatePrizeSettings(c *gin.Context) {
	var req prizeSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	prize, ok := h.svc.Prizes.Prize(id)
	if !ok {
		h.fail(c, "Failed to update prize", fmt.Errorf("%w: %s", services.ErrPrizeNotFound, id))
		return
	}
	prize.WheelUISettings = req.WheelUISettings
	if err := h.svc.Prizes.UpdatePrize(prize); err != nil {
		h.fail(c, "Failed to update prize", err)
		return
	}
	c.JSON(http.StatusOK, h.prizeOrder())
}

// SavePrizeOrder handles the request to push local edits to the service.
func (h *HTTPHandler) SavePrizeOrder(c *gin.Context) {
	if err := h.svc.Prizes.Save(c.Request.Context()); err != nil {
		h.fail(c, "Failed to save prizes", err)
		return
	}
	logger.Infof("Prize order saved")
	c.JSON(http.StatusOK, h.prizeOrder())
}

// ResetPrizeOrder handles the request to discard local edits.
func (h *HTTPHandler) ResetPrizeOrder(c *gin.Context) {
	h.svc.Prizes.Reset()
	c.JSON(http.StatusOK, h.prizeOrder())
}

// RefreshPrizeOrder handles the request to fetch the prize list right away.
func (h *HTTPHandler) RefreshPrizeOrder(c *gin.Context) {
	if err := h.svc.Prizes.Fetch(c.Request.Context()); err != nil {
		h.fail(c, "Failed to fetch prizes", err)
		return
	}
	c.JSON(http.StatusOK, h.prizeOrder())
}

// GetWheelData handles the request for the slices drawn by the wheel.
func (h *HTTPHandler) GetWheelData(c *gin.Context) {
	c.JSON(http.StatusOK, services.WheelData(h.svc.Prizes.Snapshot(), h.svc.AssetURL))
}

// GetPrizeProbabilities handles the request for the chance of each prize.
func (h *HTTPHandler) GetPrizeProbabilities(c *gin.Context) {
	c.JSON(http.StatusOK, services.WithProbability(h.svc.Prizes.Snapshot()))
}

// GetCurrentPrize handles the request for the prize the wheel is on.
func (h *HTTPHandler) GetCurrentPrize(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Spinner.State())
}

// Spin handles a manual spin to the slice at index.
func (h *HTTPHandler) Spin(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	if !h.svc.Spinner.SpinByIndex(i) {
		h.fail(c, "Failed to spin", fmt.Errorf("%w: %d", services.ErrIndexOutOfRange, i))
		return
	}
	c.JSON(http.StatusOK, h.svc.Spinner.State())
}

// StopSpinning handles the end of the spin animation.
func (h *HTTPHandler) StopSpinning(c *gin.Context) {
	h.svc.Spinner.StopSpinning()
	c.JSON(http.StatusOK, h.svc.Spinner.State())
}

// ResetCurrentPrize handles closing the winner modal.
func (h *HTTPHandler) ResetCurrentPrize(c *gin.Context) {
	h.svc.Spinner.ResetCurrentPrize()
	c.JSON(http.StatusOK, h.svc.Spinner.State())
}
