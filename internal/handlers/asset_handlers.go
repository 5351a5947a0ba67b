package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"wheeladmin/internal/models"
)

// maxUploadSize bounds uploaded images and CSV files.
const maxUploadSize = 8 << 20

// RegisterAssetRoutes registers the wheel asset routes.
func (h *HTTPHandler) RegisterAssetRoutes(r *gin.RouterGroup) {
	r.GET("/assets", h.ListAssets)
	r.POST("/assets", h.CreateAsset)
	r.POST("/assets/import", h.ImportAssetsCSV)
	r.POST("/assets/defaults", h.SetDefaultAssets)
	r.GET("/assets/tokens", h.ListTokens)
	r.POST("/assets/tokens/refresh", h.RefreshTokens)
	r.GET("/assets/tokens/usd-sum", h.GetTokensUsdSum)
	r.GET("/assets/:id", h.GetAsset)
	r.PATCH("/assets/:id", h.UpdateAsset)
	r.DELETE("/assets/:id", h.DeleteAsset)
	r.PUT("/assets/:id/images/:kind", h.UploadAssetImage)
	r.GET("/assets/:id/images/:kind", h.GetAssetImage)
}

// ListAssets handles the request for the wheel assets, optionally filtered
// with ?state=enabled or ?state=disabled.
func (h *HTTPHandler) ListAssets(c *gin.Context) {
	var state *models.WheelAssetState
	switch s := models.WheelAssetState(c.Query("state")); s {
	case "":
	case models.WheelAssetStateEnabled, models.WheelAssetStateDisabled:
		state = &s
	default:
		badRequest(c, fmt.Errorf("invalid state %q", s))
		return
	}
	assets, err := h.svc.Assets.List(c.Request.Context(), state)
	if err != nil {
		h.fail(c, "Failed to list wheel assets", err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// GetAsset handles the request for one wheel asset.
func (h *HTTPHandler) GetAsset(c *gin.Context) {
	a, err := h.svc.Assets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to load wheel asset", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// CreateAsset handles the form submission for a new wheel asset.
func (h *HTTPHandler) CreateAsset(c *gin.Context) {
	var req models.CreateWheelAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.svc.Assets.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "Failed to create wheel asset", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// UpdateAsset handles the form submission for an existing wheel asset. Only
// the fields present in the body change.
func (h *HTTPHandler) UpdateAsset(c *gin.Context) {
	var req models.UpdateWheelAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.ID = c.Param("id")
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		badRequest(c, fmt.Errorf("name cannot be empty"))
		return
	}
	if err := h.svc.Assets.Update(c.Request.Context(), req); err != nil {
		h.fail(c, "Failed to update wheel asset", err)
		return
	}
	a, err := h.svc.Assets.Get(c.Request.Context(), req.ID)
	if err != nil {
		h.fail(c, "Failed to load wheel asset", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAsset handles the request to delete a wheel asset.
func (h *HTTPHandler) DeleteAsset(c *gin.Context) {
	if err := h.svc.Assets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "Failed to delete wheel asset", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportAssetsCSV handles the CSV upload of gadget assets. Each row holds
// name, total amount and an optional background color.
func (h *HTTPHandler) ImportAssetsCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("assetsCSV")
	if err != nil {
		badRequest(c, fmt.Errorf("error retrieving file: %w", err))
		return
	}
	defer file.Close()

	reader := csv.NewReader(io.LimitReader(file, maxUploadSize))
	reader.FieldsPerRecord = -1
	var created []models.WheelAsset
	var skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			badRequest(c, fmt.Errorf("error reading CSV: %w", err))
			return
		}

		if len(record) < 2 || len(record) > 3 {
			logger.Infof("Skipping malformed asset CSV record: %v", record)
			skipped++
			continue
		}
		total, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 32)
		if err != nil {
			logger.Infof("Skipping asset CSV record with invalid total amount: %v", record)
			skipped++
			continue
		}
		req := models.CreateWheelAssetRequest{
			Name:            strings.TrimSpace(record[0]),
			TotalAmount:     uint32(total),
			AssetTypeConfig: models.Gadget{},
		}
		if len(record) == 3 && strings.TrimSpace(record[2]) != "" {
			req.WheelUISettings = &models.WheelAssetUISettings{BackgroundColorHex: strings.TrimSpace(record[2])}
		}

		a, err := h.svc.Assets.Create(c.Request.Context(), req)
		if err != nil {
			h.fail(c, fmt.Sprintf("Failed to import %q", req.Name), err)
			return
		}
		created = append(created, a)
	}

	c.JSON(http.StatusOK, gin.H{"created": created, "skipped": skipped})
}

// SetDefaultAssets handles the request to create the default token assets.
func (h *HTTPHandler) SetDefaultAssets(c *gin.Context) {
	if err := h.svc.Assets.SetDefaults(c.Request.Context()); err != nil {
		h.fail(c, "Failed to set default wheel assets", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTokens handles the request for the token assets, most valuable first.
func (h *HTTPHandler) ListTokens(c *gin.Context) {
	tokens, err := h.svc.Assets.Tokens(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to list tokens", err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// RefreshTokens handles the request to refresh token balances and prices.
func (h *HTTPHandler) RefreshTokens(c *gin.Context) {
	if err := h.svc.Assets.RefreshTokens(c.Request.Context()); err != nil {
		h.fail(c, "Failed to refresh tokens data", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTokensUsdSum handles the request for the total USD value of the
// enabled token balances.
func (h *HTTPHandler) GetTokensUsdSum(c *gin.Context) {
	sum, err := h.svc.Assets.TokensUsdValueSum(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to sum tokens value", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usd_value": sum.StringFixed(2)})
}

func kindParam(c *gin.Context) (models.ImageKind, bool) {
	switch kind := models.ImageKind(c.Param("kind")); kind {
	case models.ImageKindWheel, models.ImageKindModal:
		return kind, true
	}
	badRequest(c, fmt.Errorf("invalid image kind %q", c.Param("kind")))
	return "", false
}

// UploadAssetImage handles an image upload, either as the raw request body
// or as the "image" field of a multipart form.
func (h *HTTPHandler) UploadAssetImage(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, _, err := c.Request.FormFile("image")
		if err != nil {
			badRequest(c, fmt.Errorf("error retrieving file: %w", err))
			return
		}
		defer file.Close()
		body = file
	}
	content, err := io.ReadAll(io.LimitReader(body, maxUploadSize+1))
	if err != nil {
		badRequest(c, fmt.Errorf("error reading image: %w", err))
		return
	}
	if len(content) > maxUploadSize {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image is too large"})
		return
	}

	id := c.Param("id")
	if err := h.svc.Assets.UploadImage(c.Request.Context(), id, kind, content); err != nil {
		h.fail(c, "Failed to upload image", err)
		return
	}
	a, err := h.svc.Assets.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to load wheel asset", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// GetAssetImage handles the request for an asset image.
func (h *HTTPHandler) GetAssetImage(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	content, contentType, err := h.svc.Assets.Image(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		h.fail(c, "Failed to load image", err)
		return
	}
	c.Data(http.StatusOK, contentType, content)
}
