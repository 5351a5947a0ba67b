package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"wheeladmin/internal/client"
	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
	"wheeladmin/internal/principal"
	"wheeladmin/internal/services"
)

const profileKey = "profile"

// Services are the admin operations served over HTTP.
type Services struct {
	Prizes   *services.PrizeOrder
	Spinner  *services.Spinner
	Assets   *services.WheelAssets
	Scanner  *services.Scanner
	Team     *services.Team
	Activity *services.Activity
	Domains  *services.CustomDomains
	Wallet   *services.Wallet
	// AssetURL turns a service asset path into an absolute URL.
	AssetURL func(path string) string
}

// HTTPHandler holds the dependencies for the HTTP handlers, like the admin
// services and the name of the identity header.
type HTTPHandler struct {
	svc            Services
	identityHeader string
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(svc Services, identityHeader string) *HTTPHandler {
	if svc.AssetURL == nil {
		svc.AssetURL = func(path string) string { return path }
	}
	return &HTTPHandler{
		svc:            svc,
		identityHeader: identityHeader,
	}
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	h.RegisterPublicRoutes(router)

	api := router.Group("/api")
	api.Use(h.PrincipalMiddleware())

	// Any signed-in principal can see and name itself.
	api.GET("/me", h.GetMe)
	api.POST("/me", h.GetMe)
	api.PATCH("/me", h.UpdateMe)

	scan := api.Group("/scan")
	scan.Use(h.RequireRole(models.UserRoleAdmin, models.UserRoleScanner))
	scan.POST("", h.Scan)
	scan.GET("", h.GetScanResult)

	admin := api.Group("")
	admin.Use(h.RequireRole(models.UserRoleAdmin))
	h.RegisterWheelRoutes(admin)
	h.RegisterAssetRoutes(admin)
	h.RegisterActivityRoutes(admin)
	h.RegisterTeamRoutes(admin)
	h.RegisterDomainRoutes(admin)
	admin.POST("/transfers", h.Transfer)
}

// RegisterPublicRoutes registers the routes the wheel display reads without
// signing in.
func (h *HTTPHandler) RegisterPublicRoutes(router *gin.Engine) {
	router.GET("/healthz", h.Healthz)
	router.GET("/api/wheel/data", h.GetWheelData)
	router.GET("/api/wheel/current", h.GetCurrentPrize)
}

// Healthz reports that the server is up.
func (h *HTTPHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PrincipalMiddleware reads the caller from the identity header and makes
// every service call on its behalf.
func (h *HTTPHandler) PrincipalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(h.identityHeader))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
			return
		}
		p, err := principal.Parse(raw)
		if err != nil {
			logger.Warningf("Rejecting caller %q: %v", raw, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid caller identity"})
			return
		}
		if p.IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "anonymous callers are not allowed"})
			return
		}
		c.Request = c.Request.WithContext(client.WithCaller(c.Request.Context(), p.String()))
		c.Next()
	}
}

// RequireRole lets the request through only when the caller's profile has
// one of roles.
func (h *HTTPHandler) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, err := h.svc.Team.Me(c.Request.Context())
		if err != nil {
			h.fail(c, "Failed to load your profile", err)
			return
		}
		if !slices.Contains(roles, me.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "your role does not allow this operation"})
			return
		}
		c.Set(profileKey, me)
		c.Next()
	}
}

// statusOf maps err to the HTTP status reported to the browser.
func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrSoleInstance), errors.Is(err, services.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrPrizeNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSaveInProgress), errors.Is(err, services.ErrExtractionInProgress):
		return http.StatusConflict
	}
	var e errorx.Err
	if errors.As(err, &e) && e.Code >= 400 && e.Code < 600 {
		return int(e.Code)
	}
	return http.StatusInternalServerError
}

// fail logs err and answers with message and the rendered error.
func (h *HTTPHandler) fail(c *gin.Context, message string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("%s: %v", message, err)
	} else {
		logger.Infof("%s: %v", message, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message + ": " + errorx.Render(err)})
}

// badRequest answers a request that failed validation before reaching the
// service.
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
