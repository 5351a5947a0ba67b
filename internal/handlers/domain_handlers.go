package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterDomainRoutes registers the custom domain routes.
func (h *HTTPHandler) RegisterDomainRoutes(r *gin.RouterGroup) {
	r.GET("/domains", h.ListDomains)
	r.POST("/domains", h.CreateDomain)
	r.DELETE("/domains/:id", h.DeleteDomain)
	r.POST("/domains/:id/register", h.RegisterDomain)
	r.POST("/domains/:id/poll", h.PollDomain)
}

// ListDomains handles the request for the custom domains.
func (h *HTTPHandler) ListDomains(c *gin.Context) {
	records, err := h.svc.Domains.List(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to list custom domains", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type createDomainRequest struct {
	DomainName string `json:"domain_name" binding:"required,fqdn"`
}

// CreateDomain handles the form submission for a new custom domain.
func (h *HTTPHandler) CreateDomain(c *gin.Context) {
	var req createDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	record, err := h.svc.Domains.Create(c.Request.Context(), strings.ToLower(req.DomainName))
	if err != nil {
		h.fail(c, "Failed to create custom domain", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// RegisterDomain handles the request to retry the boundary node
// registration of a domain that never started one.
func (h *HTTPHandler) RegisterDomain(c *gin.Context) {
	record, err := h.svc.Domains.Register(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to register custom domain", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// PollDomain handles the request to check a registration right away.
func (h *HTTPHandler) PollDomain(c *gin.Context) {
	record, err := h.svc.Domains.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to load custom domain", err)
		return
	}
	record, err = h.svc.Domains.PollRegistration(c.Request.Context(), record)
	if err != nil {
		h.fail(c, "Failed to check custom domain registration", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteDomain handles the request to delete a custom domain.
func (h *HTTPHandler) DeleteDomain(c *gin.Context) {
	if err := h.svc.Domains.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "Failed to delete custom domain", err)
		return
	}
	c.Status(http.StatusNoContent)
}
