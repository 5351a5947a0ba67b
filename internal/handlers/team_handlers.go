package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"wheeladmin/internal/models"
)

// RegisterTeamRoutes registers the team management routes.
func (h *HTTPHandler) RegisterTeamRoutes(r *gin.RouterGroup) {
	r.GET("/team", h.ListTeam)
	r.PATCH("/team/:id", h.UpdateTeamMember)
	r.DELETE("/team/:id", h.DeleteTeamMember)
}

// GetMe handles the request for the caller's profile. The profile is created
// on first login with the unassigned role.
func (h *HTTPHandler) GetMe(c *gin.Context) {
	me, err := h.svc.Team.Me(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to load your profile", err)
		return
	}
	c.JSON(http.StatusOK, me)
}

type updateMeRequest struct {
	Username string `json:"username" binding:"required"`
}

// UpdateMe handles the form submission for the caller's username.
func (h *HTTPHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.Team.UpdateMyUsername(c.Request.Context(), req.Username); err != nil {
		h.fail(c, "Failed to update your profile", err)
		return
	}
	h.GetMe(c)
}

// ListTeam handles the request for all team members.
func (h *HTTPHandler) ListTeam(c *gin.Context) {
	users, err := h.svc.Team.List(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to list team members", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type updateMemberRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin scanner unassigned"`
}

// UpdateTeamMember handles a username or role change of a team member.
func (h *HTTPHandler) UpdateTeamMember(c *gin.Context) {
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Username == nil && req.Role == nil {
		badRequest(c, fmt.Errorf("nothing to update"))
		return
	}
	update := models.UpdateUserProfileRequest{UserID: c.Param("id"), Username: req.Username}
	if req.Role != nil {
		role, _ := models.ParseUserRole(*req.Role)
		update.Role = &role
	}
	if err := h.svc.Team.Update(c.Request.Context(), update); err != nil {
		h.fail(c, "Failed to update team member", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTeamMember handles the request to remove a team member.
func (h *HTTPHandler) DeleteTeamMember(c *gin.Context) {
	if err := h.svc.Team.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "Failed to delete team member", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type transferRequest struct {
	LedgerCanisterID string `json:"ledger_canister_id" binding:"required"`
	To               string `json:"to" binding:"required"`
	Amount           uint64 `json:"amount" binding:"required,gt=0"`
}

// Transfer handles a token transfer out of the service account.
func (h *HTTPHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	blockIndex, err := h.svc.Wallet.Transfer(c.Request.Context(), models.TransferTokenRequest{
		LedgerCanisterID: req.LedgerCanisterID,
		To:               req.To,
		Amount:           req.Amount,
	})
	if err != nil {
		h.fail(c, "Failed to transfer tokens", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"block_index": blockIndex})
}

type scanRequest struct {
	Text string `json:"text" binding:"required"`
}

// Scan handles a scanned QR code, extracting a prize for the principal it
// holds.
func (h *HTTPHandler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.svc.Scanner.Scan(c.Request.Context(), req.Text)
	if err != nil {
		h.fail(c, "Failed to extract prize", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetScanResult handles the request for the outcome of the last scan.
func (h *HTTPHandler) GetScanResult(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Scanner.Result())
}
