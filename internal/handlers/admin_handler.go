package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/farebd/leasehold/api/internal/errors"
	"github.com/farebd/leasehold/api/internal/middleware"
	"github.com/farebd/leasehold/api/internal/models"
	"github.com/farebd/leasehold/api/internal/repository"
	"github.com/farebd/leasehold/api/internal/services"
)

// AdminHandler handles the moderation HTTP requests. Routes using it must sit
// behind the admin role gate.
type AdminHandler struct {
	service services.ListingService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(service services.ListingService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// AdminListRequest represents the moderation view filters.
type AdminListRequest struct {
	Term   string `form:"term"`
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Type   string `form:"type" binding:"omitempty,oneof=plot building"`
}

// List handles GET /api/v1/admin/properties.
// Unlike the public endpoints it returns listings of every status.
func (h *AdminHandler) List(c *gin.Context) {
	var req AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	filter := repository.AdminListingFilter{
		Term:   req.Term,
		Status: models.ListingStatus(req.Status),
		Type:   models.PropertyType(req.Type),
	}

	listings, err := h.service.AdminList(c.Request.Context(), filter)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to query listings", err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Listings: listings,
		Count:    len(listings),
	})
}

// Approve handles POST /api/v1/admin/properties/:id/approve.
func (h *AdminHandler) Approve(c *gin.Context) {
	h.moderate(c, models.ListingStatusApproved)
}

// Reject handles POST /api/v1/admin/properties/:id/reject.
func (h *AdminHandler) Reject(c *gin.Context) {
	h.moderate(c, models.ListingStatusRejected)
}

func (h *AdminHandler) moderate(c *gin.Context, status models.ListingStatus) {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	id := c.Param("id")

	err := h.service.Moderate(c.Request.Context(), id, status, user.Email)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			apierrors.NotFound(c, "Listing not found")
			return
		}
		if errors.Is(err, services.ErrInvalidStatus) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to moderate listing", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     id,
		"status": string(status),
	})
}
