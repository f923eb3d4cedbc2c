package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/farebd/leasehold/api/internal/errors"
	"github.com/farebd/leasehold/api/internal/middleware"
	"github.com/farebd/leasehold/api/internal/models"
	"github.com/farebd/leasehold/api/internal/search"
	"github.com/farebd/leasehold/api/internal/services"
)

// ListingHandler handles listing-related HTTP requests.
type ListingHandler struct {
	service services.ListingService
}

// NewListingHandler creates a new ListingHandler instance.
func NewListingHandler(service services.ListingService) *ListingHandler {
	return &ListingHandler{
		service: service,
	}
}

// BrowseRequest represents the query parameters for the paged listing endpoint.
type BrowseRequest struct {
	Location string `form:"location"`
	Type     string `form:"type"`
	Purpose  string `form:"purpose"`
	Page     int    `form:"page" binding:"omitempty,min=0"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// SearchRequest represents the body of the search endpoint. The field names
// mirror the search form.
type SearchRequest struct {
	Location string `json:"location"`
	AreaType string `json:"areaType"`
	Purpose  string `json:"purpose"`
}

// BrowseResponse represents one page of filtered listings.
type BrowseResponse struct {
	Listings   []models.Listing `json:"listings"`
	TotalCount int              `json:"total_count"`
	PageCount  int              `json:"page_count"`
	Page       int              `json:"page"`
}

// SearchResponse represents the unpaged search result.
type SearchResponse struct {
	Listings []models.Listing `json:"listings"`
	Count    int              `json:"count"`
}

// ListingResponse represents a single listing.
type ListingResponse struct {
	Listing *models.Listing `json:"listing"`
}

// CreateListingRequest represents the listing registration form.
type CreateListingRequest struct {
	Type            string           `json:"type" binding:"required"`
	Location        string           `json:"location" binding:"required"`
	Title           string           `json:"title" binding:"required"`
	Description     string           `json:"description"`
	Price           float64          `json:"price" binding:"min=0"`
	LeaseType       string           `json:"leaseType" binding:"required"`
	Utilities       models.Utilities `json:"utilities"`
	Accessibility   string           `json:"accessibility"`
	PublicLighting  bool             `json:"publicLighting"`
	Sidewalk        bool             `json:"sidewalk"`
	Photos          []string         `json:"photos" binding:"required,min=1"`
	FullValue       *float64         `json:"fullValueOfProperty"`
	DevelopmentPlan []string         `json:"developmentPlan"`
	BuildingType    string           `json:"buildingType"`
}

// CreateListingResponse carries the id of the newly registered listing.
type CreateListingResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Browse handles GET /api/v1/properties.
// It filters the approved collection by location, type, and purpose, and
// returns the requested page.
func (h *ListingHandler) Browse(c *gin.Context) {
	var req BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	criteria := search.Criteria{
		Location:     req.Location,
		PropertyType: models.PropertyType(req.Type),
		Purpose:      search.Purpose(req.Purpose),
	}

	page, err := h.service.Browse(c.Request.Context(), criteria, req.Page, req.PageSize)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCriteria) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to browse listings", err)
		return
	}

	c.JSON(http.StatusOK, BrowseResponse{
		Listings:   page.Items,
		TotalCount: page.TotalCount,
		PageCount:  page.PageCount,
		Page:       req.Page,
	})
}

// Search handles POST /api/v1/search.
// It returns every approved listing matching the search form, unpaged.
func (h *ListingHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	criteria := search.Criteria{
		Location:     req.Location,
		PropertyType: models.PropertyType(req.AreaType),
		Purpose:      search.Purpose(req.Purpose),
	}

	listings, err := h.service.Search(c.Request.Context(), criteria)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCriteria) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to search listings", err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Listings: listings,
		Count:    len(listings),
	})
}

// Recent handles GET /api/v1/properties/recent.
func (h *ListingHandler) Recent(c *gin.Context) {
	listings, err := h.service.Recent(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to query recent listings", err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Listings: listings,
		Count:    len(listings),
	})
}

// Get handles GET /api/v1/properties/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	id := c.Param("id")

	listing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			apierrors.NotFound(c, "Listing not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to query listing", err)
		return
	}

	c.JSON(http.StatusOK, ListingResponse{Listing: listing})
}

// Create handles POST /api/v1/properties.
// The authenticated identity becomes the listing owner; the listing enters
// moderation as pending.
func (h *ListingHandler) Create(c *gin.Context) {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	listing := &models.Listing{
		Type:            models.PropertyType(req.Type),
		Location:        req.Location,
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		LeaseType:       req.LeaseType,
		Utilities:       req.Utilities,
		Accessibility:   req.Accessibility,
		PublicLighting:  req.PublicLighting,
		Sidewalk:        req.Sidewalk,
		Photos:          req.Photos,
		FullValue:       req.FullValue,
		DevelopmentPlan: req.DevelopmentPlan,
		BuildingType:    req.BuildingType,
		CreatedBy: models.ListingOwner{
			Email:    user.Email,
			Name:     user.Name,
			PhotoURL: user.PhotoURL,
		},
	}

	id, err := h.service.Create(c.Request.Context(), listing)
	if err != nil {
		if errors.Is(err, services.ErrInvalidListing) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to create listing", err)
		return
	}

	c.JSON(http.StatusCreated, CreateListingResponse{
		ID:     id,
		Status: string(models.ListingStatusPending),
	})
}

// Delete handles DELETE /api/v1/properties/:id.
// Only the listing owner or an admin may delete.
func (h *ListingHandler) Delete(c *gin.Context) {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	id := c.Param("id")

	err := h.service.Delete(c.Request.Context(), id, user.Email, user.Role)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			apierrors.NotFound(c, "Listing not found")
			return
		}
		if errors.Is(err, services.ErrNotOwner) {
			apierrors.Forbidden(c, "Only the listing owner or an admin may delete this listing")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete listing", err)
		return
	}

	c.Status(http.StatusNoContent)
}
