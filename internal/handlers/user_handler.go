package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/farebd/leasehold/api/internal/errors"
	"github.com/farebd/leasehold/api/internal/middleware"
	"github.com/farebd/leasehold/api/internal/models"
	"github.com/farebd/leasehold/api/internal/services"
)

// UserHandler handles profile HTTP requests.
type UserHandler struct {
	service services.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRequest represents the profile registration body. Email and photo
// come from the verified token, never from the client.
type RegisterRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"omitempty,oneof=user seller"`
}

// UserResponse carries a single profile.
type UserResponse struct {
	User *models.User `json:"user"`
}

// Register handles POST /api/v1/users.
// It stores (or overwrites) the profile for the authenticated identity.
func (h *UserHandler) Register(c *gin.Context) {
	authUser, ok := middleware.GetAuthUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	user := &models.User{
		Email:    authUser.Email,
		Name:     req.Name,
		Role:     models.Role(req.Role),
		PhotoURL: authUser.PhotoURL,
	}

	if err := h.service.Register(c.Request.Context(), user); err != nil {
		if errors.Is(err, services.ErrInvalidUser) || errors.Is(err, services.ErrInvalidRole) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to register user", err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{User: user})
}

// Me handles GET /api/v1/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	authUser, ok := middleware.GetAuthUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.service.Get(c.Request.Context(), authUser.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "Profile not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to query profile", err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{User: user})
}
