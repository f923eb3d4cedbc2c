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

// MessageHandler handles chat HTTP requests. All routes require an
// authenticated identity; the sender is always the token's email.
type MessageHandler struct {
	service services.MessageService
}

// NewMessageHandler creates a new MessageHandler instance.
func NewMessageHandler(service services.MessageService) *MessageHandler {
	return &MessageHandler{
		service: service,
	}
}

// SendMessageRequest represents the body of the send endpoint.
type SendMessageRequest struct {
	To   string `json:"to" binding:"required,email"`
	Text string `json:"text" binding:"required"`
}

// ConversationsResponse lists the user's threads, newest activity first.
type ConversationsResponse struct {
	Conversations []models.Conversation `json:"conversations"`
}

// ThreadResponse is the full history with one partner, oldest first.
type ThreadResponse struct {
	Messages []models.Message `json:"messages"`
}

// MessageResponse carries a single stored message.
type MessageResponse struct {
	Message *models.Message `json:"message"`
}

// MarkReadResponse reports how many messages were marked read.
type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

// Conversations handles GET /api/v1/messages/conversations.
func (h *MessageHandler) Conversations(c *gin.Context) {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	conversations, err := h.service.Conversations(c.Request.Context(), user.Email)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to query conversations", err)
		return
	}

	c.JSON(http.StatusOK, ConversationsResponse{Conversations: conversations})
}

// Thread handles GET /api/v1/messages/with/:email.
func (h *MessageHandler) Thread(c *gin.Context) {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	partner := c.Param("email")

	messages, err := h.service.Thread(c.Request.Context(), user.Email, partner)
	if err != nil {
		if errors.Is(err, services.ErrMissingPartner) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to query thread", err)
		return
	}

	c.JSON(http.StatusOK, ThreadResponse{Messages: messages})
}

// Send handles POST /api/v1/messages.
func (h *MessageHandler) Send(c *gin.Context) {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	message, err := h.service.Send(c.Request.Context(), user.Email, req.To, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) ||
			errors.Is(err, services.ErrSelfMessage) ||
			errors.Is(err, services.ErrMissingPartner) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to send message", err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: message})
}

// MarkRead handles POST /api/v1/messages/with/:email/read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	partner := c.Param("email")

	updated, err := h.service.MarkRead(c.Request.Context(), user.Email, partner)
	if err != nil {
		if errors.Is(err, services.ErrMissingPartner) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to mark thread read", err)
		return
	}

	c.JSON(http.StatusOK, MarkReadResponse{Updated: updated})
}
