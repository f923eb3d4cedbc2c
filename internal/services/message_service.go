package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/farebd/leasehold/api/internal/logger"
	"github.com/farebd/leasehold/api/internal/models"
	"github.com/farebd/leasehold/api/internal/repository"
)

// Service-level errors
var (
	ErrEmptyMessage   = errors.New("message text must not be empty")
	ErrSelfMessage    = errors.New("cannot message yourself")
	ErrMissingPartner = errors.New("partner email is required")
)

// MessageService defines the interface for chat business logic. Reads are
// snapshots over the document store; clients poll for updates.
type MessageService interface {
	// Conversations summarizes every thread the user participates in,
	// newest activity first.
	Conversations(ctx context.Context, email string) ([]models.Conversation, error)

	// Thread returns the full message history with one partner, oldest
	// first.
	Thread(ctx context.Context, email, partnerEmail string) ([]models.Message, error)

	// Send stores a new message from sender to recipient.
	Send(ctx context.Context, senderEmail, toEmail, text string) (*models.Message, error)

	// MarkRead marks all unread messages from the partner as read and
	// returns the number updated.
	MarkRead(ctx context.Context, email, partnerEmail string) (int64, error)
}

// messageService is the concrete implementation of MessageService.
type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	log      *logger.Logger
}

// NewMessageService creates a new instance of MessageService.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, log *logger.Logger) MessageService {
	return &messageService{
		messages: messages,
		users:    users,
		log:      log,
	}
}

// Conversations folds the user's full message history into per-partner
// summaries and decorates them with partner profile data where available.
func (s *messageService) Conversations(ctx context.Context, email string) ([]models.Conversation, error) {
	history, err := s.messages.FindInvolving(ctx, email)
	if err != nil {
		s.log.Error("Failed to query message history", err, map[string]interface{}{"email": email})
		return nil, fmt.Errorf("failed to query message history: %w", err)
	}

	byPartner := make(map[string]*models.Conversation)
	for _, msg := range history {
		partner := msg.SenderEmail
		if partner == email {
			partner = msg.ToEmail
		}

		conv, ok := byPartner[partner]
		if !ok {
			conv = &models.Conversation{PartnerEmail: partner}
			byPartner[partner] = conv
		}

		// History is timestamp-ascending, so the last seen message wins.
		conv.LastMessage = msg.Text
		conv.LastMessageTime = msg.Timestamp

		if msg.SenderEmail == partner && !msg.Read {
			conv.UnreadCount++
		}
	}

	partners := make([]string, 0, len(byPartner))
	for partner := range byPartner {
		partners = append(partners, partner)
	}

	profiles, err := s.users.FindByEmails(ctx, partners)
	if err != nil {
		// Conversations still render without profile decoration.
		s.log.Warn("Failed to load partner profiles", map[string]interface{}{"error": err.Error()})
		profiles = map[string]models.User{}
	}

	conversations := make([]models.Conversation, 0, len(byPartner))
	for partner, conv := range byPartner {
		if profile, ok := profiles[partner]; ok {
			conv.PartnerName = profile.Name
			conv.PartnerPhotoURL = profile.PhotoURL
		}
		conversations = append(conversations, *conv)
	}

	// Newest activity first.
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageTime.After(conversations[j].LastMessageTime)
	})

	return conversations, nil
}

func (s *messageService) Thread(ctx context.Context, email, partnerEmail string) ([]models.Message, error) {
	if strings.TrimSpace(partnerEmail) == "" {
		return nil, ErrMissingPartner
	}

	messages, err := s.messages.FindBetween(ctx, email, partnerEmail)
	if err != nil {
		s.log.Error("Failed to query thread", err, map[string]interface{}{
			"email":   email,
			"partner": partnerEmail,
		})
		return nil, fmt.Errorf("failed to query thread: %w", err)
	}

	return messages, nil
}

func (s *messageService) Send(ctx context.Context, senderEmail, toEmail, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if strings.TrimSpace(toEmail) == "" {
		return nil, ErrMissingPartner
	}
	if strings.EqualFold(senderEmail, toEmail) {
		return nil, ErrSelfMessage
	}

	message := &models.Message{
		SenderEmail: senderEmail,
		ToEmail:     toEmail,
		Text:        text,
		Timestamp:   time.Now().UTC(),
		Read:        false,
	}

	id, err := s.messages.Insert(ctx, message)
	if err != nil {
		s.log.Error("Failed to send message", err, map[string]interface{}{
			"sender": senderEmail,
			"to":     toEmail,
		})
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	message.ID = id

	s.log.Info("Message sent", map[string]interface{}{
		"id":     id,
		"sender": senderEmail,
		"to":     toEmail,
	})

	return message, nil
}

func (s *messageService) MarkRead(ctx context.Context, email, partnerEmail string) (int64, error) {
	if strings.TrimSpace(partnerEmail) == "" {
		return 0, ErrMissingPartner
	}

	updated, err := s.messages.MarkThreadRead(ctx, email, partnerEmail)
	if err != nil {
		s.log.Error("Failed to mark thread read", err, map[string]interface{}{
			"email":   email,
			"partner": partnerEmail,
		})
		return 0, fmt.Errorf("failed to mark thread read: %w", err)
	}

	return updated, nil
}
