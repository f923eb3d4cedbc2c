package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/farebd/leasehold/api/internal/database"
	"github.com/farebd/leasehold/api/internal/models"
)

// MessageRepository defines the interface for chat message data access.
// Reads are plain snapshots; clients poll, there is no push delivery.
type MessageRepository interface {
	// FindBetween returns every message exchanged between the two emails,
	// in ascending timestamp order.
	FindBetween(ctx context.Context, email, partnerEmail string) ([]models.Message, error)

	// FindInvolving returns every message sent or received by the email, in
	// ascending timestamp order.
	FindInvolving(ctx context.Context, email string) ([]models.Message, error)

	// Insert stores a new message and returns its generated id.
	Insert(ctx context.Context, message *models.Message) (string, error)

	// MarkThreadRead marks all unread messages from partnerEmail to email as
	// read and returns how many were updated.
	MarkThreadRead(ctx context.Context, email, partnerEmail string) (int64, error)
}

// messageRepository is the concrete Mongo-backed implementation.
type messageRepository struct {
	collection *mongo.Collection
}

// NewMessageRepository creates a new instance of MessageRepository.
func NewMessageRepository(db *database.Database) MessageRepository {
	return &messageRepository{collection: db.Messages}
}

func (r *messageRepository) FindBetween(ctx context.Context, email, partnerEmail string) ([]models.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"senderEmail": email, "toEmail": partnerEmail},
		{"senderEmail": partnerEmail, "toEmail": email},
	}}

	return r.findMessages(ctx, filter)
}

func (r *messageRepository) FindInvolving(ctx context.Context, email string) ([]models.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"senderEmail": email},
		{"toEmail": email},
	}}

	return r.findMessages(ctx, filter)
}

func (r *messageRepository) Insert(ctx context.Context, message *models.Message) (string, error) {
	if message.ID == "" {
		message.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, message); err != nil {
		return "", fmt.Errorf("failed to insert message: %w", err)
	}
	return message.ID, nil
}

func (r *messageRepository) MarkThreadRead(ctx context.Context, email, partnerEmail string) (int64, error) {
	filter := bson.M{
		"senderEmail": partnerEmail,
		"toEmail":     email,
		"read":        false,
	}

	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark thread read: %w", err)
	}
	return result.ModifiedCount, nil
}

// findMessages runs a Find sorted by ascending timestamp and decodes every
// document, returning an empty slice (never nil) when nothing matches.
func (r *messageRepository) findMessages(ctx context.Context, filter bson.M) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := make([]models.Message, 0)
	for cursor.Next(ctx) {
		var message models.Message
		if err := cursor.Decode(&message); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		messages = append(messages, message)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
