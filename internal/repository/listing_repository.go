package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/farebd/leasehold/api/internal/database"
	"github.com/farebd/leasehold/api/internal/models"
)

// AdminListingFilter narrows the moderation listing view. Term is matched
// case-insensitively against title, location, and description.
type AdminListingFilter struct {
	Term   string
	Status models.ListingStatus
	Type   models.PropertyType
}

// ListingRepository defines the interface for listing data access operations.
type ListingRepository interface {
	// FindApproved returns all approved listings ordered by creation time
	// descending (newest first), the order the filter engine expects.
	// Returns an empty slice if none exist (not an error).
	FindApproved(ctx context.Context) ([]models.Listing, error)

	// FindRecent returns the newest approved listings, up to limit.
	FindRecent(ctx context.Context, limit int) ([]models.Listing, error)

	// FindByID returns a single listing by id.
	// Returns nil, nil if no listing is found (not an error).
	FindByID(ctx context.Context, id string) (*models.Listing, error)

	// FindAll returns listings of every status for the moderation view,
	// newest first, narrowed by the optional filter fields.
	FindAll(ctx context.Context, filter AdminListingFilter) ([]models.Listing, error)

	// Insert stores a new listing and returns its generated id.
	Insert(ctx context.Context, listing *models.Listing) (string, error)

	// UpdateStatus moves a listing to the given moderation status, recording
	// the acting admin and timestamp. Returns false if the listing does not
	// exist.
	UpdateStatus(ctx context.Context, id string, status models.ListingStatus, actor string, at time.Time) (bool, error)

	// Delete removes a listing. Returns false if it does not exist.
	Delete(ctx context.Context, id string) (bool, error)
}

// listingRepository is the concrete Mongo-backed implementation.
type listingRepository struct {
	collection *mongo.Collection
}

// NewListingRepository creates a new instance of ListingRepository.
func NewListingRepository(db *database.Database) ListingRepository {
	return &listingRepository{collection: db.Listings}
}

func (r *listingRepository) FindApproved(ctx context.Context) ([]models.Listing, error) {
	filter := bson.M{"status": models.ListingStatusApproved}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return r.findListings(ctx, filter, opts)
}

func (r *listingRepository) FindRecent(ctx context.Context, limit int) ([]models.Listing, error) {
	filter := bson.M{"status": models.ListingStatusApproved}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	return r.findListings(ctx, filter, opts)
}

func (r *listingRepository) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query listing %s: %w", id, err)
	}
	return &listing, nil
}

func (r *listingRepository) FindAll(ctx context.Context, filter AdminListingFilter) ([]models.Listing, error) {
	mongoFilter := bson.M{}
	if filter.Status != "" {
		mongoFilter["status"] = filter.Status
	}
	if filter.Type != "" {
		mongoFilter["type"] = filter.Type
	}
	if filter.Term != "" {
		mongoFilter["$or"] = []bson.M{
			{"title": bson.M{"$regex": filter.Term, "$options": "i"}},
			{"location": bson.M{"$regex": filter.Term, "$options": "i"}},
			{"description": bson.M{"$regex": filter.Term, "$options": "i"}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findListings(ctx, mongoFilter, opts)
}

func (r *listingRepository) Insert(ctx context.Context, listing *models.Listing) (string, error) {
	if listing.ID == "" {
		listing.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, listing); err != nil {
		return "", fmt.Errorf("failed to insert listing: %w", err)
	}
	return listing.ID, nil
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id string, status models.ListingStatus, actor string, at time.Time) (bool, error) {
	set := bson.M{"status": status}
	switch status {
	case models.ListingStatusApproved:
		set["approvedAt"] = at
		set["approvedBy"] = actor
	case models.ListingStatusRejected:
		set["rejectedAt"] = at
		set["rejectedBy"] = actor
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update listing %s status: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

// findListings runs a Find and decodes every document, returning an empty
// slice (never nil) when nothing matches.
func (r *listingRepository) findListings(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Listing, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := make([]models.Listing, 0)
	for cursor.Next(ctx) {
		var listing models.Listing
		if err := cursor.Decode(&listing); err != nil {
			return nil, fmt.Errorf("failed to decode listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	return listings, nil
}
