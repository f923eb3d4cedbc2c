package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farebd/leasehold/api/internal/cache"
	"github.com/farebd/leasehold/api/internal/logger"
	"github.com/farebd/leasehold/api/internal/models"
	"github.com/farebd/leasehold/api/internal/repository"
	"github.com/farebd/leasehold/api/internal/search"
)

// RecentListingCount is how many listings the home page shows.
const RecentListingCount = 6

// LeaseTypeRentalWithOption is the one lease type that carries a full
// property value on the registration form.
const LeaseTypeRentalWithOption = "Rental with Option to buy"

// Service-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrInvalidListing  = errors.New("invalid listing")
	ErrInvalidCriteria = errors.New("invalid search criteria")
	ErrNotOwner        = errors.New("only the listing owner or an admin may do this")
	ErrInvalidStatus   = errors.New("invalid moderation status")
)

// ListingService defines the interface for listing business logic.
type ListingService interface {
	// Browse filters the approved listing collection and returns one page.
	// Returns ErrInvalidCriteria for unrecognized criteria codes. An empty
	// page or out-of-range page index is a valid result, not an error.
	Browse(ctx context.Context, criteria search.Criteria, page, pageSize int) (search.Page, error)

	// Search returns every approved listing matching the criteria, unpaged.
	Search(ctx context.Context, criteria search.Criteria) ([]models.Listing, error)

	// Recent returns the newest approved listings for the home page.
	Recent(ctx context.Context) ([]models.Listing, error)

	// Get retrieves one listing by id. Returns ErrListingNotFound if absent.
	Get(ctx context.Context, id string) (*models.Listing, error)

	// Create validates and stores a new listing in pending status.
	Create(ctx context.Context, listing *models.Listing) (string, error)

	// Delete removes a listing. The requester must be the owner or an admin.
	Delete(ctx context.Context, id, requesterEmail string, requesterRole models.Role) error

	// AdminList returns listings of all statuses for the moderation view.
	AdminList(ctx context.Context, filter repository.AdminListingFilter) ([]models.Listing, error)

	// Moderate approves or rejects a pending listing.
	Moderate(ctx context.Context, id string, status models.ListingStatus, actor string) error
}

// listingService is the concrete implementation of ListingService.
type listingService struct {
	repo  repository.ListingRepository
	cache *cache.ListingCache
	log   *logger.Logger
}

// NewListingService creates a new instance of ListingService.
func NewListingService(repo repository.ListingRepository, listingCache *cache.ListingCache, log *logger.Logger) ListingService {
	return &listingService{
		repo:  repo,
		cache: listingCache,
		log:   log,
	}
}

// Browse validates the criteria, loads the approved-listing snapshot, and
// runs the pure filter engine over it.
func (s *listingService) Browse(ctx context.Context, criteria search.Criteria, page, pageSize int) (search.Page, error) {
	if err := criteria.Validate(); err != nil {
		s.log.Warn("Invalid browse criteria", map[string]interface{}{
			"location": criteria.Location,
			"type":     string(criteria.PropertyType),
			"purpose":  string(criteria.Purpose),
		})
		return search.Page{}, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	listings, err := s.approvedSnapshot(ctx)
	if err != nil {
		return search.Page{}, err
	}

	result := search.FilterAndPaginate(listings, criteria, page, pageSize)

	s.log.Info("Browse completed", map[string]interface{}{
		"total":      result.TotalCount,
		"page":       page,
		"page_count": result.PageCount,
	})

	return result, nil
}

func (s *listingService) Search(ctx context.Context, criteria search.Criteria) ([]models.Listing, error) {
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	listings, err := s.approvedSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	matched := search.Filter(listings, criteria)

	s.log.Info("Search completed", map[string]interface{}{
		"candidates": len(listings),
		"matched":    len(matched),
	})

	return matched, nil
}

func (s *listingService) Recent(ctx context.Context) ([]models.Listing, error) {
	listings, err := s.repo.FindRecent(ctx, RecentListingCount)
	if err != nil {
		s.log.Error("Failed to query recent listings", err, nil)
		return nil, fmt.Errorf("failed to query recent listings: %w", err)
	}
	return listings, nil
}

func (s *listingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query listing", err, map[string]interface{}{"id": id})
		return nil, fmt.Errorf("failed to query listing: %w", err)
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

func (s *listingService) Create(ctx context.Context, listing *models.Listing) (string, error) {
	if err := validateListing(listing); err != nil {
		return "", err
	}

	// New listings always enter moderation as pending, regardless of what
	// the client sent.
	listing.Status = models.ListingStatusPending
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}

	id, err := s.repo.Insert(ctx, listing)
	if err != nil {
		s.log.Error("Failed to insert listing", err, map[string]interface{}{
			"location": listing.Location,
			"owner":    listing.CreatedBy.Email,
		})
		return "", fmt.Errorf("failed to insert listing: %w", err)
	}

	s.log.Info("Listing created", map[string]interface{}{
		"id":    id,
		"type":  string(listing.Type),
		"owner": listing.CreatedBy.Email,
	})

	return id, nil
}

func (s *listingService) Delete(ctx context.Context, id, requesterEmail string, requesterRole models.Role) error {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to query listing: %w", err)
	}
	if listing == nil {
		return ErrListingNotFound
	}

	if requesterRole != models.RoleAdmin && listing.CreatedBy.Email != requesterEmail {
		s.log.Warn("Delete refused", map[string]interface{}{
			"id":        id,
			"requester": requesterEmail,
			"owner":     listing.CreatedBy.Email,
		})
		return ErrNotOwner
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete listing", err, map[string]interface{}{"id": id})
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if !deleted {
		return ErrListingNotFound
	}

	s.invalidateSnapshot(ctx)

	s.log.Info("Listing deleted", map[string]interface{}{
		"id":        id,
		"requester": requesterEmail,
	})

	return nil
}

func (s *listingService) AdminList(ctx context.Context, filter repository.AdminListingFilter) ([]models.Listing, error) {
	listings, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to query moderation listings", err, nil)
		return nil, fmt.Errorf("failed to query moderation listings: %w", err)
	}
	return listings, nil
}

func (s *listingService) Moderate(ctx context.Context, id string, status models.ListingStatus, actor string) error {
	if status != models.ListingStatusApproved && status != models.ListingStatusRejected {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status, actor, time.Now().UTC())
	if err != nil {
		s.log.Error("Failed to moderate listing", err, map[string]interface{}{
			"id":     id,
			"status": string(status),
		})
		return fmt.Errorf("failed to moderate listing: %w", err)
	}
	if !updated {
		return ErrListingNotFound
	}

	s.invalidateSnapshot(ctx)

	s.log.Info("Listing moderated", map[string]interface{}{
		"id":     id,
		"status": string(status),
		"actor":  actor,
	})

	return nil
}

// approvedSnapshot serves the createdAt-descending approved collection from
// the cache, falling back to the document store on a miss. Cache write
// failures are logged, never surfaced; the store result is still good.
func (s *listingService) approvedSnapshot(ctx context.Context) ([]models.Listing, error) {
	if s.cache != nil {
		listings, err := s.cache.GetSnapshot(ctx)
		if err == nil {
			return listings, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("Listing cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	listings, err := s.repo.FindApproved(ctx)
	if err != nil {
		s.log.Error("Failed to query approved listings", err, nil)
		return nil, fmt.Errorf("failed to query approved listings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, listings); err != nil {
			s.log.Warn("Listing cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return listings, nil
}

// invalidateSnapshot drops the cached approved collection after a write.
func (s *listingService) invalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Listing cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

// validateListing enforces the registration form's required fields and the
// lease-type dependent ones.
func validateListing(listing *models.Listing) error {
	if !listing.Type.Valid() {
		return fmt.Errorf("%w: type must be plot or building", ErrInvalidListing)
	}
	if listing.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidListing)
	}
	if listing.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidListing)
	}
	if listing.LeaseType == "" {
		return fmt.Errorf("%w: lease type is required", ErrInvalidListing)
	}
	if listing.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidListing)
	}
	if len(listing.Photos) == 0 {
		return fmt.Errorf("%w: at least one photo is required", ErrInvalidListing)
	}
	if listing.CreatedBy.Email == "" {
		return fmt.Errorf("%w: owner email is required", ErrInvalidListing)
	}
	if listing.LeaseType != LeaseTypeRentalWithOption && listing.FullValue != nil {
		return fmt.Errorf("%w: full property value only applies to %q", ErrInvalidListing, LeaseTypeRentalWithOption)
	}
	return nil
}
