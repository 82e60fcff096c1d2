package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"travel/internal/domain"
	"travel/internal/redis"
	"travel/internal/repository"
)

// ListingService handles listing operations, with a read-through Redis cache
// in front of the repository.
type ListingService struct {
	listingRepo repository.ListingRepository
	cacheStore  redis.CacheStoreInterface
}

// NewListingService creates a new ListingService.
func NewListingService(listingRepo repository.ListingRepository, cacheStore redis.CacheStoreInterface) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		cacheStore:  cacheStore,
	}
}

// CreateListingRequest contains the parameters for creating a listing.
type CreateListingRequest struct {
	Title         string
	Description   string
	Location      string
	PricePerNight float64
}

// CreateListing creates a new listing.
func (s *ListingService) CreateListing(ctx context.Context, req CreateListingRequest) (*domain.Listing, error) {
	if req.Title == "" {
		return nil, ErrInvalidListingTitle
	}
	if req.PricePerNight <= 0 {
		return nil, ErrInvalidListingPrice
	}

	listing := &domain.Listing{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		CreatedAt:     time.Now(),
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	// Drop any stale cache entry; the next read repopulates it.
	if err := s.cacheStore.InvalidateListing(ctx, listing.ID); err != nil {
		log.Printf("listing cache invalidation failed: listing_id=%s err=%v", listing.ID, err)
	}

	return listing, nil
}

// GetListing retrieves a listing by ID, preferring the cache.
func (s *ListingService) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	if listingID == "" {
		return nil, ErrInvalidListingID
	}

	cached, err := s.cacheStore.GetListing(ctx, listingID)
	if err != nil {
		// Cache problems degrade to a repository read.
		log.Printf("listing cache read failed: listing_id=%s err=%v", listingID, err)
	}
	if cached != nil {
		return &domain.Listing{
			ID:            cached.ID,
			Title:         cached.Title,
			Description:   cached.Description,
			Location:      cached.Location,
			PricePerNight: cached.PricePerNight,
		}, nil
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheStore.SetListing(ctx, &redis.CachedListing{
		ID:            listing.ID,
		Title:         listing.Title,
		Description:   listing.Description,
		Location:      listing.Location,
		PricePerNight: listing.PricePerNight,
	}); err != nil {
		log.Printf("listing cache write failed: listing_id=%s err=%v", listingID, err)
	}

	return listing, nil
}

// GetAllListings retrieves all listings.
func (s *ListingService) GetAllListings(ctx context.Context) ([]*domain.Listing, error) {
	return s.listingRepo.GetAll(ctx)
}
