package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel/internal/domain"
	"travel/internal/repository"
	"travel/internal/service"
)

// ──────────────────────────────────────────────
// BOOKING CREATION
// ──────────────────────────────────────────────

func TestCreateBooking_Success(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	listingRepo := NewMockListingRepository()
	guestRepo := NewMockGuestRepository()

	listingRepo.AddListing(&domain.Listing{ID: "listing-1", Title: "Studio", PricePerNight: 80})
	guestRepo.AddGuest(&domain.Guest{ID: "guest-1", Email: "g@example.com"})

	svc := service.NewBookingService(bookingRepo, listingRepo, guestRepo)

	checkIn := time.Now().Add(24 * time.Hour)
	booking, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		ListingID: "listing-1",
		GuestID:   "guest-1",
		CheckIn:   checkIn,
		CheckOut:  checkIn.Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.ID == "" {
		t.Error("expected a generated booking ID")
	}
	if bookingRepo.CreateCallCount != 1 {
		t.Errorf("expected 1 create call, got %d", bookingRepo.CreateCallCount)
	}
}

func TestCreateBooking_ListingNotFound(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	listingRepo := NewMockListingRepository()
	guestRepo := NewMockGuestRepository()
	guestRepo.AddGuest(&domain.Guest{ID: "guest-1", Email: "g@example.com"})

	svc := service.NewBookingService(bookingRepo, listingRepo, guestRepo)

	checkIn := time.Now()
	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		ListingID: "missing",
		GuestID:   "guest-1",
		CheckIn:   checkIn,
		CheckOut:  checkIn.Add(24 * time.Hour),
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if bookingRepo.CreateCallCount != 0 {
		t.Error("no booking should be created")
	}
}

func TestCreateBooking_InvalidDates(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	listingRepo := NewMockListingRepository()
	guestRepo := NewMockGuestRepository()

	listingRepo.AddListing(&domain.Listing{ID: "listing-1", Title: "Studio", PricePerNight: 80})
	guestRepo.AddGuest(&domain.Guest{ID: "guest-1", Email: "g@example.com"})

	svc := service.NewBookingService(bookingRepo, listingRepo, guestRepo)

	checkIn := time.Now()
	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		ListingID: "listing-1",
		GuestID:   "guest-1",
		CheckIn:   checkIn,
		CheckOut:  checkIn, // Same instant
	})
	if !errors.Is(err, service.ErrInvalidBookingDates) {
		t.Fatalf("expected ErrInvalidBookingDates, got %v", err)
	}
}

// ──────────────────────────────────────────────
// LISTING CACHE
// ──────────────────────────────────────────────

func TestGetListing_FallsBackToRepositoryOnCacheMiss(t *testing.T) {
	t.Parallel()

	listingRepo := NewMockListingRepository()
	listingRepo.AddListing(&domain.Listing{ID: "listing-1", Title: "Loft", PricePerNight: 120})

	svc := service.NewListingService(listingRepo, NewMockCache())

	listing, err := svc.GetListing(context.Background(), "listing-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.Title != "Loft" {
		t.Errorf("expected Loft, got %q", listing.Title)
	}

	// A second read is served from cache without touching the repository
	// again; the mock cache records the SetListing from the first read.
	if _, err := svc.GetListing(context.Background(), "listing-1"); err != nil {
		t.Fatalf("unexpected error on cached read: %v", err)
	}
}
