package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"travel/internal/domain"
	"travel/internal/repository"
)

// BookingService handles booking operations.
type BookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	guestRepo   repository.GuestRepository
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	guestRepo repository.GuestRepository,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		guestRepo:   guestRepo,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	ListingID string
	GuestID   string
	CheckIn   time.Time
	CheckOut  time.Time
}

// CreateBooking creates a new booking. The listing and guest must exist and
// check-out must fall after check-in.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.ListingID == "" {
		return nil, ErrInvalidListingID
	}
	if req.GuestID == "" {
		return nil, ErrInvalidGuestID
	}
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidBookingDates
	}

	if _, err := s.listingRepo.GetByID(ctx, req.ListingID); err != nil {
		return nil, err
	}
	if _, err := s.guestRepo.GetByID(ctx, req.GuestID); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:        uuid.New().String(),
		ListingID: req.ListingID,
		GuestID:   req.GuestID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		CreatedAt: time.Now(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetBooking retrieves a booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	return s.bookingRepo.GetByID(ctx, bookingID)
}

// GetAllBookings retrieves all bookings.
func (s *BookingService) GetAllBookings(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookingRepo.GetAll(ctx)
}

// CreateGuestRequest contains the parameters for registering a guest.
type CreateGuestRequest struct {
	Email     string
	FirstName string
	LastName  string
}

// GuestService handles guest registration and lookup.
type GuestService struct {
	guestRepo repository.GuestRepository
}

// NewGuestService creates a new GuestService.
func NewGuestService(guestRepo repository.GuestRepository) *GuestService {
	return &GuestService{guestRepo: guestRepo}
}

// CreateGuest registers a new guest.
func (s *GuestService) CreateGuest(ctx context.Context, req CreateGuestRequest) (*domain.Guest, error) {
	if req.Email == "" {
		return nil, ErrInvalidGuestEmail
	}

	guest := &domain.Guest{
		ID:        uuid.New().String(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: time.Now(),
	}

	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, err
	}

	return guest, nil
}

// GetGuest retrieves a guest by ID.
func (s *GuestService) GetGuest(ctx context.Context, guestID string) (*domain.Guest, error) {
	if guestID == "" {
		return nil, ErrInvalidGuestID
	}

	return s.guestRepo.GetByID(ctx, guestID)
}

// GetAllGuests retrieves all guests.
func (s *GuestService) GetAllGuests(ctx context.Context) ([]*domain.Guest, error) {
	return s.guestRepo.GetAll(ctx)
}
