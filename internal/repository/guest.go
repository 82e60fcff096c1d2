package repository

import (
	"context"

	"travel/internal/domain"
)

// GuestRepository defines the persistence operations for guests.
type GuestRepository interface {
	// Create persists a new guest.
	Create(ctx context.Context, guest *domain.Guest) error

	// GetByID retrieves a guest by ID.
	GetByID(ctx context.Context, id string) (*domain.Guest, error)

	// GetAll retrieves all guests.
	GetAll(ctx context.Context) ([]*domain.Guest, error)
}
