package repository

import (
	"context"

	"travel/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
// Payments are keyed by their transaction reference and are never deleted.
type PaymentRepository interface {
	// Create persists a new payment. Returns ErrDuplicateReference if a
	// payment with the same transaction reference already exists.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByReference retrieves a payment by its transaction reference.
	GetByReference(ctx context.Context, ref string) (*domain.Payment, error)

	// TransitionIfPending atomically moves the payment to status only if it
	// is currently PENDING. It reports the resulting status either way, with
	// transitioned=true only when this call performed the update. Two
	// concurrent calls for the same reference can therefore never both
	// observe a successful transition. Returns ErrNotFound if no payment
	// exists for the reference.
	TransitionIfPending(ctx context.Context, ref string, status domain.PaymentStatus) (final domain.PaymentStatus, transitioned bool, err error)

	// HasCompletedForBooking reports whether the booking already has a
	// payment in COMPLETED status.
	HasCompletedForBooking(ctx context.Context, bookingID string) (bool, error)
}
