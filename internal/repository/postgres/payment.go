package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"travel/internal/domain"
	"travel/internal/repository"
)

// uniqueViolation is the postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (transaction_reference, booking_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.TransactionReference,
		payment.BookingID,
		payment.Amount,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicateReference
		}
		return err
	}

	return nil
}

// GetByReference retrieves a payment by its transaction reference.
func (r *PaymentRepository) GetByReference(ctx context.Context, ref string) (*domain.Payment, error) {
	query := `
		SELECT transaction_reference, booking_id, amount, status, created_at, updated_at
		FROM payments WHERE transaction_reference = $1
	`

	var payment domain.Payment
	err := r.q.QueryRowContext(ctx, query, ref).Scan(
		&payment.TransactionReference,
		&payment.BookingID,
		&payment.Amount,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &payment, nil
}

// TransitionIfPending atomically moves the payment to status only if it is
// currently PENDING. The conditional UPDATE is the single serialization
// point for concurrent confirmations of the same reference.
func (r *PaymentRepository) TransitionIfPending(ctx context.Context, ref string, status domain.PaymentStatus) (domain.PaymentStatus, bool, error) {
	query := `
		UPDATE payments SET status = $1, updated_at = NOW()
		WHERE transaction_reference = $2 AND status = $3
	`

	result, err := r.q.ExecContext(ctx, query, status, ref, domain.PaymentStatusPending)
	if err != nil {
		return "", false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", false, err
	}

	if rowsAffected == 1 {
		return status, true, nil
	}

	// Already terminal (or missing) - report the stored status.
	stored, err := r.GetByReference(ctx, ref)
	if err != nil {
		return "", false, err
	}

	return stored.Status, false, nil
}

// HasCompletedForBooking reports whether the booking already has a COMPLETED payment.
func (r *PaymentRepository) HasCompletedForBooking(ctx context.Context, bookingID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments WHERE booking_id = $1 AND status = $2
		)
	`

	var exists bool
	err := r.q.QueryRowContext(ctx, query, bookingID, domain.PaymentStatusCompleted).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
