package postgres

import (
	"context"
	"database/sql"
	"errors"

	"travel/internal/domain"
	"travel/internal/repository"
)

// GuestRepository is a PostgreSQL implementation of repository.GuestRepository.
type GuestRepository struct {
	q Querier
}

// NewGuestRepository creates a new PostgreSQL guest repository.
func NewGuestRepository(db *sql.DB) *GuestRepository {
	return &GuestRepository{q: db}
}

// Create persists a new guest.
func (r *GuestRepository) Create(ctx context.Context, guest *domain.Guest) error {
	query := `
		INSERT INTO guests (id, email, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		guest.ID,
		guest.Email,
		guest.FirstName,
		guest.LastName,
		guest.CreatedAt,
	)

	return err
}

// GetByID retrieves a guest by ID.
func (r *GuestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	query := `
		SELECT id, email, first_name, last_name, created_at
		FROM guests WHERE id = $1
	`

	var guest domain.Guest
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&guest.ID,
		&guest.Email,
		&guest.FirstName,
		&guest.LastName,
		&guest.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &guest, nil
}

// GetAll retrieves all guests.
func (r *GuestRepository) GetAll(ctx context.Context) ([]*domain.Guest, error) {
	query := `
		SELECT id, email, first_name, last_name, created_at
		FROM guests ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []*domain.Guest
	for rows.Next() {
		var guest domain.Guest
		if err := rows.Scan(
			&guest.ID,
			&guest.Email,
			&guest.FirstName,
			&guest.LastName,
			&guest.CreatedAt,
		); err != nil {
			return nil, err
		}
		guests = append(guests, &guest)
	}

	return guests, rows.Err()
}
