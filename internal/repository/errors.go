package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateReference is returned when creating a payment whose
	// transaction reference already exists.
	ErrDuplicateReference = errors.New("duplicate transaction reference")
)
