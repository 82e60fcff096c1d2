package domain

import "time"

// Guest represents a guest who books listings.
type Guest struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
}
