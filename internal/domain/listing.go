package domain

import "time"

// Listing represents a property available for booking.
type Listing struct {
	ID            string
	Title         string
	Description   string
	Location      string
	PricePerNight float64
	CreatedAt     time.Time
}
