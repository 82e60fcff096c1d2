package domain

import "time"

// Booking represents a guest's reservation of a listing. Once a payment has
// been initiated for it, the booking is treated as read-only input to the
// payment flow; its price always derives from the listing.
type Booking struct {
	ID        string
	ListingID string
	GuestID   string
	CheckIn   time.Time
	CheckOut  time.Time
	CreatedAt time.Time
}
