package domain

import "time"

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Terminal reports whether the status allows no further transitions.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// Payment represents a payment attempt for a booking. The transaction
// reference is generated locally at initiation and correlates the record
// with the gateway's transaction. Amount is a snapshot of the listing price
// at initiation time. Payments are never deleted.
type Payment struct {
	TransactionReference string
	BookingID            string
	Amount               float64
	Status               PaymentStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
