package service

import "errors"

var (
	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidListingID is returned when listing ID is empty.
	ErrInvalidListingID = errors.New("invalid listing id")

	// ErrInvalidGuestID is returned when guest ID is empty.
	ErrInvalidGuestID = errors.New("invalid guest id")

	// ErrInvalidTransactionRef is returned when transaction reference is empty.
	ErrInvalidTransactionRef = errors.New("invalid transaction reference")

	// ErrInvalidListingTitle is returned when a listing is created without a title.
	ErrInvalidListingTitle = errors.New("invalid listing title")

	// ErrInvalidListingPrice is returned when a listing price is not positive.
	ErrInvalidListingPrice = errors.New("invalid listing price")

	// ErrInvalidGuestEmail is returned when a guest is created without an email.
	ErrInvalidGuestEmail = errors.New("invalid guest email")

	// ErrInvalidBookingDates is returned when check-out is not after check-in.
	ErrInvalidBookingDates = errors.New("check-out must be after check-in")

	// ErrBookingAlreadyPaid is returned when initiating a payment for a
	// booking that already has a completed payment.
	ErrBookingAlreadyPaid = errors.New("booking already has a completed payment")
)
