package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"travel/internal/domain"
	"travel/internal/gateway"
	"travel/internal/repository"
)

// txRefPrefix prefixes every locally generated transaction reference.
const txRefPrefix = "chapa-tx"

// Notifier enqueues asynchronous notifications.
type Notifier interface {
	// EnqueuePaymentConfirmation queues a payment-confirmed message for
	// delivery. It returns as soon as the message is queued; delivery and
	// retries are the dispatcher's concern.
	EnqueuePaymentConfirmation(ctx context.Context, msg PaymentConfirmation) error
}

// PaymentConfirmation is the message sent to a guest after a successful payment.
type PaymentConfirmation struct {
	Email                string  `json:"email"`
	BookingID            string  `json:"booking_id"`
	TransactionReference string  `json:"transaction_reference"`
	Amount               float64 `json:"amount"`
}

// PaymentConfig holds the request-independent parameters of the payment flow.
type PaymentConfig struct {
	// CallbackBaseURL is the externally reachable base URL of this service;
	// the verification callback for each transaction is built from it.
	CallbackBaseURL string

	// ReturnURL is where the gateway sends the payer after checkout.
	ReturnURL string

	// Currency for all initiated transactions.
	Currency string
}

// PaymentService drives the payment state machine: initiate a transaction
// with the gateway, persist it as PENDING, and later confirm or fail it from
// the gateway's verification result. It is stateless across calls; all
// payment state lives in the repository.
type PaymentService struct {
	bookingRepo repository.BookingRepository
	guestRepo   repository.GuestRepository
	listingRepo repository.ListingRepository
	paymentRepo repository.PaymentRepository
	gateway     gateway.Client
	notifier    Notifier
	cfg         PaymentConfig
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	bookingRepo repository.BookingRepository,
	guestRepo repository.GuestRepository,
	listingRepo repository.ListingRepository,
	paymentRepo repository.PaymentRepository,
	gw gateway.Client,
	notifier Notifier,
	cfg PaymentConfig,
) *PaymentService {
	return &PaymentService{
		bookingRepo: bookingRepo,
		guestRepo:   guestRepo,
		listingRepo: listingRepo,
		paymentRepo: paymentRepo,
		gateway:     gw,
		notifier:    notifier,
		cfg:         cfg,
	}
}

// InitiatePaymentResult is the outcome of a successful initiation.
type InitiatePaymentResult struct {
	TransactionReference string
	CheckoutURL          string
}

// InitiatePayment opens a gateway transaction for the booking and records it
// as a PENDING payment. The gateway call happens before persistence, so a
// failed or unreachable gateway leaves no partial state behind. The payment
// amount is snapshotted from the listing price at this moment.
func (s *PaymentService) InitiatePayment(ctx context.Context, bookingID string) (*InitiatePaymentResult, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	alreadyPaid, err := s.paymentRepo.HasCompletedForBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if alreadyPaid {
		return nil, ErrBookingAlreadyPaid
	}

	guest, err := s.guestRepo.GetByID(ctx, booking.GuestID)
	if err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.GetByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}

	txRef := fmt.Sprintf("%s-%s", txRefPrefix, uuid.New())

	resp, err := s.gateway.Initialize(ctx, gateway.InitializeRequest{
		Amount:      listing.PricePerNight,
		Currency:    s.cfg.Currency,
		Email:       guest.Email,
		FirstName:   guest.FirstName,
		LastName:    guest.LastName,
		TxRef:       txRef,
		CallbackURL: fmt.Sprintf("%s/v1/verify-payment/%s", s.cfg.CallbackBaseURL, txRef),
		ReturnURL:   s.cfg.ReturnURL,
		Title:       "Payment for Booking",
		Description: fmt.Sprintf("Booking ID: %s", booking.ID),
	})
	if err != nil {
		log.Printf("payment initiation failed: tx_ref=%s booking_id=%s err=%v", txRef, booking.ID, err)
		return nil, err
	}

	now := time.Now()
	payment := &domain.Payment{
		TransactionReference: txRef,
		BookingID:            booking.ID,
		Amount:               listing.PricePerNight,
		Status:               domain.PaymentStatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		log.Printf("payment record creation failed: tx_ref=%s booking_id=%s err=%v", txRef, booking.ID, err)
		return nil, err
	}

	return &InitiatePaymentResult{
		TransactionReference: txRef,
		CheckoutURL:          resp.CheckoutURL,
	}, nil
}

// ConfirmPaymentResult is the outcome of a confirmation attempt.
type ConfirmPaymentResult struct {
	Status domain.PaymentStatus
}

// ConfirmPayment settles a PENDING payment from the gateway's verification
// result. Confirming an already-terminal payment returns the stored status
// without contacting the gateway again, so duplicate callbacks are safe. An
// unreachable gateway leaves the payment PENDING for a later retry. The
// confirmation notification is enqueued only by the call that performed the
// transition to COMPLETED, and an enqueue failure never rolls it back.
func (s *PaymentService) ConfirmPayment(ctx context.Context, txRef string) (*ConfirmPaymentResult, error) {
	if txRef == "" {
		return nil, ErrInvalidTransactionRef
	}

	payment, err := s.paymentRepo.GetByReference(ctx, txRef)
	if err != nil {
		return nil, err
	}

	if payment.Status.Terminal() {
		return &ConfirmPaymentResult{Status: payment.Status}, nil
	}

	target := domain.PaymentStatusFailed

	result, err := s.gateway.Verify(ctx, txRef)
	switch {
	case err == nil:
		if result.Success {
			target = domain.PaymentStatusCompleted
		} else {
			log.Printf("payment verification unsuccessful: tx_ref=%s raw_status=%s", txRef, result.RawStatus)
		}
	case errors.Is(err, gateway.ErrUnreachable):
		// No state change; the caller may retry.
		log.Printf("payment verification unreachable: tx_ref=%s err=%v", txRef, err)
		return nil, err
	default:
		// The gateway answered but declined the verification.
		log.Printf("payment verification rejected: tx_ref=%s err=%v", txRef, err)
	}

	final, transitioned, err := s.paymentRepo.TransitionIfPending(ctx, txRef, target)
	if err != nil {
		return nil, err
	}

	if transitioned && final == domain.PaymentStatusCompleted {
		s.notifyConfirmed(ctx, payment)
	}

	return &ConfirmPaymentResult{Status: final}, nil
}

// GetPayment retrieves a payment by its transaction reference.
func (s *PaymentService) GetPayment(ctx context.Context, txRef string) (*domain.Payment, error) {
	if txRef == "" {
		return nil, ErrInvalidTransactionRef
	}

	return s.paymentRepo.GetByReference(ctx, txRef)
}

// notifyConfirmed enqueues the confirmation message. Notification problems
// are logged with the transaction reference and never surfaced to the
// caller: the payment is already COMPLETED.
func (s *PaymentService) notifyConfirmed(ctx context.Context, payment *domain.Payment) {
	booking, err := s.bookingRepo.GetByID(ctx, payment.BookingID)
	if err != nil {
		log.Printf("notification error: tx_ref=%s booking_id=%s err=%v", payment.TransactionReference, payment.BookingID, err)
		return
	}

	guest, err := s.guestRepo.GetByID(ctx, booking.GuestID)
	if err != nil {
		log.Printf("notification error: tx_ref=%s guest_id=%s err=%v", payment.TransactionReference, booking.GuestID, err)
		return
	}

	msg := PaymentConfirmation{
		Email:                guest.Email,
		BookingID:            booking.ID,
		TransactionReference: payment.TransactionReference,
		Amount:               payment.Amount,
	}
	if err := s.notifier.EnqueuePaymentConfirmation(ctx, msg); err != nil {
		log.Printf("notification error: tx_ref=%s err=%v", payment.TransactionReference, err)
	}
}
