package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"travel/internal/domain"
	"travel/internal/gateway"
	"travel/internal/repository"
	"travel/internal/service"
)

// ──────────────────────────────────────────────
// PAYMENT INITIATION
// ──────────────────────────────────────────────

func newPaymentFixture() (*MockBookingRepository, *MockGuestRepository, *MockListingRepository, *MockPaymentRepository, *MockGateway, *MockNotifier, *service.PaymentService) {
	bookingRepo := NewMockBookingRepository()
	guestRepo := NewMockGuestRepository()
	listingRepo := NewMockListingRepository()
	paymentRepo := NewMockPaymentRepository()
	gw := NewMockGateway()
	notifier := NewMockNotifier()

	svc := service.NewPaymentService(bookingRepo, guestRepo, listingRepo, paymentRepo, gw, notifier, service.PaymentConfig{
		CallbackBaseURL: "http://localhost:8080",
		ReturnURL:       "http://localhost:8080/payment-success",
		Currency:        "ETB",
	})

	return bookingRepo, guestRepo, listingRepo, paymentRepo, gw, notifier, svc
}

func seedBooking(bookingRepo *MockBookingRepository, guestRepo *MockGuestRepository, listingRepo *MockListingRepository, bookingID string, price float64) {
	listingRepo.AddListing(&domain.Listing{
		ID:            "listing-1",
		Title:         "Lakeside Cabin",
		Location:      "Bahir Dar",
		PricePerNight: price,
	})
	guestRepo.AddGuest(&domain.Guest{
		ID:        "guest-1",
		Email:     "guest@example.com",
		FirstName: "Abel",
		LastName:  "Tesfaye",
	})
	bookingRepo.AddBooking(&domain.Booking{
		ID:        bookingID,
		ListingID: "listing-1",
		GuestID:   "guest-1",
		CheckIn:   time.Now(),
		CheckOut:  time.Now().Add(48 * time.Hour),
	})
}

func TestInitiatePayment_CreatesPendingPayment(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, _, svc := newPaymentFixture()
	seedBooking(bookingRepo, guestRepo, listingRepo, "booking-42", 100.00)
	gw.CheckoutURL = "https://pay/x"

	result, err := svc.InitiatePayment(context.Background(), "booking-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.CheckoutURL != "https://pay/x" {
		t.Errorf("expected checkout URL %q, got %q", "https://pay/x", result.CheckoutURL)
	}
	if !strings.HasPrefix(result.TransactionReference, "chapa-tx-") {
		t.Errorf("expected chapa-tx- prefixed reference, got %q", result.TransactionReference)
	}

	// Exactly one PENDING payment persisted with the snapshotted amount.
	if paymentRepo.CountPayments() != 1 {
		t.Fatalf("expected 1 payment, got %d", paymentRepo.CountPayments())
	}
	payment := paymentRepo.GetPayment(result.TransactionReference)
	if payment == nil {
		t.Fatal("payment not found by reference")
	}
	if payment.Status != domain.PaymentStatusPending {
		t.Errorf("expected status %s, got %s", domain.PaymentStatusPending, payment.Status)
	}
	if payment.BookingID != "booking-42" {
		t.Errorf("expected booking ID booking-42, got %s", payment.BookingID)
	}
	if payment.Amount != 100.00 {
		t.Errorf("expected amount 100.00, got %.2f", payment.Amount)
	}
}

func TestInitiatePayment_SendsGuestIdentityAndCallback(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, _, gw, _, svc := newPaymentFixture()
	seedBooking(bookingRepo, guestRepo, listingRepo, "booking-1", 250.50)

	result, err := svc.InitiatePayment(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := gw.InitializeRequest()
	if req.Email != "guest@example.com" {
		t.Errorf("expected guest email, got %q", req.Email)
	}
	if req.FirstName != "Abel" || req.LastName != "Tesfaye" {
		t.Errorf("expected guest name Abel Tesfaye, got %q %q", req.FirstName, req.LastName)
	}
	if req.Currency != "ETB" {
		t.Errorf("expected currency ETB, got %q", req.Currency)
	}
	if req.Amount != 250.50 {
		t.Errorf("expected amount 250.50, got %.2f", req.Amount)
	}
	// The callback URL embeds the generated reference.
	if !strings.Contains(req.CallbackURL, result.TransactionReference) {
		t.Errorf("callback URL %q does not embed reference %q", req.CallbackURL, result.TransactionReference)
	}
}

func TestInitiatePayment_BookingNotFound(t *testing.T) {
	t.Parallel()

	_, _, _, paymentRepo, gw, _, svc := newPaymentFixture()

	_, err := svc.InitiatePayment(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if gw.InitializeCallCount != 0 {
		t.Error("gateway should not be called for a missing booking")
	}
	if paymentRepo.CountPayments() != 0 {
		t.Error("no payment should be persisted")
	}
}

func TestInitiatePayment_GatewayRejected_NoPaymentPersisted(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, _, svc := newPaymentFixture()
	seedBooking(bookingRepo, guestRepo, listingRepo, "booking-1", 100.00)
	gw.InitializeError = &gateway.RejectedError{Reason: "invalid currency"}

	_, err := svc.InitiatePayment(context.Background(), "booking-1")

	var rejected *gateway.RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.Reason != "invalid currency" {
		t.Errorf("expected provider reason to pass through, got %q", rejected.Reason)
	}
	if paymentRepo.CountPayments() != 0 {
		t.Error("no payment should be persisted when the gateway rejects")
	}
}

func TestInitiatePayment_GatewayUnreachable_NoPaymentPersisted(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, _, svc := newPaymentFixture()
	seedBooking(bookingRepo, guestRepo, listingRepo, "booking-1", 100.00)
	gw.InitializeError = gateway.ErrUnreachable

	_, err := svc.InitiatePayment(context.Background(), "booking-1")
	if !errors.Is(err, gateway.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if paymentRepo.CountPayments() != 0 {
		t.Error("no payment should be persisted when the gateway is unreachable")
	}
}

func TestInitiatePayment_BookingAlreadyPaid(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, _, svc := newPaymentFixture()
	seedBooking(bookingRepo, guestRepo, listingRepo, "booking-1", 100.00)
	paymentRepo.AddPayment(&domain.Payment{
		TransactionReference: "chapa-tx-earlier",
		BookingID:            "booking-1",
		Amount:               100.00,
		Status:               domain.PaymentStatusCompleted,
	})

	_, err := svc.InitiatePayment(context.Background(), "booking-1")
	if !errors.Is(err, service.ErrBookingAlreadyPaid) {
		t.Fatalf("expected ErrBookingAlreadyPaid, got %v", err)
	}
	if gw.InitializeCallCount != 0 {
		t.Error("gateway should not be called for an already paid booking")
	}
}

func TestInitiatePayment_FailedAttemptAllowsRetry(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, _, _, svc := newPaymentFixture()
	seedBooking(bookingRepo, guestRepo, listingRepo, "booking-1", 100.00)

	// A booking with only a FAILED attempt may be paid again.
	paymentRepo.AddPayment(&domain.Payment{
		TransactionReference: "chapa-tx-earlier",
		BookingID:            "booking-1",
		Amount:               100.00,
		Status:               domain.PaymentStatusFailed,
	})

	result, err := svc.InitiatePayment(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paymentRepo.CountPayments() != 2 {
		t.Errorf("expected 2 payments, got %d", paymentRepo.CountPayments())
	}
	if result.TransactionReference == "chapa-tx-earlier" {
		t.Error("expected a fresh transaction reference")
	}
}

func TestInitiatePayment_EmptyBookingID(t *testing.T) {
	t.Parallel()

	_, _, _, _, _, _, svc := newPaymentFixture()

	_, err := svc.InitiatePayment(context.Background(), "")
	if !errors.Is(err, service.ErrInvalidBookingID) {
		t.Fatalf("expected ErrInvalidBookingID, got %v", err)
	}
}
