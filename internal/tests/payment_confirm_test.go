package tests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel/internal/domain"
	"travel/internal/gateway"
	"travel/internal/gateway/chapa"
	"travel/internal/repository"
	"travel/internal/service"
)

// ──────────────────────────────────────────────
// PAYMENT CONFIRMATION
// ──────────────────────────────────────────────

func seedPendingPayment(bookingRepo *MockBookingRepository, guestRepo *MockGuestRepository, listingRepo *MockListingRepository, paymentRepo *MockPaymentRepository, txRef string) {
	seedBooking(bookingRepo, guestRepo, listingRepo, "booking-42", 100.00)
	paymentRepo.AddPayment(&domain.Payment{
		TransactionReference: txRef,
		BookingID:            "booking-42",
		Amount:               100.00,
		Status:               domain.PaymentStatusPending,
	})
}

func TestConfirmPayment_Success_CompletesAndNotifies(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, notifier, svc := newPaymentFixture()
	seedPendingPayment(bookingRepo, guestRepo, listingRepo, paymentRepo, "chapa-tx-abc")
	gw.VerifySuccess = true

	result, err := svc.ConfirmPayment(context.Background(), "chapa-tx-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected status %s, got %s", domain.PaymentStatusCompleted, result.Status)
	}

	stored := paymentRepo.GetPayment("chapa-tx-abc")
	if stored.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected stored status %s, got %s", domain.PaymentStatusCompleted, stored.Status)
	}

	// Notification carries the guest's address and the booking ID.
	messages := notifier.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(messages))
	}
	if messages[0].Email != "guest@example.com" {
		t.Errorf("expected guest email, got %q", messages[0].Email)
	}
	if messages[0].BookingID != "booking-42" {
		t.Errorf("expected booking-42, got %q", messages[0].BookingID)
	}
}

func TestConfirmPayment_VerifyUnsuccessful_FailsWithoutNotification(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, notifier, svc := newPaymentFixture()
	seedPendingPayment(bookingRepo, guestRepo, listingRepo, paymentRepo, "chapa-tx-abc")
	gw.VerifySuccess = false
	gw.VerifyStatus = "failed"

	result, err := svc.ConfirmPayment(context.Background(), "chapa-tx-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.PaymentStatusFailed {
		t.Errorf("expected status %s, got %s", domain.PaymentStatusFailed, result.Status)
	}
	if notifier.CountMessages() != 0 {
		t.Error("no notification should be sent for a failed payment")
	}
}

func TestConfirmPayment_GatewayUnreachable_StaysPending(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, notifier, svc := newPaymentFixture()
	seedPendingPayment(bookingRepo, guestRepo, listingRepo, paymentRepo, "chapa-tx-abc")
	gw.VerifyError = gateway.ErrUnreachable

	_, err := svc.ConfirmPayment(context.Background(), "chapa-tx-abc")
	if !errors.Is(err, gateway.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}

	stored := paymentRepo.GetPayment("chapa-tx-abc")
	if stored.Status != domain.PaymentStatusPending {
		t.Errorf("payment should stay PENDING, got %s", stored.Status)
	}
	if notifier.CountMessages() != 0 {
		t.Error("no notification should be sent")
	}
}

// An intermediary's error page during verify must behave exactly like an
// unreachable gateway: the payment stays PENDING for a later retry instead
// of being settled as FAILED.
func TestConfirmPayment_GarbledVerifyResponse_StaysPending(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))
	defer server.Close()

	bookingRepo := NewMockBookingRepository()
	guestRepo := NewMockGuestRepository()
	listingRepo := NewMockListingRepository()
	paymentRepo := NewMockPaymentRepository()
	notifier := NewMockNotifier()
	client := chapa.New(chapa.Config{SecretKey: "test-secret", BaseURL: server.URL, Timeout: 2 * time.Second})

	svc := service.NewPaymentService(bookingRepo, guestRepo, listingRepo, paymentRepo, client, notifier, service.PaymentConfig{
		CallbackBaseURL: "http://localhost:8080",
		ReturnURL:       "http://localhost:8080/payment-success",
		Currency:        "ETB",
	})
	seedPendingPayment(bookingRepo, guestRepo, listingRepo, paymentRepo, "chapa-tx-abc")

	_, err := svc.ConfirmPayment(context.Background(), "chapa-tx-abc")
	if !errors.Is(err, gateway.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}

	stored := paymentRepo.GetPayment("chapa-tx-abc")
	if stored.Status != domain.PaymentStatusPending {
		t.Errorf("payment should stay PENDING, got %s", stored.Status)
	}
	if notifier.CountMessages() != 0 {
		t.Error("no notification should be sent")
	}
}

func TestConfirmPayment_SecondCall_ReturnsStoredStatusWithoutVerify(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, notifier, svc := newPaymentFixture()
	seedPendingPayment(bookingRepo, guestRepo, listingRepo, paymentRepo, "chapa-tx-abc")
	gw.VerifySuccess = true

	first, err := svc.ConfirmPayment(context.Background(), "chapa-tx-abc")
	if err != nil {
		t.Fatalf("unexpected error on first call: %v", err)
	}
	second, err := svc.ConfirmPayment(context.Background(), "chapa-tx-abc")
	if err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}

	if first.Status != domain.PaymentStatusCompleted || second.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected COMPLETED from both calls, got %s and %s", first.Status, second.Status)
	}

	// The second delivery of the callback neither re-verifies nor re-notifies.
	if gw.VerifyCallCount != 1 {
		t.Errorf("expected 1 verify call, got %d", gw.VerifyCallCount)
	}
	if notifier.CountMessages() != 1 {
		t.Errorf("expected exactly 1 notification, got %d", notifier.CountMessages())
	}
}

func TestConfirmPayment_AlreadyFailed_NoGatewayCall(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, _, svc := newPaymentFixture()
	seedBooking(bookingRepo, guestRepo, listingRepo, "booking-42", 100.00)
	paymentRepo.AddPayment(&domain.Payment{
		TransactionReference: "chapa-tx-dead",
		BookingID:            "booking-42",
		Amount:               100.00,
		Status:               domain.PaymentStatusFailed,
	})

	result, err := svc.ConfirmPayment(context.Background(), "chapa-tx-dead")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.PaymentStatusFailed {
		t.Errorf("expected stored FAILED status, got %s", result.Status)
	}
	if gw.VerifyCallCount != 0 {
		t.Error("terminal payments must not be re-verified")
	}
}

func TestConfirmPayment_UnknownReference(t *testing.T) {
	t.Parallel()

	_, _, _, _, gw, _, svc := newPaymentFixture()

	_, err := svc.ConfirmPayment(context.Background(), "chapa-tx-nope")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if gw.VerifyCallCount != 0 {
		t.Error("gateway should not be called for an unknown reference")
	}
}

func TestConfirmPayment_NotificationFailure_DoesNotFailConfirmation(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, notifier, svc := newPaymentFixture()
	seedPendingPayment(bookingRepo, guestRepo, listingRepo, paymentRepo, "chapa-tx-abc")
	gw.VerifySuccess = true
	notifier.EnqueueError = errors.New("queue down")

	result, err := svc.ConfirmPayment(context.Background(), "chapa-tx-abc")
	if err != nil {
		t.Fatalf("enqueue failure must not fail the confirmation: %v", err)
	}
	if result.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", result.Status)
	}

	stored := paymentRepo.GetPayment("chapa-tx-abc")
	if stored.Status != domain.PaymentStatusCompleted {
		t.Errorf("the transition must not roll back, got %s", stored.Status)
	}
}
