package tests

import (
	"context"
	"sync"
	"testing"

	"travel/internal/domain"
)

// ──────────────────────────────────────────────
// CONCURRENT CONFIRMATION
// ──────────────────────────────────────────────

func TestConfirmPayment_ConcurrentCalls_SingleTransitionAndNotification(t *testing.T) {
	t.Parallel()

	bookingRepo, guestRepo, listingRepo, paymentRepo, gw, notifier, svc := newPaymentFixture()
	seedPendingPayment(bookingRepo, guestRepo, listingRepo, paymentRepo, "chapa-tx-race")
	gw.VerifySuccess = true

	const workers = 16

	var wg sync.WaitGroup
	results := make([]domain.PaymentStatus, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.ConfirmPayment(context.Background(), "chapa-tx-race")
			errs[i] = err
			if err == nil {
				results[i] = result.Status
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: unexpected error: %v", i, errs[i])
		}
		if results[i] != domain.PaymentStatusCompleted {
			t.Errorf("worker %d: expected COMPLETED, got %s", i, results[i])
		}
	}

	// The compare-and-set lets at most one caller win the transition, so the
	// notification fires exactly once no matter how many callbacks raced.
	if notifier.CountMessages() != 1 {
		t.Errorf("expected exactly 1 notification, got %d", notifier.CountMessages())
	}

	stored := paymentRepo.GetPayment("chapa-tx-race")
	if stored.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected stored COMPLETED, got %s", stored.Status)
	}
}

func TestTransitionIfPending_OnlyOneWinner(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	paymentRepo.AddPayment(&domain.Payment{
		TransactionReference: "chapa-tx-cas",
		BookingID:            "booking-1",
		Amount:               50.00,
		Status:               domain.PaymentStatusPending,
	})

	const workers = 32

	var wg sync.WaitGroup
	var wins int32
	winCh := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, transitioned, err := paymentRepo.TransitionIfPending(context.Background(), "chapa-tx-cas", domain.PaymentStatusCompleted)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if transitioned {
				winCh <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(winCh)

	for range winCh {
		wins++
	}
	if wins != 1 {
		t.Errorf("expected exactly 1 winning transition, got %d", wins)
	}
}
