package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"travel/internal/email"
	"travel/internal/redis"
)

const popTimeout = 5 * time.Second

// NotificationService delivers payment confirmations asynchronously. Enqueue
// pushes the message onto a Redis-backed queue and returns immediately; a
// single background worker pops messages and sends email. A failed send is
// re-enqueued, so delivery is at-least-once and never blocks or fails the
// confirming call.
type NotificationService struct {
	queue  redis.QueueStoreInterface
	sender email.Sender
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(queue redis.QueueStoreInterface, sender email.Sender) *NotificationService {
	return &NotificationService{
		queue:  queue,
		sender: sender,
	}
}

// EnqueuePaymentConfirmation queues a payment-confirmed message for delivery.
func (s *NotificationService) EnqueuePaymentConfirmation(ctx context.Context, msg PaymentConfirmation) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.queue.Push(ctx, data)
}

// Run consumes the queue until ctx is cancelled. Intended to run in its own
// goroutine.
func (s *NotificationService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		data, err := s.queue.Pop(ctx, popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("notification queue pop failed: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if data == nil {
			continue // Queue empty
		}

		s.deliver(ctx, data)
	}
}

// deliver sends one queued message, re-enqueueing it on failure.
func (s *NotificationService) deliver(ctx context.Context, data []byte) {
	var msg PaymentConfirmation
	if err := json.Unmarshal(data, &msg); err != nil {
		// Undecodable messages are dropped: re-enqueueing them would loop forever.
		log.Printf("notification message undecodable, dropping: %v", err)
		return
	}

	subject := "Payment Confirmation"
	body := fmt.Sprintf("Your payment for booking ID %s has been successfully processed.", msg.BookingID)

	if err := s.sender.Send(ctx, msg.Email, subject, body); err != nil {
		log.Printf("notification send failed, re-enqueueing: tx_ref=%s err=%v", msg.TransactionReference, err)
		if pushErr := s.queue.Push(ctx, data); pushErr != nil {
			log.Printf("notification re-enqueue failed: tx_ref=%s err=%v", msg.TransactionReference, pushErr)
		}
		return
	}

	log.Printf("payment confirmation delivered: tx_ref=%s booking_id=%s", msg.TransactionReference, msg.BookingID)
}

// Ensure the interface is satisfied.
var _ Notifier = (*NotificationService)(nil)
