package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const notificationQueueKey = "queue:notifications"

// QueueStore is a Redis-list backed message queue used for asynchronous
// notification delivery. Push is non-blocking; Pop blocks up to the given
// timeout. Messages popped but not yet delivered can be re-pushed by the
// consumer, giving at-least-once semantics.
type QueueStore struct {
	client *redis.Client
}

// NewQueueStore creates a new QueueStore.
func NewQueueStore(client *redis.Client) *QueueStore {
	return &QueueStore{client: client}
}

// Push appends a message to the queue.
func (s *QueueStore) Push(ctx context.Context, payload []byte) error {
	return s.client.LPush(ctx, notificationQueueKey, payload).Err()
}

// Pop removes and returns the oldest message, blocking up to timeout.
// Returns nil with no error when the queue stayed empty.
func (s *QueueStore) Pop(ctx context.Context, timeout time.Duration) ([]byte, error) {
	res, err := s.client.BRPop(ctx, timeout, notificationQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Queue empty
		}
		return nil, err
	}

	// BRPOP returns [key, value].
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}

// Len returns the number of queued messages.
func (s *QueueStore) Len(ctx context.Context) (int64, error) {
	return s.client.LLen(ctx, notificationQueueKey).Result()
}
