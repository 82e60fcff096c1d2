package redis

import (
	"context"
	"time"
)

// CacheStoreInterface defines the interface for listing cache operations.
type CacheStoreInterface interface {
	GetListing(ctx context.Context, listingID string) (*CachedListing, error)
	SetListing(ctx context.Context, listing *CachedListing) error
	InvalidateListing(ctx context.Context, listingID string) error
}

// QueueStoreInterface defines the interface for queue operations.
type QueueStoreInterface interface {
	Push(ctx context.Context, payload []byte) error
	Pop(ctx context.Context, timeout time.Duration) ([]byte, error)
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ QueueStoreInterface = (*QueueStore)(nil)
)
