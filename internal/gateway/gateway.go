package gateway

import (
	"context"
	"errors"
	"fmt"
)

// Client is the narrow interface to the external payment provider.
// Implementations carry no business logic: they translate between these
// types and the provider's wire format.
type Client interface {
	// Initialize opens a transaction with the provider and returns the
	// checkout URL the payer should be redirected to. A declined request
	// surfaces as *RejectedError, a transport failure as ErrUnreachable.
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error)

	// Verify reports the provider's view of the transaction. A transport
	// failure surfaces as ErrUnreachable; a transaction the provider does
	// not consider successful is Success=false, not an error.
	Verify(ctx context.Context, txRef string) (*VerifyResult, error)
}

// InitializeRequest contains everything the provider needs to open a transaction.
type InitializeRequest struct {
	Amount      float64
	Currency    string
	Email       string
	FirstName   string
	LastName    string
	TxRef       string
	CallbackURL string
	ReturnURL   string
	Title       string
	Description string
}

// InitializeResponse is the provider's answer to a successful initialization.
type InitializeResponse struct {
	CheckoutURL string
}

// VerifyResult is the provider's view of a transaction.
type VerifyResult struct {
	Success   bool
	RawStatus string
}

// ErrUnreachable is returned when the provider cannot be reached at all
// (connection failure or timeout). The caller may retry; no local state
// should change based on it.
var ErrUnreachable = errors.New("payment gateway unreachable")

// RejectedError is returned when the provider explicitly declined a request.
// The provider's reason is preserved for the caller.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("payment gateway rejected request: %s", e.Reason)
}
