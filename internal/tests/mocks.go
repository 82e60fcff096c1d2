package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"travel/internal/domain"
	"travel/internal/gateway"
	"travel/internal/redis"
	"travel/internal/repository"
	"travel/internal/service"
)

// ──────────────────────────────────────────────
// MOCK LISTING REPOSITORY
// ──────────────────────────────────────────────

// MockListingRepository is a mock implementation of ListingRepository.
type MockListingRepository struct {
	mu       sync.RWMutex
	listings map[string]*domain.Listing

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockListingRepository creates a new mock listing repository.
func NewMockListingRepository() *MockListingRepository {
	return &MockListingRepository{
		listings: make(map[string]*domain.Listing),
	}
}

// AddListing adds a listing to the mock repository.
func (m *MockListingRepository) AddListing(listing *domain.Listing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings[listing.ID] = listing
}

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings[listing.ID] = listing
	return nil
}

func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	listing, ok := m.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	dup := *listing
	return &dup, nil
}

func (m *MockListingRepository) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		dup := *l
		result = append(result, &dup)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK GUEST REPOSITORY
// ──────────────────────────────────────────────

// MockGuestRepository is a mock implementation of GuestRepository.
type MockGuestRepository struct {
	mu     sync.RWMutex
	guests map[string]*domain.Guest

	// Error injection
	CreateError error
}

// NewMockGuestRepository creates a new mock guest repository.
func NewMockGuestRepository() *MockGuestRepository {
	return &MockGuestRepository{
		guests: make(map[string]*domain.Guest),
	}
}

// AddGuest adds a guest to the mock repository.
func (m *MockGuestRepository) AddGuest(guest *domain.Guest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guests[guest.ID] = guest
}

func (m *MockGuestRepository) Create(ctx context.Context, guest *domain.Guest) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guests[guest.ID] = guest
	return nil
}

func (m *MockGuestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	guest, ok := m.guests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	dup := *guest
	return &dup, nil
}

func (m *MockGuestRepository) GetAll(ctx context.Context) ([]*domain.Guest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Guest, 0, len(m.guests))
	for _, g := range m.guests {
		dup := *g
		result = append(result, &dup)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	dup := *booking
	return &dup, nil
}

func (m *MockBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		dup := *b
		result = append(result, &dup)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
// TransitionIfPending performs its compare-and-set under the mutex, matching
// the atomicity the real store guarantees.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	// Counters for verification
	CreateCallCount     int32
	TransitionCallCount int32

	// Error injection
	CreateError     error
	TransitionError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

// AddPayment adds a payment to the mock repository.
func (m *MockPaymentRepository) AddPayment(payment *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.TransactionReference] = payment
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[payment.TransactionReference]; ok {
		return repository.ErrDuplicateReference
	}
	dup := *payment
	m.payments[payment.TransactionReference] = &dup
	return nil
}

func (m *MockPaymentRepository) GetByReference(ctx context.Context, ref string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[ref]
	if !ok {
		return nil, repository.ErrNotFound
	}
	dup := *payment
	return &dup, nil
}

func (m *MockPaymentRepository) TransitionIfPending(ctx context.Context, ref string, status domain.PaymentStatus) (domain.PaymentStatus, bool, error) {
	atomic.AddInt32(&m.TransitionCallCount, 1)
	if m.TransitionError != nil {
		return "", false, m.TransitionError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[ref]
	if !ok {
		return "", false, repository.ErrNotFound
	}
	if payment.Status != domain.PaymentStatusPending {
		return payment.Status, false, nil
	}
	payment.Status = status
	payment.UpdatedAt = time.Now()
	return status, true, nil
}

func (m *MockPaymentRepository) HasCompletedForBooking(ctx context.Context, bookingID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.BookingID == bookingID && p.Status == domain.PaymentStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

// GetPayment returns the payment by reference (for test assertions).
func (m *MockPaymentRepository) GetPayment(ref string) *domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payments[ref]
}

// CountPayments returns the number of payments.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a mock implementation of gateway.Client.
type MockGateway struct {
	mu sync.Mutex

	// Programmed responses
	CheckoutURL   string
	VerifySuccess bool
	VerifyStatus  string

	// Error injection
	InitializeError error
	VerifyError     error

	// Counters and captures for verification
	InitializeCallCount int32
	VerifyCallCount     int32
	LastInitialize      gateway.InitializeRequest
	LastVerifyRef       string
}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		CheckoutURL:   "https://checkout.example/session",
		VerifySuccess: true,
		VerifyStatus:  "success",
	}
}

func (m *MockGateway) Initialize(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResponse, error) {
	atomic.AddInt32(&m.InitializeCallCount, 1)
	m.mu.Lock()
	m.LastInitialize = req
	m.mu.Unlock()
	if m.InitializeError != nil {
		return nil, m.InitializeError
	}
	return &gateway.InitializeResponse{CheckoutURL: m.CheckoutURL}, nil
}

func (m *MockGateway) Verify(ctx context.Context, txRef string) (*gateway.VerifyResult, error) {
	atomic.AddInt32(&m.VerifyCallCount, 1)
	m.mu.Lock()
	m.LastVerifyRef = txRef
	m.mu.Unlock()
	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	return &gateway.VerifyResult{Success: m.VerifySuccess, RawStatus: m.VerifyStatus}, nil
}

// InitializeRequest returns the last captured initialize request.
func (m *MockGateway) InitializeRequest() gateway.InitializeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastInitialize
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// MockNotifier is a mock implementation of service.Notifier.
type MockNotifier struct {
	mu       sync.Mutex
	messages []service.PaymentConfirmation

	// Error injection
	EnqueueError error
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) EnqueuePaymentConfirmation(ctx context.Context, msg service.PaymentConfirmation) error {
	if m.EnqueueError != nil {
		return m.EnqueueError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

// Messages returns the enqueued messages.
func (m *MockNotifier) Messages() []service.PaymentConfirmation {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]service.PaymentConfirmation, len(m.messages))
	copy(result, m.messages)
	return result
}

// CountMessages returns the number of enqueued messages.
func (m *MockNotifier) CountMessages() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// ──────────────────────────────────────────────
// MOCK LISTING CACHE
// ──────────────────────────────────────────────

// MockCache is an in-memory implementation of redis.CacheStoreInterface.
type MockCache struct {
	mu       sync.RWMutex
	listings map[string]*redis.CachedListing

	// Counters for verification
	GetCallCount int32
	SetCallCount int32
}

// NewMockCache creates a new mock listing cache.
func NewMockCache() *MockCache {
	return &MockCache{
		listings: make(map[string]*redis.CachedListing),
	}
}

func (m *MockCache) GetListing(ctx context.Context, listingID string) (*redis.CachedListing, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	listing, ok := m.listings[listingID]
	if !ok {
		return nil, nil // Cache miss
	}
	dup := *listing
	return &dup, nil
}

func (m *MockCache) SetListing(ctx context.Context, listing *redis.CachedListing) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	dup := *listing
	m.listings[listing.ID] = &dup
	return nil
}

func (m *MockCache) InvalidateListing(ctx context.Context, listingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listings, listingID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK QUEUE AND EMAIL SENDER
// ──────────────────────────────────────────────

// MockQueue is an in-memory implementation of redis.QueueStoreInterface.
type MockQueue struct {
	mu       sync.Mutex
	messages [][]byte

	// Error injection
	PushError error
}

// NewMockQueue creates a new mock queue.
func NewMockQueue() *MockQueue {
	return &MockQueue{}
}

func (m *MockQueue) Push(ctx context.Context, payload []byte) error {
	if m.PushError != nil {
		return m.PushError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, payload)
	return nil
}

func (m *MockQueue) Pop(ctx context.Context, timeout time.Duration) ([]byte, error) {
	m.mu.Lock()
	if len(m.messages) > 0 {
		payload := m.messages[0]
		m.messages = m.messages[1:]
		m.mu.Unlock()
		return payload, nil
	}
	m.mu.Unlock()
	// Simulate a blocking pop timing out on an empty queue.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(time.Millisecond):
		return nil, nil
	}
}

// Len returns the number of queued messages.
func (m *MockQueue) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// MockSender is a mock email sender.
type MockSender struct {
	mu    sync.Mutex
	sends []SentEmail

	// FailFirst makes the first Send call fail.
	FailFirst bool
	failed    bool
}

// SentEmail captures one delivered email.
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// NewMockSender creates a new mock sender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailFirst && !m.failed {
		m.failed = true
		return context.DeadlineExceeded
	}
	m.sends = append(m.sends, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

// Sends returns the delivered emails.
func (m *MockSender) Sends() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]SentEmail, len(m.sends))
	copy(result, m.sends)
	return result
}

// CountSends returns the number of delivered emails.
func (m *MockSender) CountSends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sends)
}
