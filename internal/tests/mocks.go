package tests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"travelex/internal/domain"
	"travelex/internal/events"
	"travelex/internal/redis"
	"travelex/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK CATALOG REPOSITORY
// ──────────────────────────────────────────────

// MockCatalogRepository is a mock implementation of CatalogRepository.
// Adjustments are kept in catalog order by Position.
type MockCatalogRepository struct {
	mu          sync.RWMutex
	rates       *domain.Rates
	adjustments map[domain.AdjustmentType][]domain.Adjustment

	// Counters for verification
	LoadCatalogCallCount     int32
	LoadFullCatalogCallCount int32

	// Error injection
	LoadError  error
	WriteError error
}

// NewMockCatalogRepository creates a new mock catalog repository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		adjustments: make(map[domain.AdjustmentType][]domain.Adjustment),
	}
}

// SetRates sets the base rates.
func (m *MockCatalogRepository) SetRates(distanceRate, durationRate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates = &domain.Rates{DistanceRate: distanceRate, DurationRate: durationRate, UpdatedAt: time.Now()}
}

// AddAdjustment appends an adjustment to the end of its list.
func (m *MockCatalogRepository) AddAdjustment(typ domain.AdjustmentType, adj domain.Adjustment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.adjustments[typ]
	if adj.Position == 0 {
		adj.Position = len(list) + 1
	}
	m.adjustments[typ] = sortedAdjustments(append(list, adj))
}

func sortedAdjustments(list []domain.Adjustment) []domain.Adjustment {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list
}

func (m *MockCatalogRepository) LoadCatalog(ctx context.Context, surchargeIDs, discountIDs []string) (*domain.RateCatalog, error) {
	atomic.AddInt32(&m.LoadCatalogCallCount, 1)
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.rates == nil {
		return nil, repository.ErrNotFound
	}
	return &domain.RateCatalog{
		DistanceRate: m.rates.DistanceRate,
		DurationRate: m.rates.DurationRate,
		Surcharges:   filterAdjustments(m.adjustments[domain.AdjustmentTypeSurcharge], surchargeIDs),
		Discounts:    filterAdjustments(m.adjustments[domain.AdjustmentTypeDiscount], discountIDs),
	}, nil
}

func filterAdjustments(list []domain.Adjustment, ids []string) []domain.Adjustment {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []domain.Adjustment{}
	for _, a := range list {
		if want[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

func (m *MockCatalogRepository) LoadFullCatalog(ctx context.Context) (*domain.RateCatalog, error) {
	atomic.AddInt32(&m.LoadFullCatalogCallCount, 1)
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.rates == nil {
		return nil, repository.ErrNotFound
	}
	return &domain.RateCatalog{
		DistanceRate: m.rates.DistanceRate,
		DurationRate: m.rates.DurationRate,
		Surcharges:   append([]domain.Adjustment{}, m.adjustments[domain.AdjustmentTypeSurcharge]...),
		Discounts:    append([]domain.Adjustment{}, m.adjustments[domain.AdjustmentTypeDiscount]...),
	}, nil
}

func (m *MockCatalogRepository) GetRates(ctx context.Context) (*domain.Rates, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.rates == nil {
		return nil, repository.ErrNotFound
	}
	copy := *m.rates
	return &copy, nil
}

func (m *MockCatalogRepository) UpdateRates(ctx context.Context, rates *domain.Rates) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rates.UpdatedAt = time.Now()
	copy := *rates
	m.rates = &copy
	return nil
}

func (m *MockCatalogRepository) ListAdjustments(ctx context.Context, typ domain.AdjustmentType) ([]domain.Adjustment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Adjustment{}, m.adjustments[typ]...), nil
}

func (m *MockCatalogRepository) GetAdjustment(ctx context.Context, typ domain.AdjustmentType, id string) (*domain.Adjustment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.adjustments[typ] {
		if a.ID == id {
			copy := a
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockCatalogRepository) CreateAdjustment(ctx context.Context, typ domain.AdjustmentType, adj *domain.Adjustment) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.adjustments[typ]
	for _, a := range list {
		if a.ID == adj.ID {
			return repository.ErrDuplicate
		}
	}
	if adj.Position == 0 {
		adj.Position = len(list) + 1
	}
	adj.CreatedAt = time.Now()
	m.adjustments[typ] = sortedAdjustments(append(list, *adj))
	return nil
}

func (m *MockCatalogRepository) UpdateAdjustment(ctx context.Context, typ domain.AdjustmentType, adj *domain.Adjustment) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.adjustments[typ]
	for i := range list {
		if list[i].ID == adj.ID {
			list[i] = *adj
			m.adjustments[typ] = sortedAdjustments(list)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *MockCatalogRepository) DeleteAdjustment(ctx context.Context, typ domain.AdjustmentType, id string) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.adjustments[typ]
	for i := range list {
		if list[i].ID == id {
			m.adjustments[typ] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	trip.CreatedAt = time.Now()
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTripRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Trip
	for _, t := range m.trips {
		if t.OwnerID == ownerID {
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTripRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// ──────────────────────────────────────────────
// MOCK ORDER REPOSITORY
// ──────────────────────────────────────────────

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	// Counters for verification
	UpdateStatusCallCount int32

	// Error injection
	UpdateStatusError error
}

// NewMockOrderRepository creates a new mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

// AddOrder adds an order to the mock repository.
func (m *MockOrderRepository) AddOrder(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.CreatedAt = time.Now()
	copy := *order
	m.orders[order.ID] = &copy
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *order
	return &copy, nil
}

func (m *MockOrderRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Order
	for _, o := range m.orders {
		if o.OwnerID == ownerID {
			copy := *o
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.Status = status
	return nil
}

// GetOrder returns order for test assertions.
func (m *MockOrderRepository) GetOrder(id string) *domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id]
}

// ──────────────────────────────────────────────
// MOCK INVOICE REPOSITORY
// ──────────────────────────────────────────────

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockInvoiceRepository creates a new mock invoice repository.
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]*domain.Invoice),
	}
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.invoices {
		if inv.OrderID == invoice.OrderID {
			return repository.ErrDuplicate
		}
	}
	copy := *invoice
	m.invoices[invoice.ID] = &copy
	return nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	invoice, ok := m.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *invoice
	return &copy, nil
}

func (m *MockInvoiceRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invoices {
		if inv.OrderID == orderID {
			copy := *inv
			return &copy, nil
		}
	}
	return nil, nil
}

// CountInvoices returns the number of stored invoices.
func (m *MockInvoiceRepository) CountInvoices() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.invoices)
}

// ──────────────────────────────────────────────
// MOCK UNIT OF WORK
// ──────────────────────────────────────────────

// MockUnitOfWork stages writes and applies them only when fn succeeds,
// emulating commit and rollback.
type MockUnitOfWork struct {
	mu       sync.Mutex
	orders   *MockOrderRepository
	invoices *MockInvoiceRepository

	// Counters for verification
	CommitCount   int32
	RollbackCount int32
}

// NewMockUnitOfWork creates a unit of work over the given mocks.
func NewMockUnitOfWork(orders *MockOrderRepository, invoices *MockInvoiceRepository) *MockUnitOfWork {
	return &MockUnitOfWork{orders: orders, invoices: invoices}
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &stagedWrites{}
	if err := fn(repository.TxRepositories{
		Orders:   &txOrders{MockOrderRepository: m.orders, staged: staged},
		Invoices: &txInvoices{MockInvoiceRepository: m.invoices, staged: staged},
	}); err != nil {
		atomic.AddInt32(&m.RollbackCount, 1)
		return err
	}

	if err := staged.apply(ctx); err != nil {
		atomic.AddInt32(&m.RollbackCount, 1)
		return err
	}
	atomic.AddInt32(&m.CommitCount, 1)
	return nil
}

type stagedWrites struct {
	ops []func(ctx context.Context) error
}

func (s *stagedWrites) apply(ctx context.Context) error {
	for _, op := range s.ops {
		if err := op(ctx); err != nil {
			return err
		}
	}
	return nil
}

type txOrders struct {
	*MockOrderRepository
	staged *stagedWrites
}

func (t *txOrders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if t.UpdateStatusError != nil {
		return t.UpdateStatusError
	}
	if _, err := t.GetByID(ctx, id); err != nil {
		return err
	}
	t.staged.ops = append(t.staged.ops, func(ctx context.Context) error {
		return t.MockOrderRepository.UpdateStatus(ctx, id, status)
	})
	return nil
}

type txInvoices struct {
	*MockInvoiceRepository
	staged *stagedWrites
}

func (t *txInvoices) Create(ctx context.Context, invoice *domain.Invoice) error {
	if t.CreateError != nil {
		return t.CreateError
	}
	if existing, _ := t.GetByOrderID(ctx, invoice.OrderID); existing != nil {
		return repository.ErrDuplicate
	}
	copy := *invoice
	t.staged.ops = append(t.staged.ops, func(ctx context.Context) error {
		return t.MockInvoiceRepository.Create(ctx, &copy)
	})
	return nil
}

// ──────────────────────────────────────────────
// MOCK CATALOG CACHE
// ──────────────────────────────────────────────

// MockCatalogCache is a mock implementation of CatalogCacheInterface.
type MockCatalogCache struct {
	mu      sync.Mutex
	catalog *domain.RateCatalog

	// Counters
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError error
}

// NewMockCatalogCache creates a new mock catalog cache.
func NewMockCatalogCache() *MockCatalogCache {
	return &MockCatalogCache{}
}

func (m *MockCatalogCache) GetCatalog(ctx context.Context) (*domain.RateCatalog, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.catalog == nil {
		return nil, nil
	}
	copy := *m.catalog
	return &copy, nil
}

func (m *MockCatalogCache) SetCatalog(ctx context.Context, catalog *domain.RateCatalog) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *catalog
	m.catalog = &copy
	return nil
}

func (m *MockCatalogCache) InvalidateCatalog(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = nil
	return nil
}

// IsCached reports whether a snapshot is cached (for test assertions).
func (m *MockCatalogCache) IsCached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog != nil
}

var _ redis.CatalogCacheInterface = (*MockCatalogCache)(nil)

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStore.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireOrderLock(ctx context.Context, orderID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:order:" + orderID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseOrderLock(ctx context.Context, orderID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:order:"+orderID)
	return nil
}

// IsLocked checks if an order is locked (for test assertions).
func (m *MockLockStore) IsLocked(orderID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:order:"+orderID]
	return exists && time.Now().Before(expiry)
}

var _ redis.LockStoreInterface = (*MockLockStore)(nil)

// ──────────────────────────────────────────────
// MOCK EVENT PUBLISHER
// ──────────────────────────────────────────────

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	events []events.Event

	// Error injection
	PublishError error
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// EventsOfType returns the published events of one type.
func (m *MockPublisher) EventsOfType(typ events.Type) []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []events.Event
	for _, e := range m.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// ──────────────────────────────────────────────
// MOCK WEATHER ASSESSOR
// ──────────────────────────────────────────────

// MockAssessor is a mock implementation of service.WeatherAssessor.
type MockAssessor struct {
	mu         sync.Mutex
	Assessment *domain.WeatherAssessment
	Err        error

	// Last call, for assertions.
	LastLat, LastLng float64
	LastDate         string
	CallCount        int32
}

func (m *MockAssessor) GetForecast(ctx context.Context, lat, lng float64, date string) (*domain.WeatherAssessment, error) {
	atomic.AddInt32(&m.CallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastLat, m.LastLng, m.LastDate = lat, lng, date
	if m.Err != nil {
		return nil, m.Err
	}
	copy := *m.Assessment
	return &copy, nil
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
