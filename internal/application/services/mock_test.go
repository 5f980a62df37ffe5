package services

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// MockCatalog
type MockCatalog struct {
	products map[string]domain.Product

	LookupFn func(ctx context.Context, productID string) (*domain.Product, error)
}

func NewMockCatalog(products ...domain.Product) *MockCatalog {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &MockCatalog{products: byID}
}

func (m *MockCatalog) Lookup(ctx context.Context, productID string) (*domain.Product, error) {
	if m.LookupFn != nil {
		return m.LookupFn(ctx, productID)
	}
	if p, ok := m.products[productID]; ok {
		return &p, nil
	}
	return nil, nil
}

// MockInventory
type MockInventory struct {
	mu       sync.Mutex
	reserved map[string]int64

	ReserveFn func(ctx context.Context, productID string, qty int64) (bool, error)
}

func NewMockInventory() *MockInventory {
	return &MockInventory{reserved: make(map[string]int64)}
}

func (m *MockInventory) Reserve(ctx context.Context, productID string, qty int64) (bool, error) {
	if m.ReserveFn != nil {
		return m.ReserveFn(ctx, productID, qty)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reserved[productID] += qty
	return true, nil
}

func (m *MockInventory) Reserved(productID string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reserved[productID]
}

// MockTaxService
type MockTaxService struct {
	mu    sync.Mutex
	calls int

	RateFn func(ctx context.Context, country string) (decimal.Decimal, error)
}

func (m *MockTaxService) Rate(ctx context.Context, country string) (decimal.Decimal, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.RateFn != nil {
		return m.RateFn(ctx, country)
	}
	return decimal.RequireFromString("0.20"), nil
}

func (m *MockTaxService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockPaymentService
type MockPaymentService struct {
	Calls int

	ChargeFn func(ctx context.Context, amount domain.Money, cardToken string) (string, error)
}

func (m *MockPaymentService) Charge(ctx context.Context, amount domain.Money, cardToken string) (string, error) {
	m.Calls++
	if m.ChargeFn != nil {
		return m.ChargeFn(ctx, amount, cardToken)
	}
	return "TX-MOCK0001", nil
}

// MockNotifier
type MockNotifier struct {
	Sent []string

	SendFn func(ctx context.Context, email, subject, body string) error
}

func (m *MockNotifier) Send(ctx context.Context, email, subject, body string) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, email, subject, body)
	}
	m.Sent = append(m.Sent, email)
	return nil
}

// MockAccessChecker
type MockAccessChecker struct {
	Allowed bool
}

func (m *MockAccessChecker) HasPermission(permission string) bool {
	return m.Allowed
}
