// Package memory provides in-process implementations of the checkout
// ports: a static catalog, a mutex-guarded inventory, a jurisdiction
// rate table, a fake payment processor and a log-only notifier. They
// back the demo binary and the service-level tests.
package memory

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// Catalog is a fixed product table.
type Catalog struct {
	products map[string]domain.Product
}

func NewCatalog(products ...domain.Product) *Catalog {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: byID}
}

func (c *Catalog) Lookup(_ context.Context, productID string) (*domain.Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Inventory tracks stock counts and reserves atomically.
type Inventory struct {
	mu    sync.Mutex
	stock map[string]int64
}

func NewInventory(stock map[string]int64) *Inventory {
	owned := make(map[string]int64, len(stock))
	for id, n := range stock {
		owned[id] = n
	}
	return &Inventory{stock: owned}
}

func (i *Inventory) Reserve(_ context.Context, productID string, qty int64) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	available, ok := i.stock[productID]
	if !ok || qty <= 0 || available < qty {
		return false, nil
	}
	i.stock[productID] = available - qty
	return true, nil
}

// Stock reports the remaining count for a product.
func (i *Inventory) Stock(productID string) int64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stock[productID]
}

// TaxService resolves rates from a static jurisdiction table. Unknown
// countries are untaxed.
type TaxService struct {
	rates map[string]decimal.Decimal
}

func NewTaxService() *TaxService {
	return &TaxService{
		rates: map[string]decimal.Decimal{
			"FR": decimal.RequireFromString("0.20"),
			"US": decimal.RequireFromString("0.07"),
		},
	}
}

func (t *TaxService) Rate(_ context.Context, country string) (decimal.Decimal, error) {
	rate, ok := t.rates[strings.ToUpper(country)]
	if !ok {
		return decimal.Zero, nil
	}
	return rate, nil
}

// PaymentService approves every charge and hands back a short
// transaction id.
type PaymentService struct {
	logger *slog.Logger
}

func NewPaymentService(logger *slog.Logger) *PaymentService {
	return &PaymentService{logger: logger}
}

func (p *PaymentService) Charge(_ context.Context, amount domain.Money, _ string) (string, error) {
	txID := "TX-" + strings.ToUpper(uuid.New().String()[:8])
	p.logger.Info("charging card", "amount", amount.StringFixed(2), "transaction_id", txID)
	return txID, nil
}

// Notifier writes the confirmation to the log instead of sending mail.
type Notifier struct {
	logger *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

func (n *Notifier) Send(_ context.Context, email, subject, body string) error {
	n.logger.Info("notification sent", "email", email, "subject", subject, "body", body)
	return nil
}

// StaticAccessChecker grants exactly the permissions it was built with.
type StaticAccessChecker struct {
	granted map[string]bool
}

func NewStaticAccessChecker(permissions ...string) *StaticAccessChecker {
	granted := make(map[string]bool, len(permissions))
	for _, p := range permissions {
		granted[p] = true
	}
	return &StaticAccessChecker{granted: granted}
}

func (s *StaticAccessChecker) HasPermission(permission string) bool {
	return s.granted[permission]
}
