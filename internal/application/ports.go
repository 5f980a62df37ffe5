package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// PermissionPaymentExecute gates access to the real payment call.
const PermissionPaymentExecute = "PAYMENT_EXECUTE"

// ProductCatalog is the port for product lookups. A missing product is
// (nil, nil), not an error.
type ProductCatalog interface {
	Lookup(ctx context.Context, productID string) (*domain.Product, error)
}

// Inventory is the port for stock reservation. A refused reservation is
// (false, nil), not an error.
type Inventory interface {
	Reserve(ctx context.Context, productID string, qty int64) (bool, error)
}

// TaxService is the port for jurisdiction tax rate lookups.
type TaxService interface {
	Rate(ctx context.Context, country string) (decimal.Decimal, error)
}

// PaymentService is the port for payment capture. Charge returns the
// processor transaction id.
type PaymentService interface {
	Charge(ctx context.Context, amount domain.Money, cardToken string) (string, error)
}

// Notifier is the port for confirmation delivery. The orchestrator
// treats failures here as best-effort.
type Notifier interface {
	Send(ctx context.Context, email, subject, body string) error
}

// AccessChecker answers permission checks for the current caller.
type AccessChecker interface {
	HasPermission(permission string) bool
}
