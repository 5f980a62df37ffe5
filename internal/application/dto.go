package application

import (
	"github.com/shopspring/decimal"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// CartItem is one requested line of a checkout.
type CartItem struct {
	ProductID string
	Qty       int64
}

// CheckoutRequest is a single-use value object; the engine never keeps
// it after the checkout finishes.
type CheckoutRequest struct {
	Country   string
	UserID    string
	Items     []CartItem
	CardToken string
	Email     string
}

// CheckoutResult is returned exactly once per successful checkout.
type CheckoutResult struct {
	TransactionID string
	Subtotal      domain.Money
	TaxRate       decimal.Decimal
	Total         domain.Money
}
