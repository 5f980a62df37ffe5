package pricing

import (
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// Engine combines the pricing tree with tax policy selection: subtotal
// from the tree, tax from the first applicable policy, one final round.
type Engine struct {
	policies    []TaxPolicy
	roundDigits int32
}

func NewEngine(policies []TaxPolicy, roundDigits int32) *Engine {
	if roundDigits <= 0 {
		roundDigits = 2
	}
	return &Engine{policies: policies, roundDigits: roundDigits}
}

// Total prices the order end to end. Rounding (half away from zero)
// happens exactly once, after tax.
func (e *Engine) Total(order Order) (domain.Money, error) {
	if order.Root == nil {
		return domain.Zero, domain.NewValidationError("order root is required")
	}

	subtotal := order.Root.Subtotal()
	policy := SelectPolicy(order, e.policies)
	total := policy.Apply(subtotal, order)

	return total.Round(e.roundDigits), nil
}
