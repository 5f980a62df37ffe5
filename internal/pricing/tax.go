package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// Order is the read-only context tax policies decide on.
type Order struct {
	Country string
	Root    Component
}

// TaxPolicy is a jurisdiction-scoped rule that conditionally transforms
// a base amount into a taxed amount.
type TaxPolicy interface {
	AppliesTo(order Order) bool
	Apply(base domain.Money, order Order) domain.Money
}

// USTaxPolicy applies the 7% US sales tax.
type USTaxPolicy struct{}

func (USTaxPolicy) AppliesTo(order Order) bool {
	return strings.EqualFold(order.Country, "US")
}

func (USTaxPolicy) Apply(base domain.Money, _ Order) domain.Money {
	return base.Mul(decimal.RequireFromString("1.07"))
}

// FRTaxPolicy applies the 20% French VAT.
type FRTaxPolicy struct{}

func (FRTaxPolicy) AppliesTo(order Order) bool {
	return strings.EqualFold(order.Country, "FR")
}

func (FRTaxPolicy) Apply(base domain.Money, _ Order) domain.Money {
	return base.Mul(decimal.RequireFromString("1.20"))
}

// ExportTaxPolicy leaves export orders untaxed.
type ExportTaxPolicy struct{}

func (ExportTaxPolicy) AppliesTo(order Order) bool {
	return strings.EqualFold(order.Country, "EXPORT")
}

func (ExportTaxPolicy) Apply(base domain.Money, _ Order) domain.Money {
	return base
}

// NoTaxPolicy always applies and returns the base unchanged. It is the
// structural fallback of SelectPolicy.
type NoTaxPolicy struct{}

func (NoTaxPolicy) AppliesTo(_ Order) bool { return true }

func (NoTaxPolicy) Apply(base domain.Money, _ Order) domain.Money { return base }

// DefaultPolicies returns the supported jurisdiction policies in
// precedence order. SelectPolicy supplies the no-tax fallback itself.
func DefaultPolicies() []TaxPolicy {
	return []TaxPolicy{USTaxPolicy{}, FRTaxPolicy{}, ExportTaxPolicy{}}
}

// SelectPolicy returns the first policy that applies to the order. The
// list order encodes precedence. If nothing matches, the no-tax policy
// applies even when it is absent from the list.
func SelectPolicy(order Order, policies []TaxPolicy) TaxPolicy {
	for _, p := range policies {
		if p.AppliesTo(order) {
			return p
		}
	}
	return NoTaxPolicy{}
}
