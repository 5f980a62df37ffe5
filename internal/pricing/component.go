package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// Component is a node in a pricing tree: either a single priced line
// (Item) or a discount-bearing group of nodes (Bundle).
//
// Subtotal is pure: it derives only from the node's current attributes
// and children. Render is presentational only and must not drive
// business logic.
type Component interface {
	Subtotal() domain.Money
	Render(depth int) string
}

// Item is a leaf: a priced, quantified product line. Immutable after
// construction.
type Item struct {
	name      string
	unitPrice domain.Money
	qty       int64
}

func NewItem(name string, unitPrice domain.Money, qty int64) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if unitPrice.IsNegative() {
		return nil, domain.NewValidationError(fmt.Sprintf("item %s has negative unit price", name))
	}
	if qty <= 0 {
		return nil, domain.NewValidationError(fmt.Sprintf("item %s has non-positive quantity %d", name, qty))
	}
	return &Item{name: name, unitPrice: unitPrice, qty: qty}, nil
}

func (i *Item) Name() string { return i.name }

func (i *Item) Subtotal() domain.Money {
	return i.unitPrice.MulInt(i.qty)
}

func (i *Item) Render(depth int) string {
	indent := strings.Repeat("  ", depth)
	return fmt.Sprintf("%s- %s x%d: $%s", indent, i.name, i.qty, i.Subtotal().StringFixed(2))
}

// Bundle groups child components and applies one discount to their
// summed subtotal. The bundle exclusively owns its children.
type Bundle struct {
	name     string
	discount decimal.Decimal
	children []Component
}

func NewBundle(name string, discount decimal.Decimal) (*Bundle, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("bundle name is required")
	}
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(1)) {
		return nil, domain.NewValidationError(fmt.Sprintf("bundle %s discount must be between 0 and 1", name))
	}
	return &Bundle{name: name, discount: discount}, nil
}

func (b *Bundle) Name() string { return b.name }

// Add appends a child component. Only direct self-containment is
// rejected here; a deeper cycle (A inside B inside A) is not detected.
func (b *Bundle) Add(child Component) error {
	if child == nil {
		return domain.NewValidationError(fmt.Sprintf("bundle %s cannot contain a nil component", b.name))
	}
	if other, ok := child.(*Bundle); ok && other == b {
		return domain.NewValidationError(fmt.Sprintf("bundle %s cannot contain itself", b.name))
	}
	b.children = append(b.children, child)
	return nil
}

// Subtotal sums the children bottom-up, then applies the bundle's own
// discount once to the summed total. An empty bundle is worth 0
// regardless of its discount.
func (b *Bundle) Subtotal() domain.Money {
	sum := domain.Zero
	for _, child := range b.children {
		sum = sum.Add(child.Subtotal())
	}
	if b.discount.IsZero() {
		return sum
	}
	return sum.Discount(b.discount)
}

func (b *Bundle) Render(depth int) string {
	indent := strings.Repeat("  ", depth)
	pct := b.discount.Mul(decimal.NewFromInt(100))
	lines := []string{
		fmt.Sprintf("%s+ %s (disc %s%%) = $%s", indent, b.name, pct.String(), b.Subtotal().StringFixed(2)),
	}
	for _, child := range b.children {
		lines = append(lines, child.Render(depth+1))
	}
	return strings.Join(lines, "\n")
}
