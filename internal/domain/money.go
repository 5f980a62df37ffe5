package domain

import (
	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount. All arithmetic stays exact;
// rounding happens only where a caller explicitly asks for it.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero monetary amount.
var Zero = Money{}

func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromString parses a decimal string such as "1053.90".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, NewValidationError("invalid amount " + s)
	}
	return Money{amount: d}, nil
}

// MoneyFromInt builds an amount from whole currency units.
func MoneyFromInt(units int64) Money {
	return Money{amount: decimal.NewFromInt(units)}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

func (m Money) MulInt(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n))}
}

// Discount applies a fractional discount once: m * (1 - fraction).
func (m Money) Discount(fraction decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(1).Sub(fraction))}
}

// WithTax applies a fractional tax rate: m * (1 + rate).
func (m Money) WithTax(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(1).Add(rate))}
}

// Round rounds half away from zero to the given number of fractional digits.
func (m Money) Round(digits int32) Money {
	return Money{amount: m.amount.Round(digits)}
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) String() string {
	return m.amount.String()
}

// StringFixed renders the amount with a fixed number of fractional digits,
// rounding half away from zero.
func (m Money) StringFixed(digits int32) string {
	return m.amount.StringFixed(digits)
}
