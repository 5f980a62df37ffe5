package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// grabAllPolicy matches every order; used to prove list order wins.
type grabAllPolicy struct{}

func (grabAllPolicy) AppliesTo(_ Order) bool                        { return true }
func (grabAllPolicy) Apply(base domain.Money, _ Order) domain.Money { return base }

func TestSelectPolicy_FirstMatchWins(t *testing.T) {
	order := Order{Country: "US"}

	selected := SelectPolicy(order, []TaxPolicy{grabAllPolicy{}, USTaxPolicy{}})
	assert.IsType(t, grabAllPolicy{}, selected)

	selected = SelectPolicy(order, []TaxPolicy{USTaxPolicy{}, grabAllPolicy{}})
	assert.IsType(t, USTaxPolicy{}, selected)
}

func TestSelectPolicy_CaseInsensitiveCountry(t *testing.T) {
	for _, country := range []string{"fr", "FR", "Fr"} {
		selected := SelectPolicy(Order{Country: country}, DefaultPolicies())
		assert.IsType(t, FRTaxPolicy{}, selected, "country %q", country)
	}
}

func TestSelectPolicy_FallsBackToNoTax(t *testing.T) {
	selected := SelectPolicy(Order{Country: "DE"}, DefaultPolicies())
	assert.IsType(t, NoTaxPolicy{}, selected)

	// The fallback holds even for an empty list.
	selected = SelectPolicy(Order{Country: "US"}, nil)
	assert.IsType(t, NoTaxPolicy{}, selected)
}

func TestPolicyRates(t *testing.T) {
	base := domain.MoneyFromInt(100)
	order := Order{}

	assert.Equal(t, "107.00", USTaxPolicy{}.Apply(base, order).StringFixed(2))
	assert.Equal(t, "120.00", FRTaxPolicy{}.Apply(base, order).StringFixed(2))
	assert.Equal(t, "100.00", ExportTaxPolicy{}.Apply(base, order).StringFixed(2))
	assert.Equal(t, "100.00", NoTaxPolicy{}.Apply(base, order).StringFixed(2))
}
