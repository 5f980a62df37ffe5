package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

func TestEngineTotal_PerJurisdiction(t *testing.T) {
	root := backToSchoolOrder(t)
	engine := NewEngine(DefaultPolicies(), 2)

	cases := []struct {
		country string
		want    string
	}{
		{"US", "1127.67"},
		{"FR", "1264.68"},
		{"EXPORT", "1053.90"},
		{"DE", "1053.90"}, // no matching policy, no tax
	}

	for _, tc := range cases {
		total, err := engine.Total(Order{Country: tc.country, Root: root})
		require.NoError(t, err)
		assert.Equal(t, tc.want, total.StringFixed(2), "country %s", tc.country)
	}
}

func TestEngineTotal_RequiresRoot(t *testing.T) {
	engine := NewEngine(DefaultPolicies(), 2)
	_, err := engine.Total(Order{Country: "US"})
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidation))
}

func TestEngineTotal_DefaultRoundDigits(t *testing.T) {
	engine := NewEngine(DefaultPolicies(), 0)

	item, err := NewItem("Widget", domain.MoneyFromInt(999), 1)
	require.NoError(t, err)

	total, err := engine.Total(Order{Country: "US", Root: item})
	require.NoError(t, err)
	assert.Equal(t, "1068.93", total.StringFixed(2))
}
