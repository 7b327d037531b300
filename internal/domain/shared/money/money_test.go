package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCodeAcceptsOnlyKnownCurrencies(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "CAD"} {
		c, err := FromCode(code)
		require.NoError(t, err)
		assert.Equal(t, code, c.Code())
	}

	for _, code := range []string{"", "GBP", "usd", "RUB"} {
		_, err := FromCode(code)
		assert.ErrorIs(t, err, ErrInvalidCurrency, "code %q", code)
	}
}

func TestAddSumsAmountsInSameCurrency(t *testing.T) {
	sum, err := Must(100, USD).Add(Must(25, USD))

	require.NoError(t, err)
	assert.True(t, sum.Equal(Must(125, USD)))
}

func TestAddFailsOnCurrencyMismatch(t *testing.T) {
	_, err := Must(100, USD).Add(Must(25, EUR))

	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestZeroHasNoCurrency(t *testing.T) {
	z := Zero()

	assert.True(t, z.IsZero())
	assert.Empty(t, z.Currency.Code())

	_, err := z.Add(Must(1, USD))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestNewRejectsMissingCurrency(t *testing.T) {
	_, err := New(decimal.NewFromInt(10), Currency{})

	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestMulRate(t *testing.T) {
	m := Must(400, USD).MulRate(decimal.NewFromFloat(0.06))

	assert.True(t, m.Equal(Must(24, USD)))
}

func TestEqualIsStructural(t *testing.T) {
	assert.True(t, Must(10, EUR).Equal(Must(10, EUR)))
	assert.False(t, Must(10, EUR).Equal(Must(10, USD)))
	assert.False(t, Must(10, EUR).Equal(Must(11, EUR)))
}
