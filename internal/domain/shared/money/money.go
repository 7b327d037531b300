package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency  = errors.New("money: invalid currency code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
)

// Currency is a closed enumeration; values exist only for the declared set
// plus an internal none sentinel used by the uninitialized zero amount.
type Currency struct {
	code string
}

var (
	USD = Currency{code: "USD"}
	EUR = Currency{code: "EUR"}
	CAD = Currency{code: "CAD"}

	none = Currency{}
)

// All lists the currencies reachable via FromCode.
var All = []Currency{USD, EUR, CAD}

// FromCode resolves a currency by its ISO code; anything outside the closed
// set, including the empty string, fails.
func FromCode(code string) (Currency, error) {
	for _, c := range All {
		if c.code == code {
			return c, nil
		}
	}
	return Currency{}, ErrInvalidCurrency
}

func (c Currency) Code() string { return c.code }

// Money pairs a decimal amount with a currency. Arithmetic is defined only
// within one currency; there is no conversion.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// New constructs a Money value in the given currency.
func New(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == none {
		return Money{}, ErrInvalidCurrency
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Must creates Money from a whole amount and panics if validation fails;
// useful in tests and fixtures.
func Must(amount int64, currency Currency) Money {
	m, err := New(decimal.NewFromInt(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns the currency-less zero used for uninitialized defaults.
func Zero() Money {
	return Money{Amount: decimal.Zero, Currency: none}
}

// ZeroIn returns a zero amount in a concrete currency.
func ZeroIn(currency Currency) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Add sums two money values ensuring currencies match.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// MulInt multiplies the amount by a whole factor.
func (m Money) MulInt(times int64) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(times)), Currency: m.Currency}
}

// MulRate multiplies the amount by a decimal rate.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(rate), Currency: m.Currency}
}

// Equal reports structural equality (amount and currency).
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	if m.Currency == none {
		return m.Amount.String()
	}
	return m.Amount.String() + " " + m.Currency.code
}
