package kernel

import (
	"fmt"

	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a decimal monetary amount. Currency is implied by the shop and
// formatting is left to the presentation layer.
//
// The zero value is a valid amount of zero.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// NewMoney builds an amount from a float, e.g. a value decoded from a legacy document.
func NewMoney(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount)}
}

// NewMoneyFromDecimal wraps an existing decimal value.
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromString parses amounts such as "500" or "129.99".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not numeric", s))
	}
	return Money{amount: d}, nil
}

// Decimal exposes the underlying value for adapters.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies the amount by an item quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}
