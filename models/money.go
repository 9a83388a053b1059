package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the minimum number of decimal places written for amounts.
const moneyPlaces = 2

// FormatMoney renders d with at least two decimal places. Extra places the value
// already carries are kept.
func FormatMoney(d decimal.Decimal) string {
	places := int32(moneyPlaces)
	if exp := -d.Exponent(); exp > places {
		places = exp
	}
	return d.StringFixed(places)
}

// Money is a decimal amount for response bodies. It serializes through FormatMoney,
// so 100 becomes "100.00" instead of "100".
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON writes the amount as a quoted string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatMoney(m.Decimal))
}
