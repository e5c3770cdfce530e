package dto

import (
	"github.com/shopspring/decimal"
)

// Money serializes as a bare JSON number with exactly two decimal places,
// e.g. 25.50, matching the storefront's monetary contract.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}
