package model

import (
	"github.com/shopspring/decimal"
)

// CartLine is one (product, quantity) pairing for a user, joined with the
// live product row so the client always sees current price and stock.
type CartLine struct {
	ID        int64
	ProductID int64
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	Stock     int32
	Quantity  int32
	Subtotal  decimal.Decimal
}

type Cart struct {
	Items []CartLine
	Total decimal.Decimal
}

// BuildCart computes line subtotals and the cart total from raw lines.
func BuildCart(lines []CartLine) Cart {
	cart := Cart{
		Items: make([]CartLine, 0, len(lines)),
		Total: decimal.Zero,
	}
	for _, line := range lines {
		line.Subtotal = line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		cart.Items = append(cart.Items, line)
		cart.Total = cart.Total.Add(line.Subtotal)
	}
	return cart
}
