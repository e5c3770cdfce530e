package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentMethodCashOnDelivery is the single supported payment method.
const PaymentMethodCashOnDelivery = "cash_on_delivery"

// Order is an immutable snapshot of a checkout. UserID is nullable so the
// order survives deletion of its user.
type Order struct {
	ID                 int64
	UserID             *int64
	OrderNumber        string
	Status             OrderStatus
	TotalAmount        decimal.Decimal
	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	Phone              string
	PaymentMethod      string
	Notes              string
	Items              []OrderItem
	CreatedAt          time.Time
}

// OrderItem holds a frozen copy of the product name and price taken at
// placement time, so later catalog edits never alter order history.
type OrderItem struct {
	ID           int64
	OrderID      int64
	ProductID    *int64
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     int32
	Subtotal     decimal.Decimal
}

type ShippingInfo struct {
	Address    string
	City       string
	PostalCode string
	Phone      string
	Notes      string
}
