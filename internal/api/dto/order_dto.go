package dto

import "time"

type CreateOrderDTO struct {
	ShippingAddress    string `json:"shippingAddress"`
	ShippingCity       string `json:"shippingCity"`
	ShippingPostalCode string `json:"shippingPostalCode"`
	Phone              string `json:"phone"`
	Notes              string `json:"notes,omitempty"`
}

type OrderItemDTO struct {
	ID           int64  `json:"id"`
	ProductID    *int64 `json:"productId"`
	ProductName  string `json:"productName"`
	ProductPrice Money  `json:"productPrice"`
	Quantity     int32  `json:"quantity"`
	Subtotal     Money  `json:"subtotal"`
}

type OrderDTO struct {
	ID                 int64          `json:"id"`
	OrderNumber        string         `json:"orderNumber"`
	TotalAmount        Money          `json:"totalAmount"`
	Status             string         `json:"status"`
	ShippingAddress    string         `json:"shippingAddress"`
	ShippingCity       string         `json:"shippingCity"`
	ShippingPostalCode string         `json:"shippingPostalCode"`
	Phone              string         `json:"phone"`
	PaymentMethod      string         `json:"paymentMethod"`
	Notes              string         `json:"notes,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	Items              []OrderItemDTO `json:"items,omitempty"`
}
