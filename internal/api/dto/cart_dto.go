package dto

type CartItemDTO struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int32  `json:"quantity"`
	Stock     int32  `json:"stock"`
	Subtotal  Money  `json:"subtotal"`
}

type CartDTO struct {
	Items []CartItemDTO `json:"items"`
	Total Money         `json:"total"`
}

type AddCartItemDTO struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type UpdateCartItemDTO struct {
	Quantity int32 `json:"quantity"`
}
