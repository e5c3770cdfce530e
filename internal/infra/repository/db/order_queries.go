package db

import (
	"context"

	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type CreateOrderParams struct {
	UserID             int64
	OrderNumber        string
	TotalAmount        decimal.Decimal
	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	Phone              string
	Notes              string
	PaymentMethod      string
	Status             model.OrderStatus
}

type CreateOrderItemParams struct {
	OrderID      int64
	ProductID    int64
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     int32
	Subtotal     decimal.Decimal
}

const orderColumns = `id, user_id, order_number, status, total_amount, shipping_address,
	shipping_city, shipping_postal_code, phone, payment_method, COALESCE(notes, ''), created_at`

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.Status, &o.TotalAmount, &o.ShippingAddress,
		&o.ShippingCity, &o.ShippingPostalCode, &o.Phone, &o.PaymentMethod, &o.Notes, &o.CreatedAt,
	)
	return o, err
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (model.Order, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO orders (user_id, order_number, total_amount, shipping_address,
			shipping_city, shipping_postal_code, phone, notes, payment_method, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)
		 RETURNING `+orderColumns,
		arg.UserID, arg.OrderNumber, arg.TotalAmount, arg.ShippingAddress,
		arg.ShippingCity, arg.ShippingPostalCode, arg.Phone, arg.Notes,
		arg.PaymentMethod, arg.Status)
	return scanOrder(row)
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (model.OrderItem, error) {
	var item model.OrderItem
	err := q.db.QueryRow(ctx,
		`INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity, subtotal)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, order_id, product_id, product_name, product_price, quantity, subtotal`,
		arg.OrderID, arg.ProductID, arg.ProductName, arg.ProductPrice, arg.Quantity, arg.Subtotal).
		Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductPrice, &item.Quantity, &item.Subtotal)
	return item, err
}

func (q *Queries) ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetOrderForUser enforces the ownership check in the WHERE clause, so an
// order belonging to someone else is indistinguishable from a missing one.
func (q *Queries) GetOrderForUser(ctx context.Context, orderID, userID int64) (model.Order, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`,
		orderID, userID)
	return scanOrder(row)
}

func (q *Queries) ListOrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, err := q.db.Query(ctx,
		`SELECT id, order_id, product_id, product_name, product_price, quantity, subtotal
		 FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductPrice, &item.Quantity, &item.Subtotal)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
