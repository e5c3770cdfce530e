package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/plantshop/internal/model"
)

// CartItem is the raw cart row, before joining product data.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

const cartLineQuery = `SELECT ci.id, ci.product_id, p.name, p.price, COALESCE(p.image_url, ''), p.stock, ci.quantity
FROM cart_items ci
JOIN products p ON ci.product_id = p.id
WHERE ci.user_id = $1
ORDER BY ci.created_at`

// ListCartLines returns the user's cart rows joined with live product name,
// price and stock. Subtotals are not computed here; see model.BuildCart.
func (q *Queries) ListCartLines(ctx context.Context, userID int64) ([]model.CartLine, error) {
	rows, err := q.db.Query(ctx, cartLineQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []model.CartLine{}
	for rows.Next() {
		var line model.CartLine
		err := rows.Scan(&line.ID, &line.ProductID, &line.Name, &line.Price,
			&line.ImageURL, &line.Stock, &line.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetCartItem looks the row up by id scoped to its owner, so a foreign id
// behaves exactly like a missing one.
func (q *Queries) GetCartItem(ctx context.Context, id, userID int64) (CartItem, error) {
	var item CartItem
	err := q.db.QueryRow(ctx,
		`SELECT id, user_id, product_id, quantity, created_at, updated_at
		 FROM cart_items WHERE id = $1 AND user_id = $2`,
		id, userID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

func (q *Queries) GetCartItemByProduct(ctx context.Context, userID, productID int64) (CartItem, error) {
	var item CartItem
	err := q.db.QueryRow(ctx,
		`SELECT id, user_id, product_id, quantity, created_at, updated_at
		 FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

func (q *Queries) InsertCartItem(ctx context.Context, userID, productID int64, quantity int32) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3)`,
		userID, productID, quantity)
	return err
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, id int64, quantity int32) error {
	_, err := q.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity)
	return err
}

func (q *Queries) DeleteCartItem(ctx context.Context, id, userID int64) (int64, error) {
	tag, err := q.db.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) ClearCart(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
