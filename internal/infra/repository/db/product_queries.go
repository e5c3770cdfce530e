package db

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/jackc/pgx/v5"
)

const productColumns = `p.id, p.category_id, p.name, p.slug, COALESCE(p.description, ''), p.price,
	COALESCE(p.image_url, ''), p.stock, p.is_featured,
	COALESCE(p.botanical_name, ''), COALESCE(p.care_level, ''), COALESCE(p.sunlight, ''),
	COALESCE(p.water_needs, ''), COALESCE(p.height, ''), p.created_at, p.updated_at,
	COALESCE(c.name, ''), COALESCE(c.slug, '')`

const productBaseQuery = `SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON p.category_id = c.id`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	var categoryName, categorySlug string
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price,
		&p.ImageURL, &p.Stock, &p.IsFeatured,
		&p.BotanicalName, &p.CareLevel, &p.Sunlight,
		&p.WaterNeeds, &p.Height, &p.CreatedAt, &p.UpdatedAt,
		&categoryName, &categorySlug,
	)
	if err != nil {
		return model.Product{}, err
	}
	if p.CategoryID != nil {
		p.Category = &model.Category{
			ID:   *p.CategoryID,
			Name: categoryName,
			Slug: categorySlug,
		}
	}
	return p, nil
}

// ListProducts applies the supplied filters conjunctively, newest first.
func (q *Queries) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := productBaseQuery + " WHERE 1=1"
	var args []any

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		query += fmt.Sprintf(" AND c.slug = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}
	if filter.FeaturedOnly {
		query += " AND p.is_featured = true"
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	row := q.db.QueryRow(ctx, productBaseQuery+" WHERE p.slug = $1", slug)
	return scanProduct(row)
}

func (q *Queries) GetProductByID(ctx context.Context, id int64) (model.Product, error) {
	row := q.db.QueryRow(ctx, productBaseQuery+" WHERE p.id = $1", id)
	return scanProduct(row)
}

func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.Query(ctx,
		`SELECT id, name, slug, COALESCE(description, ''), COALESCE(image_url, '')
		 FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DecrementProductStock subtracts quantity guarded by the current stock
// level and returns the affected row count. Zero rows means the product is
// missing or the decrement would drive stock negative, so concurrent
// placements of the last units serialize through this update and never
// oversell.
func (q *Queries) DecrementProductStock(ctx context.Context, productID int64, quantity int32) (int64, error) {
	tag, err := q.db.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`,
		productID, quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
