package db

import (
	"context"

	"github.com/shopspring/decimal"
)

type CreateCategoryParams struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
}

type CreateProductParams struct {
	CategoryID    *int64
	Name          string
	Slug          string
	Description   string
	Price         decimal.Decimal
	ImageURL      string
	Stock         int32
	IsFeatured    bool
	BotanicalName string
	CareLevel     string
	Sunlight      string
	WaterNeeds    string
	Height        string
}

// CreateCategoryIfNotExists inserts the category unless its slug is taken and
// returns the id of whichever row ends up backing the slug, so seeding stays
// idempotent.
func (q *Queries) CreateCategoryIfNotExists(ctx context.Context, arg CreateCategoryParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx,
		`WITH ins AS (
			INSERT INTO categories (name, slug, description, image_url)
			VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
			ON CONFLICT (slug) DO NOTHING
			RETURNING id
		)
		SELECT id FROM ins
		UNION ALL
		SELECT id FROM categories WHERE slug = $2
		LIMIT 1`,
		arg.Name, arg.Slug, arg.Description, arg.ImageURL).Scan(&id)
	return id, err
}

func (q *Queries) CreateProductIfNotExists(ctx context.Context, arg CreateProductParams) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO products (category_id, name, slug, description, price, image_url,
			stock, is_featured, botanical_name, care_level, sunlight, water_needs, height)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''),
			$7, $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''))
		 ON CONFLICT (slug) DO NOTHING`,
		arg.CategoryID, arg.Name, arg.Slug, arg.Description, arg.Price, arg.ImageURL,
		arg.Stock, arg.IsFeatured, arg.BotanicalName, arg.CareLevel, arg.Sunlight,
		arg.WaterNeeds, arg.Height)
	return err
}
