package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	ImageURL    string
}

type Product struct {
	ID            int64
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
	Category      *Category
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductFilter narrows a catalog listing. All supplied filters apply
// conjunctively; Search matches name or description case-insensitively.
type ProductFilter struct {
	CategorySlug string
	Search       string
	FeaturedOnly bool
}
