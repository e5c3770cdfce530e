package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/plantshop/internal/apperr"
	"github.com/RoyceAzure/lab/plantshop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/jackc/pgx/v5"
)

type ICatalogService interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// CatalogService serves read-only product and category queries. No caching:
// every read hits the store so stock and price are never stale.
type CatalogService struct {
	store db.IStore
}

func NewCatalogService(store db.IStore) *CatalogService {
	if store == nil {
		panic("store cannot be nil")
	}
	return &CatalogService{store: store}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return s.store.ListProducts(ctx, filter)
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.store.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	return &product, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.store.ListCategories(ctx)
}

var _ ICatalogService = (*CatalogService)(nil)
