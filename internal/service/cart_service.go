package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/plantshop/internal/apperr"
	"github.com/RoyceAzure/lab/plantshop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/jackc/pgx/v5"
)

type ICartService interface {
	GetCart(ctx context.Context, userID int64) (model.Cart, error)
	AddItem(ctx context.Context, userID, productID int64, quantity int32) (model.Cart, error)
	UpdateItem(ctx context.Context, userID, cartItemID int64, quantity int32) (model.Cart, error)
	RemoveItem(ctx context.Context, userID, cartItemID int64) (model.Cart, error)
	ClearCart(ctx context.Context, userID int64) (model.Cart, error)
}

// CartService manages the per-user cart. Every mutation returns the whole
// recomputed cart so clients re-render from an authoritative snapshot
// instead of patching local state.
type CartService struct {
	store db.IStore
}

func NewCartService(store db.IStore) *CartService {
	if store == nil {
		panic("store cannot be nil")
	}
	return &CartService{store: store}
}

func (s *CartService) GetCart(ctx context.Context, userID int64) (model.Cart, error) {
	return loadCart(ctx, s.store, userID)
}

// AddItem accumulates: adding a product already in the cart sums the
// quantities, and the stock ceiling applies to the summed quantity.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int32) (model.Cart, error) {
	if quantity < 1 {
		return model.Cart{}, apperr.InvalidArgument("Quantity must be at least 1")
	}

	err := s.store.ExecTx(ctx, func(q *db.Queries) error {
		product, err := q.GetProductByID(ctx, productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("Product not found")
			}
			return err
		}

		existing, err := q.GetCartItemByProduct(ctx, userID, productID)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			if product.Stock < quantity {
				return apperr.InsufficientStock(product.Name, product.Stock, quantity)
			}
			return q.InsertCartItem(ctx, userID, productID, quantity)
		}

		newQuantity := existing.Quantity + quantity
		if product.Stock < newQuantity {
			return apperr.InsufficientStock(product.Name, product.Stock, newQuantity)
		}
		return q.UpdateCartItemQuantity(ctx, existing.ID, newQuantity)
	})
	if err != nil {
		return model.Cart{}, err
	}

	return loadCart(ctx, s.store, userID)
}

// UpdateItem replaces the stored quantity.
func (s *CartService) UpdateItem(ctx context.Context, userID, cartItemID int64, quantity int32) (model.Cart, error) {
	if quantity < 1 {
		return model.Cart{}, apperr.InvalidArgument("Quantity must be at least 1")
	}

	err := s.store.ExecTx(ctx, func(q *db.Queries) error {
		item, err := q.GetCartItem(ctx, cartItemID, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("Cart item not found")
			}
			return err
		}

		product, err := q.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if product.Stock < quantity {
			return apperr.InsufficientStock(product.Name, product.Stock, quantity)
		}

		return q.UpdateCartItemQuantity(ctx, item.ID, quantity)
	})
	if err != nil {
		return model.Cart{}, err
	}

	return loadCart(ctx, s.store, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, cartItemID int64) (model.Cart, error) {
	affected, err := s.store.DeleteCartItem(ctx, cartItemID, userID)
	if err != nil {
		return model.Cart{}, err
	}
	if affected == 0 {
		return model.Cart{}, apperr.NotFound("Cart item not found")
	}

	return loadCart(ctx, s.store, userID)
}

// ClearCart is idempotent: clearing an empty cart succeeds and returns an
// empty cart.
func (s *CartService) ClearCart(ctx context.Context, userID int64) (model.Cart, error) {
	if err := s.store.ClearCart(ctx, userID); err != nil {
		return model.Cart{}, err
	}
	return model.BuildCart(nil), nil
}

func loadCart(ctx context.Context, q db.Querier, userID int64) (model.Cart, error) {
	lines, err := q.ListCartLines(ctx, userID)
	if err != nil {
		return model.Cart{}, err
	}
	return model.BuildCart(lines), nil
}

var _ ICartService = (*CartService)(nil)
