package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/plantshop/internal/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAddItemAccumulates(t *testing.T) {
	store := requireStore(t)
	svc := NewCartService(store)
	ctx := context.Background()

	userID := createTestUser(t)
	product := createTestProduct(t, "10.00", 5)

	cart, err := svc.AddItem(ctx, userID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, int32(2), cart.Items[0].Quantity)

	cart, err = svc.AddItem(ctx, userID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, int32(4), cart.Items[0].Quantity)
	require.True(t, cart.Total.Equal(decimal.RequireFromString("40.00")))

	// A further add would push the summed quantity past stock.
	_, err = svc.AddItem(ctx, userID, product.ID, 2)
	require.Error(t, err)
	require.Equal(t, apperr.InsufficientStockCode, apperr.CodeOf(err))

	// The failed add must not change the stored quantity.
	cart, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int32(4), cart.Items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	store := requireStore(t)
	svc := NewCartService(store)

	userID := createTestUser(t)

	_, err := svc.AddItem(context.Background(), userID, 999999999, 1)
	require.Error(t, err)
	require.Equal(t, apperr.NotFoundCode, apperr.CodeOf(err))
}

func TestAddItemInvalidQuantity(t *testing.T) {
	store := requireStore(t)
	svc := NewCartService(store)

	userID := createTestUser(t)
	product := createTestProduct(t, "10.00", 5)

	_, err := svc.AddItem(context.Background(), userID, product.ID, 0)
	require.Error(t, err)
	require.Equal(t, apperr.InvalidArgumentCode, apperr.CodeOf(err))
}

func TestUpdateItemReplacesQuantity(t *testing.T) {
	store := requireStore(t)
	svc := NewCartService(store)
	ctx := context.Background()

	userID := createTestUser(t)
	product := createTestProduct(t, "10.00", 5)

	cart, err := svc.AddItem(ctx, userID, product.ID, 4)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(ctx, userID, itemID, 1)
	require.NoError(t, err)
	require.Equal(t, int32(1), cart.Items[0].Quantity)

	// Replacement semantics: 5 is allowed even though 4+5 would not be.
	cart, err = svc.UpdateItem(ctx, userID, itemID, 5)
	require.NoError(t, err)
	require.Equal(t, int32(5), cart.Items[0].Quantity)

	_, err = svc.UpdateItem(ctx, userID, itemID, 6)
	require.Error(t, err)
	require.Equal(t, apperr.InsufficientStockCode, apperr.CodeOf(err))
}

func TestUpdateItemOwnership(t *testing.T) {
	store := requireStore(t)
	svc := NewCartService(store)
	ctx := context.Background()

	owner := createTestUser(t)
	other := createTestUser(t)
	product := createTestProduct(t, "10.00", 5)

	cart, err := svc.AddItem(ctx, owner, product.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	// Another user's item id behaves exactly like a missing one.
	_, err = svc.UpdateItem(ctx, other, itemID, 2)
	require.Error(t, err)
	require.Equal(t, apperr.NotFoundCode, apperr.CodeOf(err))
}

func TestRemoveItemOwnership(t *testing.T) {
	store := requireStore(t)
	svc := NewCartService(store)
	ctx := context.Background()

	owner := createTestUser(t)
	other := createTestUser(t)
	product := createTestProduct(t, "10.00", 5)

	cart, err := svc.AddItem(ctx, owner, product.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, err = svc.RemoveItem(ctx, other, itemID)
	require.Error(t, err)
	require.Equal(t, apperr.NotFoundCode, apperr.CodeOf(err))

	cart, err = svc.RemoveItem(ctx, owner, itemID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestClearCartIdempotent(t *testing.T) {
	store := requireStore(t)
	svc := NewCartService(store)
	ctx := context.Background()

	userID := createTestUser(t)
	product := createTestProduct(t, "10.00", 5)

	_, err := svc.AddItem(ctx, userID, product.ID, 2)
	require.NoError(t, err)

	cart, err := svc.ClearCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.True(t, cart.Total.Equal(decimal.Zero))

	// Clearing again succeeds with the same result.
	cart, err = svc.ClearCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
