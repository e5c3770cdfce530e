package service

import (
	"context"
	"sync"
	"testing"

	"github.com/RoyceAzure/lab/plantshop/internal/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder(t *testing.T) {
	store := requireStore(t)
	cartSvc := NewCartService(store)
	orderSvc := NewOrderService(store, nil)
	ctx := context.Background()

	userID := createTestUser(t)
	first := createTestProduct(t, "10.00", 5)
	second := createTestProduct(t, "5.50", 1)

	_, err := cartSvc.AddItem(ctx, userID, first.ID, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, userID, second.ID, 1)
	require.NoError(t, err)

	order, err := orderSvc.PlaceOrder(ctx, userID, testShippingInfo())
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	require.NotEmpty(t, order.OrderNumber)
	require.Equal(t, "pending", string(order.Status))
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.50")))

	// Line items carry frozen copies and their subtotals sum to the total.
	require.Len(t, order.Items, 2)
	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.Subtotal)
	}
	require.True(t, sum.Equal(order.TotalAmount))
	require.Equal(t, first.Name, order.Items[0].ProductName)
	require.True(t, order.Items[0].ProductPrice.Equal(first.Price))

	// Stock was decremented.
	updated, err := store.GetProductByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, int32(3), updated.Stock)
	updated, err = store.GetProductByID(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, int32(0), updated.Stock)

	// The cart is empty afterwards.
	cart, err := cartSvc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	store := requireStore(t)
	orderSvc := NewOrderService(store, nil)
	ctx := context.Background()

	userID := createTestUser(t)

	_, err := orderSvc.PlaceOrder(ctx, userID, testShippingInfo())
	require.Error(t, err)
	require.Equal(t, apperr.EmptyCartCode, apperr.CodeOf(err))

	orders, err := orderSvc.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	store := requireStore(t)
	cartSvc := NewCartService(store)
	orderSvc := NewOrderService(store, nil)
	ctx := context.Background()

	userID := createTestUser(t)
	product := createTestProduct(t, "10.00", 2)

	_, err := cartSvc.AddItem(ctx, userID, product.ID, 2)
	require.NoError(t, err)

	// Stock drops below the cart quantity before checkout.
	affected, err := store.DecrementProductStock(ctx, product.ID, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	_, err = orderSvc.PlaceOrder(ctx, userID, testShippingInfo())
	require.Error(t, err)
	require.Equal(t, apperr.InsufficientStockCode, apperr.CodeOf(err))

	// Nothing committed: stock unchanged, cart intact, no order rows.
	updated, err := store.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, int32(1), updated.Stock)

	cart, err := cartSvc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	orders, err := orderSvc.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestPlaceOrderInvalidShipping(t *testing.T) {
	store := requireStore(t)
	orderSvc := NewOrderService(store, nil)

	userID := createTestUser(t)

	info := testShippingInfo()
	info.Phone = ""
	_, err := orderSvc.PlaceOrder(context.Background(), userID, info)
	require.Error(t, err)
	require.Equal(t, apperr.InvalidArgumentCode, apperr.CodeOf(err))
}

func TestPlaceOrderConcurrentLastUnit(t *testing.T) {
	store := requireStore(t)
	cartSvc := NewCartService(store)
	orderSvc := NewOrderService(store, nil)
	ctx := context.Background()

	product := createTestProduct(t, "10.00", 1)

	userA := createTestUser(t)
	userB := createTestUser(t)
	_, err := cartSvc.AddItem(ctx, userA, product.ID, 1)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, userB, product.ID, 1)
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, userID := range []int64{userA, userB} {
		wg.Add(1)
		go func(i int, userID int64) {
			defer wg.Done()
			_, errs[i] = orderSvc.PlaceOrder(ctx, userID, testShippingInfo())
		}(i, userID)
	}
	wg.Wait()

	// Exactly one placement wins the last unit.
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.Equal(t, apperr.InsufficientStockCode, apperr.CodeOf(err))
		}
	}
	require.Equal(t, 1, succeeded)

	updated, err := store.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, int32(0), updated.Stock)
}

func TestGetOrderOwnership(t *testing.T) {
	store := requireStore(t)
	cartSvc := NewCartService(store)
	orderSvc := NewOrderService(store, nil)
	ctx := context.Background()

	owner := createTestUser(t)
	other := createTestUser(t)
	product := createTestProduct(t, "10.00", 5)

	_, err := cartSvc.AddItem(ctx, owner, product.ID, 1)
	require.NoError(t, err)
	placed, err := orderSvc.PlaceOrder(ctx, owner, testShippingInfo())
	require.NoError(t, err)

	_, err = orderSvc.GetOrder(ctx, other, placed.ID)
	require.Error(t, err)
	require.Equal(t, apperr.NotFoundCode, apperr.CodeOf(err))

	got, err := orderSvc.GetOrder(ctx, owner, placed.ID)
	require.NoError(t, err)
	require.Equal(t, placed.OrderNumber, got.OrderNumber)
	require.Len(t, got.Items, 1)
}

func TestListOrdersNewestFirst(t *testing.T) {
	store := requireStore(t)
	cartSvc := NewCartService(store)
	orderSvc := NewOrderService(store, nil)
	ctx := context.Background()

	userID := createTestUser(t)
	product := createTestProduct(t, "10.00", 10)

	var numbers []string
	for i := 0; i < 2; i++ {
		_, err := cartSvc.AddItem(ctx, userID, product.ID, 1)
		require.NoError(t, err)
		order, err := orderSvc.PlaceOrder(ctx, userID, testShippingInfo())
		require.NoError(t, err)
		numbers = append(numbers, order.OrderNumber)
	}

	orders, err := orderSvc.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, numbers[1], orders[0].OrderNumber)
	require.Equal(t, numbers[0], orders[1].OrderNumber)
}
