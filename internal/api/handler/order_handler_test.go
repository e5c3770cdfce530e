package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/plantshop/internal/apperr"
	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubOrderService struct {
	order  *model.Order
	orders []model.Order
	err    error

	gotUserID  int64
	gotOrderID int64
	gotInfo    model.ShippingInfo
}

func (s *stubOrderService) PlaceOrder(ctx context.Context, userID int64, info model.ShippingInfo) (*model.Order, error) {
	s.gotUserID, s.gotInfo = userID, info
	return s.order, s.err
}

func (s *stubOrderService) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	s.gotUserID = userID
	return s.orders, s.err
}

func (s *stubOrderService) GetOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	s.gotUserID, s.gotOrderID = userID, orderID
	return s.order, s.err
}

func orderTestRouter(svc *stubOrderService) *chi.Mux {
	h := NewOrderHandler(svc)
	r := chi.NewRouter()
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders", h.ListOrders)
	r.Get("/orders/{id}", h.GetOrder)
	return r
}

func testOrder() *model.Order {
	productID := int64(10)
	return &model.Order{
		ID:                 5,
		OrderNumber:        "ORD-20260830120000-ABCDEF12",
		Status:             model.OrderStatusPending,
		TotalAmount:        decimal.RequireFromString("25.50"),
		ShippingAddress:    "1 Garden Lane",
		ShippingCity:       "Portland",
		ShippingPostalCode: "97201",
		Phone:              "555-0100",
		PaymentMethod:      model.PaymentMethodCashOnDelivery,
		CreatedAt:          time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{
				ID:           1,
				OrderID:      5,
				ProductID:    &productID,
				ProductName:  "Monstera Deliciosa",
				ProductPrice: decimal.RequireFromString("10.00"),
				Quantity:     2,
				Subtotal:     decimal.RequireFromString("20.00"),
			},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	svc := &stubOrderService{order: testOrder()}
	router := orderTestRouter(svc)

	body := []byte(`{"shippingAddress":"1 Garden Lane","shippingCity":"Portland","shippingPostalCode":"97201","phone":"555-0100"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/orders", body, 42))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, int64(42), svc.gotUserID)
	require.Equal(t, "1 Garden Lane", svc.gotInfo.Address)
	require.Equal(t, "97201", svc.gotInfo.PostalCode)

	var resp struct {
		OrderNumber   string  `json:"orderNumber"`
		TotalAmount   float64 `json:"totalAmount"`
		Status        string  `json:"status"`
		PaymentMethod string  `json:"paymentMethod"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ORD-20260830120000-ABCDEF12", resp.OrderNumber)
	require.Equal(t, 25.5, resp.TotalAmount)
	require.Equal(t, "pending", resp.Status)
	require.Equal(t, "cash_on_delivery", resp.PaymentMethod)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc := &stubOrderService{err: apperr.EmptyCart()}
	router := orderTestRouter(svc)

	body := []byte(`{"shippingAddress":"1 Garden Lane","shippingCity":"Portland","shippingPostalCode":"97201","phone":"555-0100"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/orders", body, 42))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"Cart is empty"}`, rec.Body.String())
}

func TestCreateOrderUnauthenticated(t *testing.T) {
	router := orderTestRouter(&stubOrderService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListOrders(t *testing.T) {
	svc := &stubOrderService{orders: []model.Order{*testOrder()}}
	router := orderTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/orders", nil, 42))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	// Summary view carries no line items.
	require.NotContains(t, resp[0], "items")
}

func TestGetOrderIncludesItems(t *testing.T) {
	svc := &stubOrderService{order: testOrder()}
	router := orderTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/orders/5", nil, 42))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(5), svc.gotOrderID)

	var resp struct {
		Items []struct {
			ProductName  string  `json:"productName"`
			ProductPrice float64 `json:"productPrice"`
			Quantity     int32   `json:"quantity"`
			Subtotal     float64 `json:"subtotal"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	require.Equal(t, "Monstera Deliciosa", resp.Items[0].ProductName)
	require.Equal(t, 20.0, resp.Items[0].Subtotal)
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &stubOrderService{err: apperr.NotFound("Order not found")}
	router := orderTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/orders/99", nil, 42))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"Order not found"}`, rec.Body.String())
}
