package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/plantshop/internal/apperr"
	"github.com/RoyceAzure/lab/plantshop/internal/infra/producer"
	"github.com/RoyceAzure/lab/plantshop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// maxPlaceOrderAttempts bounds retries on an order-number collision.
const maxPlaceOrderAttempts = 3

type IOrderService interface {
	PlaceOrder(ctx context.Context, userID int64, info model.ShippingInfo) (*model.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]model.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*model.Order, error)
}

type OrderService struct {
	store         db.IStore
	eventProducer producer.IOrderEventProducer
}

func NewOrderService(store db.IStore, eventProducer producer.IOrderEventProducer) *OrderService {
	if store == nil {
		panic("store cannot be nil")
	}
	if eventProducer == nil {
		eventProducer = producer.NopOrderEventProducer{}
	}
	return &OrderService{store: store, eventProducer: eventProducer}
}

// PlaceOrder converts the user's cart into an immutable order inside one
// transaction: stock validation, total computation from live prices, order
// and frozen order-item inserts, guarded stock decrement, cart clear. Any
// failure rolls the whole thing back. An order-number collision retries with
// a fresh number before surfacing as a Conflict.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, info model.ShippingInfo) (*model.Order, error) {
	if err := validateShippingInfo(info); err != nil {
		return nil, err
	}

	var order *model.Order
	var err error
	for attempt := 0; attempt < maxPlaceOrderAttempts; attempt++ {
		order, err = s.placeOrderTx(ctx, userID, info)
		if err != nil && db.IsUniqueViolation(err) {
			continue
		}
		break
	}
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.ConflictCode, err, "Order number conflict, please retry")
		}
		return nil, err
	}

	// Best effort: a publish failure must not fail an already committed order.
	if pubErr := s.eventProducer.PublishOrderCreated(ctx, *order); pubErr != nil {
		log.Error().Err(pubErr).
			Str("order_number", order.OrderNumber).
			Msg("failed to publish order created event")
	}

	return order, nil
}

func (s *OrderService) placeOrderTx(ctx context.Context, userID int64, info model.ShippingInfo) (*model.Order, error) {
	var order model.Order

	err := s.store.ExecTx(ctx, func(q *db.Queries) error {
		lines, err := q.ListCartLines(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperr.EmptyCart()
		}

		totalAmount := decimal.Zero
		for _, line := range lines {
			if line.Stock < line.Quantity {
				return apperr.InsufficientStock(line.Name, line.Stock, line.Quantity)
			}
			totalAmount = totalAmount.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order, err = q.CreateOrder(ctx, db.CreateOrderParams{
			UserID:             userID,
			OrderNumber:        generateOrderNumber(),
			TotalAmount:        totalAmount,
			ShippingAddress:    info.Address,
			ShippingCity:       info.City,
			ShippingPostalCode: info.PostalCode,
			Phone:              info.Phone,
			Notes:              info.Notes,
			PaymentMethod:      model.PaymentMethodCashOnDelivery,
			Status:             model.OrderStatusPending,
		})
		if err != nil {
			return err
		}

		for _, line := range lines {
			item, err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				OrderID:      order.ID,
				ProductID:    line.ProductID,
				ProductName:  line.Name,
				ProductPrice: line.Price,
				Quantity:     line.Quantity,
				Subtotal:     line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
			})
			if err != nil {
				return err
			}
			order.Items = append(order.Items, item)

			// The guarded decrement is the authoritative oversell check:
			// concurrent placements serialize on the product row, and the
			// loser sees zero affected rows here.
			affected, err := q.DecrementProductStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				product, err := q.GetProductByID(ctx, line.ProductID)
				if err != nil {
					return err
				}
				return apperr.InsufficientStock(product.Name, product.Stock, line.Quantity)
			}
		}

		return q.ClearCart(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.store.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := s.store.GetOrderForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}

	items, err := s.store.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func validateShippingInfo(info model.ShippingInfo) error {
	switch {
	case strings.TrimSpace(info.Address) == "":
		return apperr.InvalidArgument("Shipping address is required")
	case strings.TrimSpace(info.City) == "":
		return apperr.InvalidArgument("Shipping city is required")
	case strings.TrimSpace(info.PostalCode) == "":
		return apperr.InvalidArgument("Shipping postal code is required")
	case strings.TrimSpace(info.Phone) == "":
		return apperr.InvalidArgument("Phone is required")
	}
	return nil
}

// generateOrderNumber builds a human-readable number from a UTC timestamp
// plus random entropy. Uniqueness is still enforced by the database
// constraint; a collision retries in PlaceOrder.
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102150405"), suffix)
}

var _ IOrderService = (*OrderService)(nil)
