package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/plantshop/internal/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	OrderCreatedEventName EventType = "OrderCreated"
)

// OrderCreatedEvent is published after a placement commits, for downstream
// consumers (notification, fulfilment, analytics).
type OrderCreatedEvent struct {
	EventID     string          `json:"eventId"`
	EventType   EventType       `json:"eventType"`
	OrderID     int64           `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	UserID      int64           `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type IOrderEventProducer interface {
	PublishOrderCreated(ctx context.Context, order model.Order) error
	Close() error
}

// KafkaOrderEventProducer keys messages by user id so one user's order
// events stay ordered within a partition.
type KafkaOrderEventProducer struct {
	writer *kafka.Writer
}

func NewKafkaOrderEventProducer(brokers []string, topic string) *KafkaOrderEventProducer {
	return &KafkaOrderEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *KafkaOrderEventProducer) PublishOrderCreated(ctx context.Context, order model.Order) error {
	var userID int64
	if order.UserID != nil {
		userID = *order.UserID
	}

	event := OrderCreatedEvent{
		EventID:     uuid.New().String(),
		EventType:   OrderCreatedEventName,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      userID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", userID)),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(OrderCreatedEventName),
			},
		},
	})
}

func (p *KafkaOrderEventProducer) Close() error {
	return p.writer.Close()
}

var _ IOrderEventProducer = (*KafkaOrderEventProducer)(nil)

// NopOrderEventProducer is used when no broker is configured.
type NopOrderEventProducer struct{}

func (NopOrderEventProducer) PublishOrderCreated(ctx context.Context, order model.Order) error {
	return nil
}

func (NopOrderEventProducer) Close() error {
	return nil
}

var _ IOrderEventProducer = NopOrderEventProducer{}
