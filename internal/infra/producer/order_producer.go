package producer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer is closed")

type OrderEventType string

var (
	OrderEventCreated       OrderEventType = "order_created"
	OrderEventStatusChanged OrderEventType = "order_status_changed"
)

type OrderEvent struct {
	EventType OrderEventType    `json:"event_type"`
	OrderID   uuid.UUID         `json:"order_id"`
	UserID    uuid.UUID         `json:"user_id"`
	Status    model.OrderStatus `json:"status"`
	Amount    string            `json:"amount"`
	EventTime time.Time         `json:"event_time"`
}

type OrderProducer struct {
	producer Producer
}

func NewOrderProducer(producer Producer) *OrderProducer {
	return &OrderProducer{producer: producer}
}

func (p *OrderProducer) OrderCreated(ctx context.Context, order *model.Order) error {
	msg, err := p.convertToMessage(OrderEventCreated, order)
	if err != nil {
		return err
	}

	return p.producer.Produce(ctx, []kafka.Message{msg})
}

func (p *OrderProducer) OrderStatusChanged(ctx context.Context, order *model.Order) error {
	msg, err := p.convertToMessage(OrderEventStatusChanged, order)
	if err != nil {
		return err
	}

	return p.producer.Produce(ctx, []kafka.Message{msg})
}

func (p *OrderProducer) convertToMessage(eventType OrderEventType, order *model.Order) (kafka.Message, error) {
	event := OrderEvent{
		EventType: eventType,
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		Status:    order.Status,
		Amount:    order.Amount.String(),
		EventTime: time.Now().UTC(),
	}
	eventValue, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	msg := kafka.Message{
		Key:   []byte(order.OrderID.String()),
		Value: eventValue,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(eventType),
			},
		},
	}
	return msg, nil
}

func (p *OrderProducer) Close() error {
	return p.producer.Close()
}
