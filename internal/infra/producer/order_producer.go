package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SecretJA/Badminton-eweb/internal/domain/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type OrderEventType string

const (
	OrderCreatedEventName       OrderEventType = "order_created"
	OrderCancelledEventName     OrderEventType = "order_cancelled"
	OrderStatusUpdatedEventName OrderEventType = "order_status_updated"
	OrderPaidEventName          OrderEventType = "order_paid"
	// StockInconsistencyEventName 訂單已建立但庫存沒有成功提交，需要人工對帳
	StockInconsistencyEventName OrderEventType = "stock_inconsistency"
)

type OrderEvent struct {
	EventID    string         `json:"event_id"`
	EventType  OrderEventType `json:"event_type"`
	OrderID    string         `json:"order_id"`
	UserID     string         `json:"user_id"`
	Status     string         `json:"status,omitempty"`
	TotalPrice string         `json:"total_price,omitempty"`
	ProductIDs []string       `json:"product_ids,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// OrderProducer 發佈訂單生命週期事件給下游消費者（通知、對帳、報表）
type OrderProducer struct {
	writer *kafka.Writer
}

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &OrderProducer{writer: writer}
}

func (p *OrderProducer) PublishOrderCreated(ctx context.Context, order *model.Order) error {
	return p.publish(ctx, p.newEvent(OrderCreatedEventName, order))
}

func (p *OrderProducer) PublishOrderCancelled(ctx context.Context, order *model.Order) error {
	evt := p.newEvent(OrderCancelledEventName, order)
	evt.Reason = order.CancelReason
	return p.publish(ctx, evt)
}

func (p *OrderProducer) PublishOrderStatusUpdated(ctx context.Context, order *model.Order) error {
	return p.publish(ctx, p.newEvent(OrderStatusUpdatedEventName, order))
}

func (p *OrderProducer) PublishOrderPaid(ctx context.Context, order *model.Order) error {
	return p.publish(ctx, p.newEvent(OrderPaidEventName, order))
}

// PublishStockInconsistency 部分失敗且補償也失敗時的警報事件
func (p *OrderProducer) PublishStockInconsistency(ctx context.Context, orderID string, productIDs []string, reason string) error {
	return p.publish(ctx, OrderEvent{
		EventID:    uuid.New().String(),
		EventType:  StockInconsistencyEventName,
		OrderID:    orderID,
		ProductIDs: productIDs,
		Reason:     reason,
		CreatedAt:  time.Now().UTC(),
	})
}

func (p *OrderProducer) newEvent(eventType OrderEventType, order *model.Order) OrderEvent {
	productIDs := make([]string, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		productIDs = append(productIDs, item.ProductID)
	}
	return OrderEvent{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice.String(),
		ProductIDs: productIDs,
		CreatedAt:  time.Now().UTC(),
	}
}

func (p *OrderProducer) publish(ctx context.Context, evt OrderEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order event %s: %w", evt.EventType, err)
	}
	return nil
}

func (p *OrderProducer) Close() error {
	return p.writer.Close()
}
