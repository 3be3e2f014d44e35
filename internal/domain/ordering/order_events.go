package ordering

import (
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated         = "OrderCreated"
	EventTypeOrderCompleted       = "OrderCompleted"
	EventTypeOrderReverted        = "OrderReverted"
	EventTypeOrderCancelled       = "OrderCancelled"
	EventTypeOrderPaymentReceived = "OrderPaymentReceived"
)

// OrderCreatedEvent is raised when a client places a new order
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	ClientID    uuid.UUID `json:"client_id"`
	ClientName  string    `json:"client_name"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ClientID:        order.ClientID,
		ClientName:      order.ClientName,
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// OrderCompletedEvent is raised when every product in the order has been
// delivered in full. Notification layers listen for this to inform the client.
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	ClientID    uuid.UUID       `json:"client_id"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(order *Order) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ClientID:        order.ClientID,
		TotalCost:       order.TotalCost(),
	}
}

// EventType returns the event type name
func (e *OrderCompletedEvent) EventType() string {
	return EventTypeOrderCompleted
}

// OrderRevertedEvent is raised when a completed order is reopened because a
// delivery record was removed
type OrderRevertedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID `json:"order_id"`
	OrderNumber     string    `json:"order_number"`
	PendingDelivery int64     `json:"pending_delivery"`
}

// NewOrderRevertedEvent creates a new OrderRevertedEvent
func NewOrderRevertedEvent(order *Order) *OrderRevertedEvent {
	return &OrderRevertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReverted, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		PendingDelivery: order.TotalPendingDelivery(),
	}
}

// EventType returns the event type name
func (e *OrderRevertedEvent) EventType() string {
	return EventTypeOrderReverted
}

// OrderCancelledEvent is raised when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	ClientID     uuid.UUID `json:"client_id"`
	CancelReason string    `json:"cancel_reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ClientID:        order.ClientID,
		CancelReason:    order.CancelReason,
	}
}

// EventType returns the event type name
func (e *OrderCancelledEvent) EventType() string {
	return EventTypeOrderCancelled
}

// OrderPaymentReceivedEvent is raised when a client payment is applied
type OrderPaymentReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	Amount        decimal.Decimal `json:"amount"`
	ReceivedValue decimal.Decimal `json:"received_value"`
	PayStatus     string          `json:"pay_status"`
}

// NewOrderPaymentReceivedEvent creates a new OrderPaymentReceivedEvent
func NewOrderPaymentReceivedEvent(order *Order, amount decimal.Decimal) *OrderPaymentReceivedEvent {
	return &OrderPaymentReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentReceived, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Amount:          amount,
		ReceivedValue:   order.ReceivedValue,
		PayStatus:       order.PayStatus.String(),
	}
}

// EventType returns the event type name
func (e *OrderPaymentReceivedEvent) EventType() string {
	return EventTypeOrderPaymentReceived
}
