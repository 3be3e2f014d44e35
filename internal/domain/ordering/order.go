package ordering

import (
	"fmt"
	"time"

	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/crossbuy/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a client order
type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "CREATED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusCreated:
		return target == OrderStatusProcessing || target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted:
		// Completion is revertible: deleting a delivery record reopens the order
		return target == OrderStatusProcessing
	case OrderStatusCancelled:
		return false // Terminal state
	}
	return false
}

// Order represents a client's aggregate request containing one or more products.
// It rolls product-level fulfillment up into order completion and tracks the
// client's accumulated payments against the computed total cost.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	ClientName    string              `gorm:"type:varchar(200);not null"`
	Products      []Product           `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	Status        OrderStatus         `gorm:"type:varchar(20);not null;default:'CREATED'"`
	PayStatus     valueobject.PayStatus `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	ReceivedValue decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"` // Accumulated client payments, never overwritten
	Remark        string              `gorm:"type:text"`
	CompletedAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order for a client
func NewOrder(orderNumber string, clientID uuid.UUID, clientName string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		ClientID:          clientID,
		ClientName:        clientName,
		Products:          make([]Product, 0),
		Status:            OrderStatusCreated,
		PayStatus:         valueobject.PayStatusUnpaid,
		ReceivedValue:     decimal.Zero,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddProduct adds a new product line to the order
// Only allowed before fulfillment starts
func (o *Order) AddProduct(name string, amountRequested int64, unitPrice, shippingCost valueobject.Money) (*Product, error) {
	if o.Status != OrderStatusCreated {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add products once fulfillment has started")
	}

	product, err := NewProduct(o.ID, name, amountRequested, unitPrice, shippingCost)
	if err != nil {
		return nil, err
	}

	o.Products = append(o.Products, *product)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return &o.Products[len(o.Products)-1], nil
}

// SetRemark sets the order remark
func (o *Order) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// StartProcessing moves the order from CREATED to PROCESSING
// Invoked when the first fulfillment activity is recorded against the order
func (o *Order) StartProcessing() error {
	if !o.Status.CanTransitionTo(OrderStatusProcessing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start processing order in %s status", o.Status))
	}

	o.Status = OrderStatusProcessing
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsFullyDelivered returns true if every product has been delivered in full.
// An order where nothing has been purchased yet is never considered fully
// delivered, so an empty or untouched order cannot complete vacuously.
func (o *Order) IsFullyDelivered() bool {
	anyPurchased := false
	for _, product := range o.Products {
		if product.AmountPurchased > 0 {
			anyPurchased = true
		}
		if !product.IsFullyDelivered() {
			return false
		}
	}
	return anyPurchased
}

// Complete marks the order as completed
// Requires every product to be fully delivered
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}
	if !o.IsFullyDelivered() {
		return shared.NewDomainError("NOT_DELIVERED", "Cannot complete order with pending deliveries")
	}

	now := time.Now()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCompletedEvent(o))

	return nil
}

// RevertToProcessing reopens a completed order after a delivery record was
// removed and full delivery no longer holds
func (o *Order) RevertToProcessing() error {
	if o.Status != OrderStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot revert order in %s status", o.Status))
	}

	o.Status = OrderStatusProcessing
	o.CompletedAt = nil
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderRevertedEvent(o))

	return nil
}

// Cancel cancels the order
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// TotalCost returns the sum of all product total costs
func (o *Order) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, product := range o.Products {
		total = total.Add(product.TotalCost)
	}
	return total
}

// AddPayment accumulates a client payment and reclassifies the pay status.
// Non-positive amounts are ignored without error so that retries stay safe;
// the returned bool reports whether the payment was applied. Payments always
// accumulate - the received value is never overwritten.
func (o *Order) AddPayment(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}

	o.ReceivedValue = o.ReceivedValue.Add(amount)
	o.ReclassifyPayStatus()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaymentReceivedEvent(o, amount))

	return true
}

// ReclassifyPayStatus recomputes the pay status from the accumulated received
// value and the current total cost
func (o *Order) ReclassifyPayStatus() {
	o.PayStatus = valueobject.ClassifyPayment(o.ReceivedValue, o.TotalCost())
}

// GetProduct returns a product by its ID
func (o *Order) GetProduct(productID uuid.UUID) *Product {
	for idx := range o.Products {
		if o.Products[idx].ID == productID {
			return &o.Products[idx]
		}
	}
	return nil
}

// ProductCount returns the number of products in the order
func (o *Order) ProductCount() int {
	return len(o.Products)
}

// TotalPendingDelivery returns the quantity purchased but not yet delivered
// across all products
func (o *Order) TotalPendingDelivery() int64 {
	var total int64
	for _, product := range o.Products {
		total += product.PendingDelivery()
	}
	return total
}

// GetReceivedValueMoney returns the accumulated payments as Money
func (o *Order) GetReceivedValueMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.ReceivedValue)
}

// GetTotalCostMoney returns the total cost as Money
func (o *Order) GetTotalCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalCost())
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsTerminal returns true if no further automatic transitions may occur.
// Cancelled orders are never auto-transitioned in either direction.
func (o *Order) IsTerminal() bool {
	return o.IsCancelled()
}
