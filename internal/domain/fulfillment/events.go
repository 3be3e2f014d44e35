package fulfillment

import (
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypePurchaseRecord  = "PurchaseRecord"
	AggregateTypeReceptionRecord = "ReceptionRecord"
	AggregateTypeDeliveryRecord  = "DeliveryRecord"
	AggregateTypeDeliveryReceipt = "DeliveryReceipt"
)

// Event type constants
const (
	EventTypePurchaseRecorded       = "PurchaseRecorded"
	EventTypePurchaseRefunded       = "PurchaseRefunded"
	EventTypeGoodsReceived          = "GoodsReceived"
	EventTypeGoodsDelivered         = "GoodsDelivered"
	EventTypeReceiptPaymentReceived = "ReceiptPaymentReceived"
)

// PurchaseRecordedEvent is raised when a buyer records a purchase
type PurchaseRecordedEvent struct {
	shared.BaseDomainEvent
	RecordID  uuid.UUID       `json:"record_id"`
	ProductID uuid.UUID       `json:"product_id"`
	BuyerID   uuid.UUID       `json:"buyer_id"`
	ShopName  string          `json:"shop_name"`
	Amount    int64           `json:"amount"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// NewPurchaseRecordedEvent creates a new PurchaseRecordedEvent
func NewPurchaseRecordedEvent(record *PurchaseRecord) *PurchaseRecordedEvent {
	return &PurchaseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseRecorded, AggregateTypePurchaseRecord, record.ID),
		RecordID:        record.ID,
		ProductID:       record.ProductID,
		BuyerID:         record.BuyerID,
		ShopName:        record.ShopName,
		Amount:          record.Amount,
		UnitCost:        record.UnitCost,
	}
}

// EventType returns the event type name
func (e *PurchaseRecordedEvent) EventType() string {
	return EventTypePurchaseRecorded
}

// PurchaseRefundedEvent is raised when purchased units are refunded
type PurchaseRefundedEvent struct {
	shared.BaseDomainEvent
	RecordID       uuid.UUID `json:"record_id"`
	ProductID      uuid.UUID `json:"product_id"`
	RefundQuantity int64     `json:"refund_quantity"`
	RefundAmount   int64     `json:"refund_amount"` // Total units refunded so far
	IsRefunded     bool      `json:"is_refunded"`
}

// NewPurchaseRefundedEvent creates a new PurchaseRefundedEvent
func NewPurchaseRefundedEvent(record *PurchaseRecord, quantity int64) *PurchaseRefundedEvent {
	return &PurchaseRefundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseRefunded, AggregateTypePurchaseRecord, record.ID),
		RecordID:        record.ID,
		ProductID:       record.ProductID,
		RefundQuantity:  quantity,
		RefundAmount:    record.RefundAmount,
		IsRefunded:      record.IsRefunded,
	}
}

// EventType returns the event type name
func (e *PurchaseRefundedEvent) EventType() string {
	return EventTypePurchaseRefunded
}

// GoodsReceivedEvent is raised when goods arrive at the warehouse
type GoodsReceivedEvent struct {
	shared.BaseDomainEvent
	RecordID  uuid.UUID  `json:"record_id"`
	ProductID uuid.UUID  `json:"product_id"`
	Amount    int64      `json:"amount"`
	PackageID *uuid.UUID `json:"package_id,omitempty"`
}

// NewGoodsReceivedEvent creates a new GoodsReceivedEvent
func NewGoodsReceivedEvent(record *ReceptionRecord) *GoodsReceivedEvent {
	return &GoodsReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGoodsReceived, AggregateTypeReceptionRecord, record.ID),
		RecordID:        record.ID,
		ProductID:       record.ProductID,
		Amount:          record.Amount,
		PackageID:       record.PackageID,
	}
}

// EventType returns the event type name
func (e *GoodsReceivedEvent) EventType() string {
	return EventTypeGoodsReceived
}

// GoodsDeliveredEvent is raised when goods are handed over to the client
type GoodsDeliveredEvent struct {
	shared.BaseDomainEvent
	RecordID  uuid.UUID  `json:"record_id"`
	ProductID uuid.UUID  `json:"product_id"`
	Amount    int64      `json:"amount"`
	ReceiptID *uuid.UUID `json:"receipt_id,omitempty"`
}

// NewGoodsDeliveredEvent creates a new GoodsDeliveredEvent
func NewGoodsDeliveredEvent(record *DeliveryRecord) *GoodsDeliveredEvent {
	return &GoodsDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGoodsDelivered, AggregateTypeDeliveryRecord, record.ID),
		RecordID:        record.ID,
		ProductID:       record.ProductID,
		Amount:          record.Amount,
		ReceiptID:       record.ReceiptID,
	}
}

// EventType returns the event type name
func (e *GoodsDeliveredEvent) EventType() string {
	return EventTypeGoodsDelivered
}

// ReceiptPaymentReceivedEvent is raised when a payment lands on a delivery receipt
type ReceiptPaymentReceivedEvent struct {
	shared.BaseDomainEvent
	ReceiptID     uuid.UUID       `json:"receipt_id"`
	ReceiptNumber string          `json:"receipt_number"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PayStatus     string          `json:"pay_status"`
}

// NewReceiptPaymentReceivedEvent creates a new ReceiptPaymentReceivedEvent
func NewReceiptPaymentReceivedEvent(receipt *DeliveryReceipt, amount decimal.Decimal) *ReceiptPaymentReceivedEvent {
	return &ReceiptPaymentReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptPaymentReceived, AggregateTypeDeliveryReceipt, receipt.ID),
		ReceiptID:       receipt.ID,
		ReceiptNumber:   receipt.ReceiptNumber,
		Amount:          amount,
		PaymentAmount:   receipt.PaymentAmount,
		PayStatus:       receipt.PayStatus.String(),
	}
}

// EventType returns the event type name
func (e *ReceiptPaymentReceivedEvent) EventType() string {
	return EventTypeReceiptPaymentReceived
}
