package fulfillment

import (
	"time"

	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryRecord represents one handoff-to-client event, optionally tied to a
// delivery receipt that carries the payment for the delivery itself.
type DeliveryRecord struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReceiptID *uuid.UUID `gorm:"type:uuid;index"`
	Amount    int64      `gorm:"not null"` // Units handed over in this event
	Remark    string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DeliveryRecord) TableName() string {
	return "delivery_records"
}

// NewDeliveryRecord creates a new delivery record
func NewDeliveryRecord(productID uuid.UUID, amount int64, receiptID *uuid.UUID) (*DeliveryRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Delivery amount must be positive")
	}

	record := &DeliveryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Amount:            amount,
		ReceiptID:         receiptID,
	}

	record.AddDomainEvent(NewGoodsDeliveredEvent(record))

	return record, nil
}

// SetRemark sets the remark for the record
func (r *DeliveryRecord) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
}
