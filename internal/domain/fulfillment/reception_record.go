package fulfillment

import (
	"time"

	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReceptionRecord represents one logistics-reception event: purchased goods
// arriving at the warehouse, optionally grouped into a package.
type ReceptionRecord struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount    int64      `gorm:"not null"` // Units received in this event
	PackageID *uuid.UUID `gorm:"type:uuid;index"`
	Remark    string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ReceptionRecord) TableName() string {
	return "reception_records"
}

// NewReceptionRecord creates a new reception record
func NewReceptionRecord(productID uuid.UUID, amount int64, packageID *uuid.UUID) (*ReceptionRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Reception amount must be positive")
	}

	record := &ReceptionRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Amount:            amount,
		PackageID:         packageID,
	}

	record.AddDomainEvent(NewGoodsReceivedEvent(record))

	return record, nil
}

// SetRemark sets the remark for the record
func (r *ReceptionRecord) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
}
