package fulfillment

import (
	"fmt"
	"time"

	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/crossbuy/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseRecord represents one purchasing event of a buyer against a product.
// Records are append-only except for refund metadata; the quantity ledger
// derives a product's purchased total by resumming all of its records.
type PurchaseRecord struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopName     string          `gorm:"type:varchar(200)"`
	Amount       int64           `gorm:"not null"`           // Units bought in this event
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsRefunded   bool            `gorm:"not null;default:false"` // True once the full amount is refunded
	RefundAmount int64           `gorm:"not null;default:0"`     // Units refunded so far
	Remark       string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseRecord) TableName() string {
	return "purchase_records"
}

// NewPurchaseRecord creates a new purchase record
func NewPurchaseRecord(productID, buyerID uuid.UUID, shopName string, amount int64, unitCost valueobject.Money) (*PurchaseRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Purchase amount must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	record := &PurchaseRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		BuyerID:           buyerID,
		ShopName:          shopName,
		Amount:            amount,
		UnitCost:          unitCost.Amount(),
	}

	record.AddDomainEvent(NewPurchaseRecordedEvent(record))

	return record, nil
}

// SetRemark sets the remark for the record
func (r *PurchaseRecord) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
}

// EffectiveAmount returns the units that still count as purchased.
// A refunded unit no longer counts toward the product's purchased total.
func (r *PurchaseRecord) EffectiveAmount() int64 {
	if r.IsRefunded {
		return 0
	}
	return r.Amount - r.RefundAmount
}

// RefundableAmount returns the units that can still be refunded
func (r *PurchaseRecord) RefundableAmount() int64 {
	if r.IsRefunded {
		return 0
	}
	return r.Amount - r.RefundAmount
}

// Refund marks the given number of units as refunded. Once the full amount is
// refunded the record is flagged and counts zero toward the ledger.
func (r *PurchaseRecord) Refund(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Refund quantity must be positive")
	}
	if r.IsRefunded {
		return shared.NewDomainError("ALREADY_REFUNDED", "Record is already fully refunded")
	}
	if quantity > r.RefundableAmount() {
		return shared.NewDomainError("QUANTITY_EXCEEDED", fmt.Sprintf("Cannot refund %d, only %d refundable", quantity, r.RefundableAmount()))
	}

	r.RefundAmount += quantity
	if r.RefundAmount >= r.Amount {
		r.IsRefunded = true
	}
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewPurchaseRefundedEvent(r, quantity))

	return nil
}

// RefundAll refunds every remaining unit on the record
func (r *PurchaseRecord) RefundAll() error {
	return r.Refund(r.RefundableAmount())
}

// GetUnitCostMoney returns the unit cost as Money value object
func (r *PurchaseRecord) GetUnitCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(r.UnitCost)
}
