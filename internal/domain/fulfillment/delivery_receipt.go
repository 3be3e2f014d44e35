package fulfillment

import (
	"time"

	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/crossbuy/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryReceipt groups delivery records handed to a client in one go and
// tracks the payment collected for the delivery. It shares the payment
// threshold rules with Order.
type DeliveryReceipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	Cost          decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"` // Delivery cost charged to the client
	PaymentAmount decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"` // Accumulated payments
	PayStatus     valueobject.PayStatus `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	Remark        string                `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DeliveryReceipt) TableName() string {
	return "delivery_receipts"
}

// NewDeliveryReceipt creates a new delivery receipt
func NewDeliveryReceipt(receiptNumber string, clientID uuid.UUID, cost valueobject.Money) (*DeliveryReceipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Delivery cost cannot be negative")
	}

	return &DeliveryReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		ClientID:          clientID,
		Cost:              cost.Amount(),
		PaymentAmount:     decimal.Zero,
		PayStatus:         valueobject.ClassifyPayment(decimal.Zero, cost.Amount()),
	}, nil
}

// SetCost updates the delivery cost and reclassifies the pay status
func (d *DeliveryReceipt) SetCost(cost valueobject.Money) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Delivery cost cannot be negative")
	}

	d.Cost = cost.Amount()
	d.ReclassifyPayStatus()
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// AddPayment accumulates a payment against the delivery cost. Non-positive
// amounts are ignored without error, mirroring Order.AddPayment; the returned
// bool reports whether the payment was applied.
func (d *DeliveryReceipt) AddPayment(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}

	d.PaymentAmount = d.PaymentAmount.Add(amount)
	d.ReclassifyPayStatus()
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewReceiptPaymentReceivedEvent(d, amount))

	return true
}

// ReclassifyPayStatus recomputes the pay status from the accumulated payment
// and the delivery cost
func (d *DeliveryReceipt) ReclassifyPayStatus() {
	d.PayStatus = valueobject.ClassifyPayment(d.PaymentAmount, d.Cost)
}

// SetRemark sets the remark for the receipt
func (d *DeliveryReceipt) SetRemark(remark string) {
	d.Remark = remark
	d.UpdatedAt = time.Now()
}

// GetCostMoney returns the delivery cost as Money
func (d *DeliveryReceipt) GetCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(d.Cost)
}

// GetPaymentAmountMoney returns the accumulated payments as Money
func (d *DeliveryReceipt) GetPaymentAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(d.PaymentAmount)
}
