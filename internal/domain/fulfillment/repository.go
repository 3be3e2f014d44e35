package fulfillment

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseRecordRepository defines the interface for purchase record persistence
type PurchaseRecordRepository interface {
	// FindByID finds a purchase record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseRecord, error)

	// FindByProduct finds all purchase records for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]PurchaseRecord, error)

	// Save creates or updates a purchase record
	Save(ctx context.Context, record *PurchaseRecord) error

	// Delete removes a purchase record
	Delete(ctx context.Context, id uuid.UUID) error

	// SumEffectiveByProduct resums the effective (non-refunded) purchased units
	// across all records of a product
	SumEffectiveByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// ReceptionRecordRepository defines the interface for reception record persistence
type ReceptionRecordRepository interface {
	// FindByID finds a reception record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ReceptionRecord, error)

	// FindByProduct finds all reception records for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ReceptionRecord, error)

	// Save creates or updates a reception record
	Save(ctx context.Context, record *ReceptionRecord) error

	// Delete removes a reception record
	Delete(ctx context.Context, id uuid.UUID) error

	// SumByProduct resums the received units across all records of a product
	SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// DeliveryRecordRepository defines the interface for delivery record persistence
type DeliveryRecordRepository interface {
	// FindByID finds a delivery record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryRecord, error)

	// FindByProduct finds all delivery records for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]DeliveryRecord, error)

	// FindByReceipt finds all delivery records attached to a receipt
	FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]DeliveryRecord, error)

	// Save creates or updates a delivery record
	Save(ctx context.Context, record *DeliveryRecord) error

	// Delete removes a delivery record
	Delete(ctx context.Context, id uuid.UUID) error

	// SumByProduct resums the delivered units across all records of a product
	SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// DeliveryReceiptRepository defines the interface for delivery receipt persistence
type DeliveryReceiptRepository interface {
	// FindByID finds a delivery receipt by ID
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryReceipt, error)

	// FindByReceiptNumber finds a delivery receipt by its number
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*DeliveryReceipt, error)

	// Save creates or updates a delivery receipt
	Save(ctx context.Context, receipt *DeliveryReceipt) error

	// UpdatePayment persists only the payment fields
	// (payment_amount, pay_status, updated_at, version)
	UpdatePayment(ctx context.Context, receipt *DeliveryReceipt) error

	// GenerateReceiptNumber generates a unique receipt number
	GenerateReceiptNumber(ctx context.Context) (string, error)
}
