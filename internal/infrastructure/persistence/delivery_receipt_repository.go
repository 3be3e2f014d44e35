package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryReceiptRepository implements DeliveryReceiptRepository using GORM
type GormDeliveryReceiptRepository struct {
	db *gorm.DB
}

// NewGormDeliveryReceiptRepository creates a new GormDeliveryReceiptRepository
func NewGormDeliveryReceiptRepository(db *gorm.DB) *GormDeliveryReceiptRepository {
	return &GormDeliveryReceiptRepository{db: db}
}

// FindByID finds a delivery receipt by its ID
func (r *GormDeliveryReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.DeliveryReceipt, error) {
	var receipt fulfillment.DeliveryReceipt
	if err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByReceiptNumber finds a delivery receipt by its number
func (r *GormDeliveryReceiptRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*fulfillment.DeliveryReceipt, error) {
	var receipt fulfillment.DeliveryReceipt
	if err := r.db.WithContext(ctx).
		Where("receipt_number = ?", receiptNumber).
		First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// Save creates or updates a delivery receipt
func (r *GormDeliveryReceiptRepository) Save(ctx context.Context, receipt *fulfillment.DeliveryReceipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

// UpdatePayment persists only the payment fields
func (r *GormDeliveryReceiptRepository) UpdatePayment(ctx context.Context, receipt *fulfillment.DeliveryReceipt) error {
	result := r.db.WithContext(ctx).
		Model(&fulfillment.DeliveryReceipt{}).
		Where("id = ?", receipt.ID).
		Select("payment_amount", "pay_status", "updated_at", "version").
		Updates(map[string]any{
			"payment_amount": receipt.PaymentAmount,
			"pay_status":     receipt.PayStatus,
			"updated_at":     receipt.UpdatedAt,
			"version":        receipt.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateReceiptNumber generates a unique receipt number
// Format: DR-YYYY-NNNNN (e.g., DR-2026-00001)
func (r *GormDeliveryReceiptRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("DR-%d-", year)

	var lastReceipt fulfillment.DeliveryReceipt
	err := r.db.WithContext(ctx).
		Model(&fulfillment.DeliveryReceipt{}).
		Where("receipt_number LIKE ?", prefix+"%").
		Order("receipt_number DESC").
		First(&lastReceipt).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastReceipt.ReceiptNumber != "" {
		parts := strings.Split(lastReceipt.ReceiptNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// Ensure GormDeliveryReceiptRepository implements DeliveryReceiptRepository
var _ fulfillment.DeliveryReceiptRepository = (*GormDeliveryReceiptRepository)(nil)
