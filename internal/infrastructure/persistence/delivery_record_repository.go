package persistence

import (
	"context"
	"errors"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRecordRepository implements DeliveryRecordRepository using GORM
type GormDeliveryRecordRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRecordRepository creates a new GormDeliveryRecordRepository
func NewGormDeliveryRecordRepository(db *gorm.DB) *GormDeliveryRecordRepository {
	return &GormDeliveryRecordRepository{db: db}
}

// FindByID finds a delivery record by its ID
func (r *GormDeliveryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.DeliveryRecord, error) {
	var record fulfillment.DeliveryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProduct finds all delivery records for a product
func (r *GormDeliveryRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]fulfillment.DeliveryRecord, error) {
	var records []fulfillment.DeliveryRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByReceipt finds all delivery records attached to a receipt
func (r *GormDeliveryRecordRepository) FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]fulfillment.DeliveryRecord, error) {
	var records []fulfillment.DeliveryRecord
	if err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a delivery record
func (r *GormDeliveryRecordRepository) Save(ctx context.Context, record *fulfillment.DeliveryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes a delivery record
func (r *GormDeliveryRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fulfillment.DeliveryRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumByProduct resums the delivered units across all records of a product
func (r *GormDeliveryRecordRepository) SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&fulfillment.DeliveryRecord{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Ensure GormDeliveryRecordRepository implements DeliveryRecordRepository
var _ fulfillment.DeliveryRecordRepository = (*GormDeliveryRecordRepository)(nil)
