package persistence

import (
	"context"
	"errors"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRecordRepository implements PurchaseRecordRepository using GORM
type GormPurchaseRecordRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRecordRepository creates a new GormPurchaseRecordRepository
func NewGormPurchaseRecordRepository(db *gorm.DB) *GormPurchaseRecordRepository {
	return &GormPurchaseRecordRepository{db: db}
}

// FindByID finds a purchase record by its ID
func (r *GormPurchaseRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.PurchaseRecord, error) {
	var record fulfillment.PurchaseRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProduct finds all purchase records for a product
func (r *GormPurchaseRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]fulfillment.PurchaseRecord, error) {
	var records []fulfillment.PurchaseRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a purchase record
func (r *GormPurchaseRecordRepository) Save(ctx context.Context, record *fulfillment.PurchaseRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes a purchase record
func (r *GormPurchaseRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fulfillment.PurchaseRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumEffectiveByProduct resums the effective purchased units across all records
// of a product. Fully refunded records contribute nothing; partially refunded
// records contribute amount minus refund_amount.
func (r *GormPurchaseRecordRepository) SumEffectiveByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&fulfillment.PurchaseRecord{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(CASE WHEN is_refunded THEN 0 ELSE amount - refund_amount END), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Ensure GormPurchaseRecordRepository implements PurchaseRecordRepository
var _ fulfillment.PurchaseRecordRepository = (*GormPurchaseRecordRepository)(nil)
