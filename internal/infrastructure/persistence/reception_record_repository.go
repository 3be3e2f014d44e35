package persistence

import (
	"context"
	"errors"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceptionRecordRepository implements ReceptionRecordRepository using GORM
type GormReceptionRecordRepository struct {
	db *gorm.DB
}

// NewGormReceptionRecordRepository creates a new GormReceptionRecordRepository
func NewGormReceptionRecordRepository(db *gorm.DB) *GormReceptionRecordRepository {
	return &GormReceptionRecordRepository{db: db}
}

// FindByID finds a reception record by its ID
func (r *GormReceptionRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.ReceptionRecord, error) {
	var record fulfillment.ReceptionRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProduct finds all reception records for a product
func (r *GormReceptionRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]fulfillment.ReceptionRecord, error) {
	var records []fulfillment.ReceptionRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a reception record
func (r *GormReceptionRecordRepository) Save(ctx context.Context, record *fulfillment.ReceptionRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes a reception record
func (r *GormReceptionRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fulfillment.ReceptionRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumByProduct resums the received units across all records of a product
func (r *GormReceptionRecordRepository) SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&fulfillment.ReceptionRecord{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Ensure GormReceptionRecordRepository implements ReceptionRecordRepository
var _ fulfillment.ReceptionRecordRepository = (*GormReceptionRecordRepository)(nil)
