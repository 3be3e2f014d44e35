package persistence

import (
	"context"
	"errors"

	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Product, error) {
	var product ordering.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByOrder finds all products belonging to an order
func (r *GormProductRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ordering.Product, error) {
	var products []ordering.Product
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *ordering.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// UpdateQuantities persists only the ledger-owned fields for the given kind.
// Writing just the matching amount column keeps concurrent updates of the
// other two totals from clobbering each other.
func (r *GormProductRepository) UpdateQuantities(ctx context.Context, product *ordering.Product, kind ordering.QuantityKind) error {
	updates := map[string]any{
		"status":     product.Status,
		"updated_at": product.UpdatedAt,
	}

	switch kind {
	case ordering.QuantityPurchased:
		updates["amount_purchased"] = product.AmountPurchased
	case ordering.QuantityReceived:
		updates["amount_received"] = product.AmountReceived
	case ordering.QuantityDelivered:
		updates["amount_delivered"] = product.AmountDelivered
	default:
		return shared.NewDomainError("INVALID_KIND", "Unknown quantity kind")
	}

	result := r.db.WithContext(ctx).
		Model(&ordering.Product{}).
		Where("id = ?", product.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductRepository implements ProductRepository
var _ ordering.ProductRepository = (*GormProductRepository)(nil)
