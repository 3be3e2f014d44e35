package persistence

import (
	"context"

	appfulfillment "github.com/crossbuy/backend/internal/application/fulfillment"
	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/ordering"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appfulfillment.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction
func (r *gormTransactionalRepositories) Orders() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) Products() ordering.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// PurchaseRecords returns the purchase record repository scoped to the current transaction
func (r *gormTransactionalRepositories) PurchaseRecords() fulfillment.PurchaseRecordRepository {
	return NewGormPurchaseRecordRepository(r.tx)
}

// ReceptionRecords returns the reception record repository scoped to the current transaction
func (r *gormTransactionalRepositories) ReceptionRecords() fulfillment.ReceptionRecordRepository {
	return NewGormReceptionRecordRepository(r.tx)
}

// DeliveryRecords returns the delivery record repository scoped to the current transaction
func (r *gormTransactionalRepositories) DeliveryRecords() fulfillment.DeliveryRecordRepository {
	return NewGormDeliveryRecordRepository(r.tx)
}

// DeliveryReceipts returns the delivery receipt repository scoped to the current transaction
func (r *gormTransactionalRepositories) DeliveryReceipts() fulfillment.DeliveryReceiptRepository {
	return NewGormDeliveryReceiptRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appfulfillment.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appfulfillment.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
