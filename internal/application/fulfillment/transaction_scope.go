package fulfillment

import (
	"context"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/ordering"
)

// TransactionScope provides transactional access to the repositories touched
// by a fulfillment mutation. Every recorder write and the cascading ledger and
// order updates it triggers run inside one scope, so the whole chain commits
// or rolls back together - a half-applied recomputation is never observable.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories participating
// in a fulfillment transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// Orders returns the order repository scoped to the current transaction
	Orders() ordering.OrderRepository
	// Products returns the product repository scoped to the current transaction
	Products() ordering.ProductRepository
	// PurchaseRecords returns the purchase record repository scoped to the current transaction
	PurchaseRecords() fulfillment.PurchaseRecordRepository
	// ReceptionRecords returns the reception record repository scoped to the current transaction
	ReceptionRecords() fulfillment.ReceptionRecordRepository
	// DeliveryRecords returns the delivery record repository scoped to the current transaction
	DeliveryRecords() fulfillment.DeliveryRecordRepository
	// DeliveryReceipts returns the delivery receipt repository scoped to the current transaction
	DeliveryReceipts() fulfillment.DeliveryReceiptRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	orderRepo     ordering.OrderRepository
	productRepo   ordering.ProductRepository
	purchaseRepo  fulfillment.PurchaseRecordRepository
	receptionRepo fulfillment.ReceptionRecordRepository
	deliveryRepo  fulfillment.DeliveryRecordRepository
	receiptRepo   fulfillment.DeliveryReceiptRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo ordering.OrderRepository,
	productRepo ordering.ProductRepository,
	purchaseRepo fulfillment.PurchaseRecordRepository,
	receptionRepo fulfillment.ReceptionRecordRepository,
	deliveryRepo fulfillment.DeliveryRecordRepository,
	receiptRepo fulfillment.DeliveryReceiptRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		purchaseRepo:  purchaseRepo,
		receptionRepo: receptionRepo,
		deliveryRepo:  deliveryRepo,
		receiptRepo:   receiptRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository.
func (s *NoOpTransactionScope) Orders() ordering.OrderRepository {
	return s.orderRepo
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() ordering.ProductRepository {
	return s.productRepo
}

// PurchaseRecords returns the purchase record repository.
func (s *NoOpTransactionScope) PurchaseRecords() fulfillment.PurchaseRecordRepository {
	return s.purchaseRepo
}

// ReceptionRecords returns the reception record repository.
func (s *NoOpTransactionScope) ReceptionRecords() fulfillment.ReceptionRecordRepository {
	return s.receptionRepo
}

// DeliveryRecords returns the delivery record repository.
func (s *NoOpTransactionScope) DeliveryRecords() fulfillment.DeliveryRecordRepository {
	return s.deliveryRepo
}

// DeliveryReceipts returns the delivery receipt repository.
func (s *NoOpTransactionScope) DeliveryReceipts() fulfillment.DeliveryReceiptRepository {
	return s.receiptRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
