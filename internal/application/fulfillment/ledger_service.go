package fulfillment

import (
	"context"

	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerService keeps each product's running totals consistent with the full
// set of transaction records referencing it.
//
// Recomputation always resums ALL existing records of a kind instead of
// applying an incremental delta. The resum is idempotent and self-healing: it
// is safe under repeated or out-of-order invocation and recovers from any
// single missed update on the next call. Every recorder create, update and
// delete path must invoke Recompute as its last step, inside the same
// transaction as the record mutation.
type LedgerService struct {
	logger *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(logger *zap.Logger) *LedgerService {
	return &LedgerService{logger: logger}
}

// Recompute resums the records of the given kind for a product, overwrites the
// matching running total, re-resolves the lifecycle status and persists only
// the ledger-owned fields. It returns the updated product so callers can
// continue the cascade (e.g. order completion) without refetching.
func (s *LedgerService) Recompute(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID, kind ordering.QuantityKind) (*ordering.Product, error) {
	product, err := repos.Products().FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var total int64
	switch kind {
	case ordering.QuantityPurchased:
		total, err = repos.PurchaseRecords().SumEffectiveByProduct(ctx, productID)
	case ordering.QuantityReceived:
		total, err = repos.ReceptionRecords().SumByProduct(ctx, productID)
	case ordering.QuantityDelivered:
		total, err = repos.DeliveryRecords().SumByProduct(ctx, productID)
	default:
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown quantity kind")
	}
	if err != nil {
		return nil, err
	}

	previousStatus := product.Status
	if err := product.ApplyQuantityTotal(kind, total); err != nil {
		return nil, err
	}

	if err := repos.Products().UpdateQuantities(ctx, product, kind); err != nil {
		return nil, err
	}

	if product.Status != previousStatus {
		s.logger.Info("product status changed",
			zap.String("product_id", product.ID.String()),
			zap.String("kind", kind.String()),
			zap.Int64("total", total),
			zap.String("from", previousStatus.String()),
			zap.String("to", product.Status.String()),
		)
	}

	return product, nil
}
