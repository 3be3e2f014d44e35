package fulfillment

import (
	"context"
	"fmt"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/crossbuy/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseService handles the write path of purchase records. Every mutation
// ends with a ledger recomputation inside the same transaction.
type PurchaseService struct {
	scope          TransactionScope
	ledger         *LedgerService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(scope TransactionScope, ledger *LedgerService, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		scope:  scope,
		ledger: ledger,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create records a purchase against a product. The quantity is validated
// against the product's remaining headroom before anything is written, and
// the ledger recomputes the purchased total as the last step of the same
// transaction.
func (s *PurchaseService) Create(ctx context.Context, req RecordPurchaseRequest) (*PurchaseRecordResponse, error) {
	record, err := fulfillment.NewPurchaseRecord(req.ProductID, req.BuyerID, req.ShopName, req.Amount, valueobject.NewMoneyUSD(req.UnitCost))
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		record.SetRemark(req.Remark)
	}

	var response PurchaseRecordResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if req.Amount > product.RemainingToPurchase() {
			return shared.NewDomainError("OVER_COMMITMENT", fmt.Sprintf("Cannot purchase %d, only %d remaining", req.Amount, product.RemainingToPurchase()))
		}

		if err := repos.PurchaseRecords().Save(ctx, record); err != nil {
			return err
		}

		product, err = s.ledger.Recompute(ctx, repos, req.ProductID, ordering.QuantityPurchased)
		if err != nil {
			return err
		}

		// First fulfillment activity moves the order out of CREATED
		order, err := repos.Orders().FindByID(ctx, product.OrderID)
		if err != nil {
			return err
		}
		if order.Status == ordering.OrderStatusCreated {
			if err := order.StartProcessing(); err != nil {
				return err
			}
			if err := repos.Orders().UpdateStatus(ctx, order); err != nil {
				return err
			}
		}

		response = ToPurchaseRecordResponse(record, product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, record.GetDomainEvents())
	record.ClearDomainEvents()

	return &response, nil
}

// Refund marks units of an existing purchase as refunded and recomputes the
// product's purchased total, which may regress its lifecycle status.
func (s *PurchaseService) Refund(ctx context.Context, recordID uuid.UUID, req RefundPurchaseRequest) (*PurchaseRecordResponse, error) {
	var (
		response PurchaseRecordResponse
		record   *fulfillment.PurchaseRecord
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.PurchaseRecords().FindByID(ctx, recordID)
		if err != nil {
			return err
		}

		if err := record.Refund(req.Quantity); err != nil {
			return err
		}
		if err := repos.PurchaseRecords().Save(ctx, record); err != nil {
			return err
		}

		product, err := s.ledger.Recompute(ctx, repos, record.ProductID, ordering.QuantityPurchased)
		if err != nil {
			return err
		}

		response = ToPurchaseRecordResponse(record, product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, record.GetDomainEvents())
	record.ClearDomainEvents()

	return &response, nil
}

// Delete removes a purchase record and resums the product's purchased total
// from the remaining records.
func (s *PurchaseService) Delete(ctx context.Context, recordID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.PurchaseRecords().FindByID(ctx, recordID)
		if err != nil {
			return err
		}

		if err := repos.PurchaseRecords().Delete(ctx, recordID); err != nil {
			return err
		}

		_, err = s.ledger.Recompute(ctx, repos, record.ProductID, ordering.QuantityPurchased)
		return err
	})
}

// GetByProduct returns all purchase records for a product
func (s *PurchaseService) GetByProduct(ctx context.Context, productID uuid.UUID) ([]PurchaseRecordResponse, error) {
	var responses []PurchaseRecordResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		records, err := repos.PurchaseRecords().FindByProduct(ctx, productID)
		if err != nil {
			return err
		}
		responses = make([]PurchaseRecordResponse, len(records))
		for i := range records {
			responses[i] = ToPurchaseRecordResponse(&records[i], product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *PurchaseService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish purchase events", zap.Error(err))
	}
}
