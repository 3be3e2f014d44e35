package fulfillment

import (
	"context"
	"fmt"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceptionService handles the write path of reception records
type ReceptionService struct {
	scope          TransactionScope
	ledger         *LedgerService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReceptionService creates a new ReceptionService
func NewReceptionService(scope TransactionScope, ledger *LedgerService, logger *zap.Logger) *ReceptionService {
	return &ReceptionService{
		scope:  scope,
		ledger: ledger,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ReceptionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create records goods arriving at the warehouse. Receiving more than has
// been purchased is rejected before anything is written.
func (s *ReceptionService) Create(ctx context.Context, req RecordReceptionRequest) (*ReceptionRecordResponse, error) {
	record, err := fulfillment.NewReceptionRecord(req.ProductID, req.Amount, req.PackageID)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		record.SetRemark(req.Remark)
	}

	var response ReceptionRecordResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if req.Amount > product.RemainingToReceive() {
			return shared.NewDomainError("OVER_COMMITMENT", fmt.Sprintf("Cannot receive %d, only %d pending reception", req.Amount, product.RemainingToReceive()))
		}

		if err := repos.ReceptionRecords().Save(ctx, record); err != nil {
			return err
		}

		product, err = s.ledger.Recompute(ctx, repos, req.ProductID, ordering.QuantityReceived)
		if err != nil {
			return err
		}

		response = ToReceptionRecordResponse(record, product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, record.GetDomainEvents())
	record.ClearDomainEvents()

	return &response, nil
}

// Delete removes a reception record and resums the product's received total
// from the remaining records.
func (s *ReceptionService) Delete(ctx context.Context, recordID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.ReceptionRecords().FindByID(ctx, recordID)
		if err != nil {
			return err
		}

		if err := repos.ReceptionRecords().Delete(ctx, recordID); err != nil {
			return err
		}

		_, err = s.ledger.Recompute(ctx, repos, record.ProductID, ordering.QuantityReceived)
		return err
	})
}

// GetByProduct returns all reception records for a product
func (s *ReceptionService) GetByProduct(ctx context.Context, productID uuid.UUID) ([]ReceptionRecordResponse, error) {
	var responses []ReceptionRecordResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		records, err := repos.ReceptionRecords().FindByProduct(ctx, productID)
		if err != nil {
			return err
		}
		responses = make([]ReceptionRecordResponse, len(records))
		for i := range records {
			responses[i] = ToReceptionRecordResponse(&records[i], product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *ReceptionService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish reception events", zap.Error(err))
	}
}
