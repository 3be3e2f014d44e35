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

// DeliveryService handles the write path of delivery records and receipts.
// Delivery is the only transaction kind that cascades past the product: after
// the ledger updates, the owning order is asked to re-evaluate completion
// within the same transaction.
type DeliveryService struct {
	scope          TransactionScope
	ledger         *LedgerService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(scope TransactionScope, ledger *LedgerService, logger *zap.Logger) *DeliveryService {
	return &DeliveryService{
		scope:  scope,
		ledger: ledger,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *DeliveryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create records a handoff to the client. Delivering more than has arrived at
// the warehouse is rejected. If the delivery completes the order, the order
// transitions to COMPLETED in the same transaction.
func (s *DeliveryService) Create(ctx context.Context, req RecordDeliveryRequest) (*DeliveryRecordResponse, error) {
	record, err := fulfillment.NewDeliveryRecord(req.ProductID, req.Amount, req.ReceiptID)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		record.SetRemark(req.Remark)
	}

	var (
		response DeliveryRecordResponse
		order    *ordering.Order
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		deliverable := product.AmountReceived - product.AmountDelivered
		if deliverable < 0 {
			deliverable = 0
		}
		if req.Amount > deliverable {
			return shared.NewDomainError("OVER_COMMITMENT", fmt.Sprintf("Cannot deliver %d, only %d on hand", req.Amount, deliverable))
		}

		if err := repos.DeliveryRecords().Save(ctx, record); err != nil {
			return err
		}

		product, err = s.ledger.Recompute(ctx, repos, req.ProductID, ordering.QuantityDelivered)
		if err != nil {
			return err
		}

		// Re-evaluate order completion against the fresh product totals
		order, err = repos.Orders().FindByID(ctx, product.OrderID)
		if err != nil {
			return err
		}
		if !order.IsCompleted() && !order.IsCancelled() && order.IsFullyDelivered() {
			if err := order.Complete(); err != nil {
				return err
			}
			if err := repos.Orders().UpdateStatus(ctx, order); err != nil {
				return err
			}
		}

		response = ToDeliveryRecordResponse(record, product, order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, record.GetDomainEvents())
	record.ClearDomainEvents()
	s.publish(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	return &response, nil
}

// Delete removes a delivery record, resums the delivered total and reopens the
// owning order if it was completed and full delivery no longer holds.
// Cancelled orders are never touched.
func (s *DeliveryService) Delete(ctx context.Context, recordID uuid.UUID) error {
	var order *ordering.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.DeliveryRecords().FindByID(ctx, recordID)
		if err != nil {
			return err
		}

		if err := repos.DeliveryRecords().Delete(ctx, recordID); err != nil {
			return err
		}

		product, err := s.ledger.Recompute(ctx, repos, record.ProductID, ordering.QuantityDelivered)
		if err != nil {
			return err
		}

		order, err = repos.Orders().FindByID(ctx, product.OrderID)
		if err != nil {
			return err
		}
		if order.IsCompleted() && !order.IsFullyDelivered() {
			if err := order.RevertToProcessing(); err != nil {
				return err
			}
			if err := repos.Orders().UpdateStatus(ctx, order); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if order != nil {
		s.publish(ctx, order.GetDomainEvents())
		order.ClearDomainEvents()
	}

	return nil
}

// CreateReceipt opens a delivery receipt for a client
func (s *DeliveryService) CreateReceipt(ctx context.Context, req CreateReceiptRequest) (*DeliveryReceiptResponse, error) {
	var response DeliveryReceiptResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		receiptNumber, err := repos.DeliveryReceipts().GenerateReceiptNumber(ctx)
		if err != nil {
			return err
		}

		receipt, err := fulfillment.NewDeliveryReceipt(receiptNumber, req.ClientID, valueobject.NewMoneyUSD(req.Cost))
		if err != nil {
			return err
		}
		if req.Remark != "" {
			receipt.SetRemark(req.Remark)
		}

		if err := repos.DeliveryReceipts().Save(ctx, receipt); err != nil {
			return err
		}

		response = ToDeliveryReceiptResponse(receipt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// AddReceiptPayment accumulates a payment on a delivery receipt. Non-positive
// amounts are a silent no-op: the receipt is returned unchanged.
func (s *DeliveryService) AddReceiptPayment(ctx context.Context, receiptID uuid.UUID, req AddReceiptPaymentRequest) (*DeliveryReceiptResponse, error) {
	var (
		response DeliveryReceiptResponse
		receipt  *fulfillment.DeliveryReceipt
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		receipt, err = repos.DeliveryReceipts().FindByID(ctx, receiptID)
		if err != nil {
			return err
		}

		if receipt.AddPayment(req.Amount) {
			if err := repos.DeliveryReceipts().UpdatePayment(ctx, receipt); err != nil {
				return err
			}
		}

		response = ToDeliveryReceiptResponse(receipt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, receipt.GetDomainEvents())
	receipt.ClearDomainEvents()

	return &response, nil
}

// GetReceipt returns a delivery receipt by ID
func (s *DeliveryService) GetReceipt(ctx context.Context, receiptID uuid.UUID) (*DeliveryReceiptResponse, error) {
	var response DeliveryReceiptResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		receipt, err := repos.DeliveryReceipts().FindByID(ctx, receiptID)
		if err != nil {
			return err
		}
		response = ToDeliveryReceiptResponse(receipt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *DeliveryService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish delivery events", zap.Error(err))
	}
}
