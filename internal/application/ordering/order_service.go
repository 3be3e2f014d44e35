package ordering

import (
	"context"

	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/crossbuy/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order lifecycle operations outside the fulfillment
// cascade: creation, listing, client payments and manual transitions.
type OrderService struct {
	orderRepo      ordering.OrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates an order together with its requested product lines
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := ordering.NewOrder(orderNumber, req.ClientID, req.ClientName)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	for _, line := range req.Products {
		product, err := order.AddProduct(line.Name, line.AmountRequested,
			valueobject.NewMoneyUSD(line.UnitPrice), valueobject.NewMoneyUSD(line.ShippingCost))
		if err != nil {
			return nil, err
		}
		if line.ProductURL != "" {
			product.SetProductURL(line.ProductURL)
		}
		if line.Remark != "" {
			product.SetRemark(line.Remark)
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Int("products", order.ProductCount()),
	)

	s.publish(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID returns an order with its products
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber returns an order by its human-facing number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List returns a filtered, paginated page of orders
func (s *OrderService) List(ctx context.Context, req ListOrdersRequest) (*OrderListResponse, error) {
	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	if req.Status != "" {
		status := ordering.OrderStatus(req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		filter.Filters["status"] = status.String()
	}
	if req.Search != "" {
		filter.Filters["search"] = req.Search
	}

	var (
		orders []ordering.Order
		err    error
	)
	if req.ClientID != nil {
		filter.Filters["client_id"] = *req.ClientID
		orders, err = s.orderRepo.FindByClient(ctx, *req.ClientID, filter)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &OrderListResponse{
		Orders:     responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// AddPayment accumulates a client payment on an order and reclassifies the pay
// status. A non-positive amount is accepted and ignored; the order is returned
// unchanged.
func (s *OrderService) AddPayment(ctx context.Context, orderID uuid.UUID, req AddPaymentRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.AddPayment(req.Amount) {
		if err := s.orderRepo.UpdatePayment(ctx, order); err != nil {
			return nil, err
		}
		s.logger.Info("payment received",
			zap.String("order_id", order.ID.String()),
			zap.String("amount", req.Amount.String()),
			zap.String("pay_status", order.PayStatus.String()),
		)
	}

	s.publish(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order. Cancellation is terminal: no fulfillment activity
// will ever transition the order again.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order together with its products and their records
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *OrderService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events", zap.Error(err))
	}
}
