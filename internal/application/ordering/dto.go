package ordering

import (
	"time"

	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the request to create an order with its product lines
type CreateOrderRequest struct {
	ClientID   uuid.UUID            `json:"client_id" binding:"required"`
	ClientName string               `json:"client_name" binding:"required,max=200"`
	Remark     string               `json:"remark" binding:"max=500"`
	Products   []OrderProductRequest `json:"products" binding:"required,min=1,dive"`
}

// OrderProductRequest is one requested product line inside an order
type OrderProductRequest struct {
	Name            string          `json:"name" binding:"required,max=200"`
	ProductURL      string          `json:"product_url" binding:"max=2000"`
	AmountRequested int64           `json:"amount_requested" binding:"required,gt=0"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Remark          string          `json:"remark" binding:"max=500"`
}

// AddPaymentRequest is the request to accumulate a client payment on an order
type AddPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CancelOrderRequest is the request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListOrdersRequest is the request to list orders
type ListOrdersRequest struct {
	ClientID *uuid.UUID `form:"client_id"`
	Status   string     `form:"status"`
	Search   string     `form:"search"`
	Page     int        `form:"page,default=1" binding:"min=1"`
	PageSize int        `form:"page_size,default=20" binding:"min=1,max=100"`
}

// ProductResponse is the product representation returned to callers
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         uuid.UUID       `json:"order_id"`
	Name            string          `json:"name"`
	ProductURL      string          `json:"product_url,omitempty"`
	AmountRequested int64           `json:"amount_requested"`
	AmountPurchased int64           `json:"amount_purchased"`
	AmountReceived  int64           `json:"amount_received"`
	AmountDelivered int64           `json:"amount_delivered"`
	Status          string          `json:"status"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Remark          string          `json:"remark,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToProductResponse maps a product to its response representation
func ToProductResponse(product *ordering.Product) ProductResponse {
	return ProductResponse{
		ID:              product.ID,
		OrderID:         product.OrderID,
		Name:            product.Name,
		ProductURL:      product.ProductURL,
		AmountRequested: product.AmountRequested,
		AmountPurchased: product.AmountPurchased,
		AmountReceived:  product.AmountReceived,
		AmountDelivered: product.AmountDelivered,
		Status:          product.Status.String(),
		UnitPrice:       product.UnitPrice,
		ShippingCost:    product.ShippingCost,
		TotalCost:       product.TotalCost,
		Remark:          product.Remark,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

// OrderResponse is the order representation returned to callers
type OrderResponse struct {
	ID            uuid.UUID         `json:"id"`
	OrderNumber   string            `json:"order_number"`
	ClientID      uuid.UUID         `json:"client_id"`
	ClientName    string            `json:"client_name"`
	Status        string            `json:"status"`
	PayStatus     string            `json:"pay_status"`
	TotalCost     decimal.Decimal   `json:"total_cost"`
	ReceivedValue decimal.Decimal   `json:"received_value"`
	Products      []ProductResponse `json:"products,omitempty"`
	Remark        string            `json:"remark,omitempty"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty"`
	CancelReason  string            `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Version       int               `json:"version"`
}

// ToOrderResponse maps an order to its response representation
func ToOrderResponse(order *ordering.Order) OrderResponse {
	products := make([]ProductResponse, len(order.Products))
	for i := range order.Products {
		products[i] = ToProductResponse(&order.Products[i])
	}

	return OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		ClientID:      order.ClientID,
		ClientName:    order.ClientName,
		Status:        order.Status.String(),
		PayStatus:     order.PayStatus.String(),
		TotalCost:     order.TotalCost(),
		ReceivedValue: order.ReceivedValue,
		Products:      products,
		Remark:        order.Remark,
		CompletedAt:   order.CompletedAt,
		CancelledAt:   order.CancelledAt,
		CancelReason:  order.CancelReason,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		Version:       order.Version,
	}
}

// OrderListResponse is a paginated list of orders
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
