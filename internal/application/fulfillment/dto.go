package fulfillment

import (
	"time"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot reflects the product's ledger state after an operation
type ProductSnapshot struct {
	ProductID       uuid.UUID `json:"product_id"`
	AmountRequested int64     `json:"amount_requested"`
	AmountPurchased int64     `json:"amount_purchased"`
	AmountReceived  int64     `json:"amount_received"`
	AmountDelivered int64     `json:"amount_delivered"`
	Status          string    `json:"status"`
}

// ToProductSnapshot maps a product to its ledger snapshot
func ToProductSnapshot(product *ordering.Product) ProductSnapshot {
	return ProductSnapshot{
		ProductID:       product.ID,
		AmountRequested: product.AmountRequested,
		AmountPurchased: product.AmountPurchased,
		AmountReceived:  product.AmountReceived,
		AmountDelivered: product.AmountDelivered,
		Status:          product.Status.String(),
	}
}

// RecordPurchaseRequest is the request to record a purchase against a product
type RecordPurchaseRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	BuyerID   uuid.UUID       `json:"buyer_id" binding:"required"`
	ShopName  string          `json:"shop_name" binding:"max=200"`
	Amount    int64           `json:"amount" binding:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Remark    string          `json:"remark" binding:"max=500"`
}

// RefundPurchaseRequest is the request to refund purchased units
type RefundPurchaseRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// PurchaseRecordResponse is the purchase record representation returned to callers
type PurchaseRecordResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	BuyerID         uuid.UUID       `json:"buyer_id"`
	ShopName        string          `json:"shop_name"`
	Amount          int64           `json:"amount"`
	IsRefunded      bool            `json:"is_refunded"`
	RefundAmount    int64           `json:"refund_amount"`
	EffectiveAmount int64           `json:"effective_amount"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Remark          string          `json:"remark,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Product         ProductSnapshot `json:"product"`
}

// ToPurchaseRecordResponse maps a purchase record and the recomputed product
func ToPurchaseRecordResponse(record *fulfillment.PurchaseRecord, product *ordering.Product) PurchaseRecordResponse {
	return PurchaseRecordResponse{
		ID:              record.ID,
		ProductID:       record.ProductID,
		BuyerID:         record.BuyerID,
		ShopName:        record.ShopName,
		Amount:          record.Amount,
		IsRefunded:      record.IsRefunded,
		RefundAmount:    record.RefundAmount,
		EffectiveAmount: record.EffectiveAmount(),
		UnitCost:        record.UnitCost,
		Remark:          record.Remark,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
		Product:         ToProductSnapshot(product),
	}
}

// RecordReceptionRequest is the request to record goods arriving at the warehouse
type RecordReceptionRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Amount    int64      `json:"amount" binding:"required,gt=0"`
	PackageID *uuid.UUID `json:"package_id"`
	Remark    string     `json:"remark" binding:"max=500"`
}

// ReceptionRecordResponse is the reception record representation returned to callers
type ReceptionRecordResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Amount    int64           `json:"amount"`
	PackageID *uuid.UUID      `json:"package_id,omitempty"`
	Remark    string          `json:"remark,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Product   ProductSnapshot `json:"product"`
}

// ToReceptionRecordResponse maps a reception record and the recomputed product
func ToReceptionRecordResponse(record *fulfillment.ReceptionRecord, product *ordering.Product) ReceptionRecordResponse {
	return ReceptionRecordResponse{
		ID:        record.ID,
		ProductID: record.ProductID,
		Amount:    record.Amount,
		PackageID: record.PackageID,
		Remark:    record.Remark,
		CreatedAt: record.CreatedAt,
		Product:   ToProductSnapshot(product),
	}
}

// RecordDeliveryRequest is the request to record a handoff to the client
type RecordDeliveryRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Amount    int64      `json:"amount" binding:"required,gt=0"`
	ReceiptID *uuid.UUID `json:"receipt_id"`
	Remark    string     `json:"remark" binding:"max=500"`
}

// DeliveryRecordResponse is the delivery record representation returned to callers
type DeliveryRecordResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Amount         int64           `json:"amount"`
	ReceiptID      *uuid.UUID      `json:"receipt_id,omitempty"`
	Remark         string          `json:"remark,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	Product        ProductSnapshot `json:"product"`
	OrderStatus    string          `json:"order_status"`
	OrderCompleted bool            `json:"order_completed"`
}

// ToDeliveryRecordResponse maps a delivery record, the recomputed product and
// the re-evaluated order
func ToDeliveryRecordResponse(record *fulfillment.DeliveryRecord, product *ordering.Product, order *ordering.Order) DeliveryRecordResponse {
	return DeliveryRecordResponse{
		ID:             record.ID,
		ProductID:      record.ProductID,
		Amount:         record.Amount,
		ReceiptID:      record.ReceiptID,
		Remark:         record.Remark,
		CreatedAt:      record.CreatedAt,
		Product:        ToProductSnapshot(product),
		OrderStatus:    order.Status.String(),
		OrderCompleted: order.IsCompleted(),
	}
}

// CreateReceiptRequest is the request to open a delivery receipt
type CreateReceiptRequest struct {
	ClientID uuid.UUID       `json:"client_id" binding:"required"`
	Cost     decimal.Decimal `json:"cost"`
	Remark   string          `json:"remark" binding:"max=500"`
}

// AddReceiptPaymentRequest is the request to add a payment to a receipt
type AddReceiptPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// DeliveryReceiptResponse is the delivery receipt representation returned to callers
type DeliveryReceiptResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	Cost          decimal.Decimal `json:"cost"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PayStatus     string          `json:"pay_status"`
	Remark        string          `json:"remark,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToDeliveryReceiptResponse maps a delivery receipt to its response representation
func ToDeliveryReceiptResponse(receipt *fulfillment.DeliveryReceipt) DeliveryReceiptResponse {
	return DeliveryReceiptResponse{
		ID:            receipt.ID,
		ReceiptNumber: receipt.ReceiptNumber,
		ClientID:      receipt.ClientID,
		Cost:          receipt.Cost,
		PaymentAmount: receipt.PaymentAmount,
		PayStatus:     receipt.PayStatus.String(),
		Remark:        receipt.Remark,
		CreatedAt:     receipt.CreatedAt,
		UpdatedAt:     receipt.UpdatedAt,
	}
}
