package ordering

import (
	"time"

	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/crossbuy/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents where a product stands in the fulfillment pipeline
type ProductStatus string

const (
	ProductStatusRequested ProductStatus = "REQUESTED"
	ProductStatusPurchased ProductStatus = "PURCHASED"
	ProductStatusReceived  ProductStatus = "RECEIVED"
	ProductStatusDelivered ProductStatus = "DELIVERED"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusRequested, ProductStatusPurchased, ProductStatusReceived, ProductStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// QuantityKind identifies which running total of a product is being updated
type QuantityKind string

const (
	QuantityPurchased QuantityKind = "PURCHASED"
	QuantityReceived  QuantityKind = "RECEIVED"
	QuantityDelivered QuantityKind = "DELIVERED"
)

// IsValid checks if the kind is a valid QuantityKind
func (k QuantityKind) IsValid() bool {
	switch k {
	case QuantityPurchased, QuantityReceived, QuantityDelivered:
		return true
	}
	return false
}

// String returns the string representation of QuantityKind
func (k QuantityKind) String() string {
	return string(k)
}

// ResolveProductStatus computes the lifecycle status of a product from its
// quantity set. It is a pure function: same inputs always yield the same
// output, and it never fails for non-negative inputs.
//
// Rules are evaluated in strict priority order, first match wins. Delivery is
// checked first because it is the strongest claim; each lower stage fires only
// once its own total reaches the original request target, so correcting an
// over/under purchase does not get stuck waiting for downstream quantities.
// The function is deliberately not monotonic - deleting a record or refunding
// a purchase can move a product backwards, which is the only mechanism for
// correcting over-counted states.
func ResolveProductStatus(requested, purchased, received, delivered int64) ProductStatus {
	switch {
	case delivered > 0 && delivered >= received && delivered >= purchased:
		return ProductStatusDelivered
	case received > 0 && received >= requested:
		return ProductStatusReceived
	case purchased > 0 && purchased >= requested:
		return ProductStatusPurchased
	default:
		return ProductStatusRequested
	}
}

// Product represents one line item requested within an order, tracked through
// the purchase/reception/delivery pipeline. The three running totals are
// derived by the quantity ledger from transaction records and cached here.
type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(200);not null"`
	ProductURL      string          `gorm:"type:varchar(500)"`
	AmountRequested int64           `gorm:"not null"`
	AmountPurchased int64           `gorm:"not null;default:0"`
	AmountReceived  int64           `gorm:"not null;default:0"`
	AmountDelivered int64           `gorm:"not null;default:0"`
	Status          ProductStatus   `gorm:"type:varchar(20);not null;default:'REQUESTED'"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`           // Price per unit
	ShippingCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Ancillary cost per line
	TotalCost       decimal.Decimal `gorm:"type:decimal(18,4);not null"`           // UnitPrice * AmountRequested + ShippingCost
	Remark          string          `gorm:"type:varchar(500)"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product line for an order
func NewProduct(orderID uuid.UUID, name string, amountRequested int64, unitPrice, shippingCost valueobject.Money) (*Product, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if amountRequested <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested amount must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if shippingCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Shipping cost cannot be negative")
	}

	now := time.Now()
	totalCost := unitPrice.MultiplyByInt(amountRequested).Amount().Add(shippingCost.Amount())

	return &Product{
		ID:              uuid.New(),
		OrderID:         orderID,
		Name:            name,
		AmountRequested: amountRequested,
		Status:          ProductStatusRequested,
		UnitPrice:       unitPrice.Amount(),
		ShippingCost:    shippingCost.Amount(),
		TotalCost:       totalCost,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// SetProductURL sets the source listing URL for the product
func (p *Product) SetProductURL(url string) {
	p.ProductURL = url
	p.UpdatedAt = time.Now()
}

// SetRemark sets the remark for the product
func (p *Product) SetRemark(remark string) {
	p.Remark = remark
	p.UpdatedAt = time.Now()
}

// ApplyQuantityTotal overwrites one running total with a freshly resummed
// value and re-resolves the lifecycle status. The ledger always passes the
// full sum over all remaining records, never an incremental delta.
func (p *Product) ApplyQuantityTotal(kind QuantityKind, total int64) error {
	if total < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity total cannot be negative")
	}

	switch kind {
	case QuantityPurchased:
		p.AmountPurchased = total
	case QuantityReceived:
		p.AmountReceived = total
	case QuantityDelivered:
		p.AmountDelivered = total
	default:
		return shared.NewDomainError("INVALID_KIND", "Unknown quantity kind")
	}

	p.Status = ResolveProductStatus(p.AmountRequested, p.AmountPurchased, p.AmountReceived, p.AmountDelivered)
	p.UpdatedAt = time.Now()

	return nil
}

// RemainingToPurchase returns the quantity still to be purchased
func (p *Product) RemainingToPurchase() int64 {
	remaining := p.AmountRequested - p.AmountPurchased
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingToReceive returns the quantity purchased but not yet received
func (p *Product) RemainingToReceive() int64 {
	remaining := p.AmountPurchased - p.AmountReceived
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PendingDelivery returns the quantity purchased but not yet delivered
func (p *Product) PendingDelivery() int64 {
	pending := p.AmountPurchased - p.AmountDelivered
	if pending < 0 {
		return 0
	}
	return pending
}

// IsFullyDelivered returns true if everything purchased has been handed over
func (p *Product) IsFullyDelivered() bool {
	return p.AmountDelivered >= p.AmountPurchased
}

// GetUnitPriceMoney returns the unit price as Money value object
func (p *Product) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitPrice)
}

// GetTotalCostMoney returns the total cost as Money value object
func (p *Product) GetTotalCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.TotalCost)
}
