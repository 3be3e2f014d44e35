package ordering

import (
	"context"

	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID with its products preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll finds orders with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByClient finds orders for a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order together with its products
	Save(ctx context.Context, order *Order) error

	// UpdateStatus persists only the status transition fields
	// (status, completed_at, cancelled_at, cancel_reason, updated_at, version)
	UpdateStatus(ctx context.Context, order *Order) error

	// UpdatePayment persists only the payment fields
	// (received_value, pay_status, updated_at, version)
	UpdatePayment(ctx context.Context, order *Order) error

	// Delete deletes an order; dependent products and records cascade
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByOrderNumber checks if an order number is already taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// GenerateOrderNumber generates a unique order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByOrder finds all products belonging to an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// UpdateQuantities persists only the ledger-owned fields for the given kind
	// (the matching amount column, status and updated_at), leaving concurrent
	// edits to unrelated fields untouched
	UpdateQuantities(ctx context.Context, product *Product, kind QuantityKind) error
}
