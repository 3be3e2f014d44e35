package fulfillment

import (
	"context"
	"fmt"
	"testing"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/crossbuy/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory repository fakes backing the service tests. The order fake
// assembles products from the product fake on every read, mirroring the
// preload behavior of the real persistence layer.

type fakeProductRepository struct {
	products map[uuid.UUID]*ordering.Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[uuid.UUID]*ordering.Product)}
}

func (r *fakeProductRepository) FindByID(_ context.Context, id uuid.UUID) (*ordering.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *product
	return &cp, nil
}

func (r *fakeProductRepository) FindByOrder(_ context.Context, orderID uuid.UUID) ([]ordering.Product, error) {
	var result []ordering.Product
	for _, product := range r.products {
		if product.OrderID == orderID {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (r *fakeProductRepository) Save(_ context.Context, product *ordering.Product) error {
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepository) UpdateQuantities(_ context.Context, product *ordering.Product, kind ordering.QuantityKind) error {
	stored, ok := r.products[product.ID]
	if !ok {
		return shared.ErrNotFound
	}
	switch kind {
	case ordering.QuantityPurchased:
		stored.AmountPurchased = product.AmountPurchased
	case ordering.QuantityReceived:
		stored.AmountReceived = product.AmountReceived
	case ordering.QuantityDelivered:
		stored.AmountDelivered = product.AmountDelivered
	default:
		return shared.NewDomainError("INVALID_KIND", "Unknown quantity kind")
	}
	stored.Status = product.Status
	stored.UpdatedAt = product.UpdatedAt
	return nil
}

type fakeOrderRepository struct {
	orders   map[uuid.UUID]*ordering.Order
	products *fakeProductRepository
}

func newFakeOrderRepository(products *fakeProductRepository) *fakeOrderRepository {
	return &fakeOrderRepository{
		orders:   make(map[uuid.UUID]*ordering.Order),
		products: products,
	}
}

func (r *fakeOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *order
	products, err := r.products.FindByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	cp.Products = products
	return &cp, nil
}

func (r *fakeOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*ordering.Order, error) {
	for id, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return r.FindByID(ctx, id)
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepository) FindAll(ctx context.Context, _ shared.Filter) ([]ordering.Order, error) {
	var result []ordering.Order
	for id := range r.orders {
		order, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	return result, nil
}

func (r *fakeOrderRepository) FindByClient(ctx context.Context, clientID uuid.UUID, _ shared.Filter) ([]ordering.Order, error) {
	var result []ordering.Order
	for id, order := range r.orders {
		if order.ClientID == clientID {
			found, err := r.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			result = append(result, *found)
		}
	}
	return result, nil
}

func (r *fakeOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	cp := *order
	cp.Products = nil
	r.orders[order.ID] = &cp
	for i := range order.Products {
		if err := r.products.Save(ctx, &order.Products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeOrderRepository) UpdateStatus(_ context.Context, order *ordering.Order) error {
	stored, ok := r.orders[order.ID]
	if !ok {
		return shared.ErrNotFound
	}
	stored.Status = order.Status
	stored.CompletedAt = order.CompletedAt
	stored.CancelledAt = order.CancelledAt
	stored.CancelReason = order.CancelReason
	stored.UpdatedAt = order.UpdatedAt
	stored.Version = order.Version
	return nil
}

func (r *fakeOrderRepository) UpdatePayment(_ context.Context, order *ordering.Order) error {
	stored, ok := r.orders[order.ID]
	if !ok {
		return shared.ErrNotFound
	}
	stored.ReceivedValue = order.ReceivedValue
	stored.PayStatus = order.PayStatus
	stored.UpdatedAt = order.UpdatedAt
	stored.Version = order.Version
	return nil
}

func (r *fakeOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepository) ExistsByOrderNumber(_ context.Context, orderNumber string) (bool, error) {
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOrderRepository) GenerateOrderNumber(_ context.Context) (string, error) {
	return fmt.Sprintf("PO-2026-%05d", len(r.orders)+1), nil
}

type fakePurchaseRecordRepository struct {
	records map[uuid.UUID]*fulfillment.PurchaseRecord
}

func newFakePurchaseRecordRepository() *fakePurchaseRecordRepository {
	return &fakePurchaseRecordRepository{records: make(map[uuid.UUID]*fulfillment.PurchaseRecord)}
}

func (r *fakePurchaseRecordRepository) FindByID(_ context.Context, id uuid.UUID) (*fulfillment.PurchaseRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *record
	return &cp, nil
}

func (r *fakePurchaseRecordRepository) FindByProduct(_ context.Context, productID uuid.UUID) ([]fulfillment.PurchaseRecord, error) {
	var result []fulfillment.PurchaseRecord
	for _, record := range r.records {
		if record.ProductID == productID {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (r *fakePurchaseRecordRepository) Save(_ context.Context, record *fulfillment.PurchaseRecord) error {
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *fakePurchaseRecordRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakePurchaseRecordRepository) SumEffectiveByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	for _, record := range r.records {
		if record.ProductID == productID {
			total += record.EffectiveAmount()
		}
	}
	return total, nil
}

type fakeReceptionRecordRepository struct {
	records map[uuid.UUID]*fulfillment.ReceptionRecord
}

func newFakeReceptionRecordRepository() *fakeReceptionRecordRepository {
	return &fakeReceptionRecordRepository{records: make(map[uuid.UUID]*fulfillment.ReceptionRecord)}
}

func (r *fakeReceptionRecordRepository) FindByID(_ context.Context, id uuid.UUID) (*fulfillment.ReceptionRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *record
	return &cp, nil
}

func (r *fakeReceptionRecordRepository) FindByProduct(_ context.Context, productID uuid.UUID) ([]fulfillment.ReceptionRecord, error) {
	var result []fulfillment.ReceptionRecord
	for _, record := range r.records {
		if record.ProductID == productID {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (r *fakeReceptionRecordRepository) Save(_ context.Context, record *fulfillment.ReceptionRecord) error {
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *fakeReceptionRecordRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeReceptionRecordRepository) SumByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	for _, record := range r.records {
		if record.ProductID == productID {
			total += record.Amount
		}
	}
	return total, nil
}

type fakeDeliveryRecordRepository struct {
	records map[uuid.UUID]*fulfillment.DeliveryRecord
}

func newFakeDeliveryRecordRepository() *fakeDeliveryRecordRepository {
	return &fakeDeliveryRecordRepository{records: make(map[uuid.UUID]*fulfillment.DeliveryRecord)}
}

func (r *fakeDeliveryRecordRepository) FindByID(_ context.Context, id uuid.UUID) (*fulfillment.DeliveryRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *record
	return &cp, nil
}

func (r *fakeDeliveryRecordRepository) FindByProduct(_ context.Context, productID uuid.UUID) ([]fulfillment.DeliveryRecord, error) {
	var result []fulfillment.DeliveryRecord
	for _, record := range r.records {
		if record.ProductID == productID {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (r *fakeDeliveryRecordRepository) FindByReceipt(_ context.Context, receiptID uuid.UUID) ([]fulfillment.DeliveryRecord, error) {
	var result []fulfillment.DeliveryRecord
	for _, record := range r.records {
		if record.ReceiptID != nil && *record.ReceiptID == receiptID {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (r *fakeDeliveryRecordRepository) Save(_ context.Context, record *fulfillment.DeliveryRecord) error {
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *fakeDeliveryRecordRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeDeliveryRecordRepository) SumByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	for _, record := range r.records {
		if record.ProductID == productID {
			total += record.Amount
		}
	}
	return total, nil
}

type fakeDeliveryReceiptRepository struct {
	receipts map[uuid.UUID]*fulfillment.DeliveryReceipt
}

func newFakeDeliveryReceiptRepository() *fakeDeliveryReceiptRepository {
	return &fakeDeliveryReceiptRepository{receipts: make(map[uuid.UUID]*fulfillment.DeliveryReceipt)}
}

func (r *fakeDeliveryReceiptRepository) FindByID(_ context.Context, id uuid.UUID) (*fulfillment.DeliveryReceipt, error) {
	receipt, ok := r.receipts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *receipt
	return &cp, nil
}

func (r *fakeDeliveryReceiptRepository) FindByReceiptNumber(_ context.Context, receiptNumber string) (*fulfillment.DeliveryReceipt, error) {
	for _, receipt := range r.receipts {
		if receipt.ReceiptNumber == receiptNumber {
			cp := *receipt
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDeliveryReceiptRepository) Save(_ context.Context, receipt *fulfillment.DeliveryReceipt) error {
	cp := *receipt
	r.receipts[receipt.ID] = &cp
	return nil
}

func (r *fakeDeliveryReceiptRepository) UpdatePayment(_ context.Context, receipt *fulfillment.DeliveryReceipt) error {
	stored, ok := r.receipts[receipt.ID]
	if !ok {
		return shared.ErrNotFound
	}
	stored.PaymentAmount = receipt.PaymentAmount
	stored.PayStatus = receipt.PayStatus
	stored.UpdatedAt = receipt.UpdatedAt
	stored.Version = receipt.Version
	return nil
}

func (r *fakeDeliveryReceiptRepository) GenerateReceiptNumber(_ context.Context) (string, error) {
	return fmt.Sprintf("DR-2026-%05d", len(r.receipts)+1), nil
}

// Interface compliance checks for the fakes
var _ ordering.OrderRepository = (*fakeOrderRepository)(nil)
var _ ordering.ProductRepository = (*fakeProductRepository)(nil)
var _ fulfillment.PurchaseRecordRepository = (*fakePurchaseRecordRepository)(nil)
var _ fulfillment.ReceptionRecordRepository = (*fakeReceptionRecordRepository)(nil)
var _ fulfillment.DeliveryRecordRepository = (*fakeDeliveryRecordRepository)(nil)
var _ fulfillment.DeliveryReceiptRepository = (*fakeDeliveryReceiptRepository)(nil)

// fulfillmentFixture wires the fakes into a NoOpTransactionScope and exposes
// the services under test.
type fulfillmentFixture struct {
	orders     *fakeOrderRepository
	products   *fakeProductRepository
	purchases  *fakePurchaseRecordRepository
	receptions *fakeReceptionRecordRepository
	deliveries *fakeDeliveryRecordRepository
	receipts   *fakeDeliveryReceiptRepository

	scope  *NoOpTransactionScope
	ledger *LedgerService

	purchaseService  *PurchaseService
	receptionService *ReceptionService
	deliveryService  *DeliveryService
}

func newFulfillmentFixture(t *testing.T) *fulfillmentFixture {
	t.Helper()

	products := newFakeProductRepository()
	f := &fulfillmentFixture{
		orders:     newFakeOrderRepository(products),
		products:   products,
		purchases:  newFakePurchaseRecordRepository(),
		receptions: newFakeReceptionRecordRepository(),
		deliveries: newFakeDeliveryRecordRepository(),
		receipts:   newFakeDeliveryReceiptRepository(),
	}
	f.scope = NewNoOpTransactionScope(f.orders, f.products, f.purchases, f.receptions, f.deliveries, f.receipts)
	f.ledger = NewLedgerService(zap.NewNop())
	f.purchaseService = NewPurchaseService(f.scope, f.ledger, zap.NewNop())
	f.receptionService = NewReceptionService(f.scope, f.ledger, zap.NewNop())
	f.deliveryService = NewDeliveryService(f.scope, f.ledger, zap.NewNop())

	return f
}

// seedOrder stores an order with one product requesting the given amount and
// returns both.
func (f *fulfillmentFixture) seedOrder(t *testing.T, requested int64) (*ordering.Order, *ordering.Product) {
	t.Helper()

	order, err := ordering.NewOrder(
		fmt.Sprintf("PO-2026-%05d", len(f.orders.orders)+1),
		uuid.New(), "Alice Chen")
	require.NoError(t, err)

	product, err := order.AddProduct("Wireless Headphones", requested,
		valueobject.NewMoneyUSDFromFloat(49.99), valueobject.ZeroUSD())
	require.NoError(t, err)

	require.NoError(t, f.orders.Save(context.Background(), order))
	order.ClearDomainEvents()

	return order, product
}
