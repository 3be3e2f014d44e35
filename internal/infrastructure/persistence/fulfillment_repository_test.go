package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/crossbuy/backend/internal/domain/fulfillment"
	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/crossbuy/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appfulfillment "github.com/crossbuy/backend/internal/application/fulfillment"
)

func setupFulfillmentTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&ordering.Order{},
		&ordering.Product{},
		&fulfillment.PurchaseRecord{},
		&fulfillment.ReceptionRecord{},
		&fulfillment.DeliveryRecord{},
		&fulfillment.DeliveryReceipt{},
	)
	require.NoError(t, err)

	return db
}

func savePurchase(t *testing.T, repo *GormPurchaseRecordRepository, productID uuid.UUID, amount int64) *fulfillment.PurchaseRecord {
	t.Helper()

	record, err := fulfillment.NewPurchaseRecord(productID, uuid.New(), "Taobao Shop",
		amount, valueobject.ZeroUSD())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), record))

	return record
}

func TestGormPurchaseRecordRepository_SumEffectiveByProduct(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormPurchaseRecordRepository(db)
	ctx := context.Background()
	productID := uuid.New()

	t.Run("returns zero for unknown product", func(t *testing.T) {
		total, err := repo.SumEffectiveByProduct(ctx, productID)

		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("excludes refunded units from the sum", func(t *testing.T) {
		savePurchase(t, repo, productID, 5)

		partial := savePurchase(t, repo, productID, 4)
		require.NoError(t, partial.Refund(1))
		require.NoError(t, repo.Save(ctx, partial))

		full := savePurchase(t, repo, productID, 3)
		require.NoError(t, full.RefundAll())
		require.NoError(t, repo.Save(ctx, full))

		// Unrelated product must not leak into the sum
		savePurchase(t, repo, uuid.New(), 7)

		total, err := repo.SumEffectiveByProduct(ctx, productID)

		require.NoError(t, err)
		assert.Equal(t, int64(8), total)
	})

	t.Run("deletion removes the record from the sum", func(t *testing.T) {
		record := savePurchase(t, repo, productID, 2)

		total, err := repo.SumEffectiveByProduct(ctx, productID)
		require.NoError(t, err)
		require.Equal(t, int64(10), total)

		require.NoError(t, repo.Delete(ctx, record.ID))

		total, err = repo.SumEffectiveByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(8), total)
	})
}

func TestGormReceptionRecordRepository(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormReceptionRecordRepository(db)
	ctx := context.Background()
	productID := uuid.New()

	t.Run("sums received units per product", func(t *testing.T) {
		for _, amount := range []int64{4, 6} {
			record, err := fulfillment.NewReceptionRecord(productID, amount, nil)
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, record))
		}

		total, err := repo.SumByProduct(ctx, productID)

		require.NoError(t, err)
		assert.Equal(t, int64(10), total)
	})

	t.Run("finds records by product", func(t *testing.T) {
		records, err := repo.FindByProduct(ctx, productID)

		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("returns not found for missing record", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormDeliveryRecordRepository(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormDeliveryRecordRepository(db)
	ctx := context.Background()
	productID := uuid.New()
	receiptID := uuid.New()

	t.Run("sums delivered units per product", func(t *testing.T) {
		first, err := fulfillment.NewDeliveryRecord(productID, 8, &receiptID)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, first))

		second, err := fulfillment.NewDeliveryRecord(productID, 2, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, second))

		total, err := repo.SumByProduct(ctx, productID)

		require.NoError(t, err)
		assert.Equal(t, int64(10), total)
	})

	t.Run("finds records attached to a receipt", func(t *testing.T) {
		records, err := repo.FindByReceipt(ctx, receiptID)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(8), records[0].Amount)
	})
}

func TestGormDeliveryReceiptRepository(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormDeliveryReceiptRepository(db)
	ctx := context.Background()
	prefix := fmt.Sprintf("DR-%d-", time.Now().Year())

	t.Run("generates sequential receipt numbers", func(t *testing.T) {
		first, err := repo.GenerateReceiptNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, prefix+"00001", first)

		receipt, err := fulfillment.NewDeliveryReceipt(first, uuid.New(),
			valueobject.NewMoneyUSDFromFloat(25))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, receipt))

		second, err := repo.GenerateReceiptNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, prefix+"00002", second)
	})

	t.Run("finds receipt by number", func(t *testing.T) {
		found, err := repo.FindByReceiptNumber(ctx, prefix+"00001")

		require.NoError(t, err)
		assert.Equal(t, prefix+"00001", found.ReceiptNumber)
	})

	t.Run("persists payment fields", func(t *testing.T) {
		found, err := repo.FindByReceiptNumber(ctx, prefix+"00001")
		require.NoError(t, err)
		require.True(t, found.AddPayment(decimal.NewFromInt(25)))

		require.NoError(t, repo.UpdatePayment(ctx, found))

		reloaded, err := repo.FindByID(ctx, found.ID)
		require.NoError(t, err)
		assert.Equal(t, valueobject.PayStatusPaid, reloaded.PayStatus)
		assert.True(t, reloaded.PaymentAmount.Equal(decimal.NewFromInt(25)))
	})

	t.Run("update payment fails for missing receipt", func(t *testing.T) {
		ghost, err := fulfillment.NewDeliveryReceipt(prefix+"09999", uuid.New(), valueobject.ZeroUSD())
		require.NoError(t, err)

		err = repo.UpdatePayment(ctx, ghost)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormProductRepository_UpdateQuantities(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product, err := ordering.NewProduct(uuid.New(), "Wireless Headphones", 10,
		valueobject.NewMoneyUSDFromFloat(49.99), valueobject.ZeroUSD())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	t.Run("persists only the matching amount column", func(t *testing.T) {
		require.NoError(t, product.ApplyQuantityTotal(ordering.QuantityPurchased, 10))
		require.NoError(t, repo.UpdateQuantities(ctx, product, ordering.QuantityPurchased))

		reloaded, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), reloaded.AmountPurchased)
		assert.Equal(t, ordering.ProductStatusPurchased, reloaded.Status)
		assert.Equal(t, int64(0), reloaded.AmountReceived)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		err := repo.UpdateQuantities(ctx, product, ordering.QuantityKind("LOST"))

		assert.Error(t, err)
	})

	t.Run("returns not found for missing product", func(t *testing.T) {
		ghost, err := ordering.NewProduct(uuid.New(), "Ghost", 1,
			valueobject.ZeroUSD(), valueobject.ZeroUSD())
		require.NoError(t, err)

		err = repo.UpdateQuantities(ctx, ghost, ordering.QuantityPurchased)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormTransactionScope(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	productID := uuid.New()

	t.Run("rolls back on error", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos appfulfillment.TransactionalRepositories) error {
			record, err := fulfillment.NewReceptionRecord(productID, 5, nil)
			require.NoError(t, err)
			if err := repos.ReceptionRecords().Save(ctx, record); err != nil {
				return err
			}
			return errors.New("force rollback")
		})
		require.Error(t, err)

		total, err := NewGormReceptionRecordRepository(db).SumByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("commits on success", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos appfulfillment.TransactionalRepositories) error {
			record, err := fulfillment.NewReceptionRecord(productID, 5, nil)
			if err != nil {
				return err
			}
			return repos.ReceptionRecords().Save(ctx, record)
		})
		require.NoError(t, err)

		total, err := NewGormReceptionRecordRepository(db).SumByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})
}
