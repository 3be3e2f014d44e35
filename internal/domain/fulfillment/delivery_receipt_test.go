package fulfillment

import (
	"testing"

	"github.com/crossbuy/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDeliveryReceipt(t *testing.T, cost float64) *DeliveryReceipt {
	t.Helper()

	receipt, err := NewDeliveryReceipt("DR-2026-00001", uuid.New(),
		valueobject.NewMoneyUSDFromFloat(cost))
	require.NoError(t, err)

	return receipt
}

func TestNewDeliveryReceipt(t *testing.T) {
	t.Run("creates receipt successfully", func(t *testing.T) {
		receipt := createTestDeliveryReceipt(t, 25)

		assert.Equal(t, "DR-2026-00001", receipt.ReceiptNumber)
		assert.Equal(t, valueobject.PayStatusUnpaid, receipt.PayStatus)
		assert.True(t, receipt.PaymentAmount.IsZero())
	})

	t.Run("zero-cost receipt starts unpaid rather than paid", func(t *testing.T) {
		receipt := createTestDeliveryReceipt(t, 0)

		assert.Equal(t, valueobject.PayStatusUnpaid, receipt.PayStatus)
	})

	t.Run("fails with empty receipt number", func(t *testing.T) {
		_, err := NewDeliveryReceipt("", uuid.New(), valueobject.ZeroUSD())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Receipt number")
	})

	t.Run("fails with negative cost", func(t *testing.T) {
		_, err := NewDeliveryReceipt("DR-2026-00001", uuid.New(),
			valueobject.NewMoneyUSDFromFloat(-1))

		assert.Error(t, err)
	})
}

func TestDeliveryReceiptAddPayment(t *testing.T) {
	t.Run("accumulates payments toward paid", func(t *testing.T) {
		receipt := createTestDeliveryReceipt(t, 25)

		assert.True(t, receipt.AddPayment(decimal.NewFromInt(10)))
		assert.Equal(t, valueobject.PayStatusPartial, receipt.PayStatus)

		assert.True(t, receipt.AddPayment(decimal.NewFromInt(15)))
		assert.Equal(t, valueobject.PayStatusPaid, receipt.PayStatus)
		assert.True(t, receipt.PaymentAmount.Equal(decimal.NewFromInt(25)))
	})

	t.Run("ignores non-positive amounts", func(t *testing.T) {
		receipt := createTestDeliveryReceipt(t, 25)

		assert.False(t, receipt.AddPayment(decimal.Zero))
		assert.False(t, receipt.AddPayment(decimal.NewFromInt(-5)))
		assert.True(t, receipt.PaymentAmount.IsZero())
		assert.Equal(t, valueobject.PayStatusUnpaid, receipt.PayStatus)
	})
}

func TestDeliveryReceiptSetCost(t *testing.T) {
	t.Run("reclassifies pay status when cost drops", func(t *testing.T) {
		receipt := createTestDeliveryReceipt(t, 50)
		require.True(t, receipt.AddPayment(decimal.NewFromInt(30)))
		require.Equal(t, valueobject.PayStatusPartial, receipt.PayStatus)

		require.NoError(t, receipt.SetCost(valueobject.NewMoneyUSDFromFloat(30)))

		assert.Equal(t, valueobject.PayStatusPaid, receipt.PayStatus)
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		receipt := createTestDeliveryReceipt(t, 50)

		err := receipt.SetCost(valueobject.NewMoneyUSDFromFloat(-1))

		assert.Error(t, err)
	})
}
