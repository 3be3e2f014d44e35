package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crossbuy/backend/internal/domain/ordering"
	"github.com/crossbuy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("finds existing order with products preloaded", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		clientID := uuid.New()

		orderRows := sqlmock.NewRows([]string{"id", "version", "order_number", "client_id", "client_name", "status", "pay_status", "received_value"}).
			AddRow(orderID, 1, "PO-2026-00001", clientID, "Alice Chen", "CREATED", "UNPAID", decimal.Zero)

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE "products"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

		order, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, "PO-2026-00001", order.OrderNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByID(context.Background(), orderID)

		assert.Error(t, err)
		assert.Nil(t, order)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_UpdatePayment(t *testing.T) {
	t.Run("updates payment fields", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		order, err := ordering.NewOrder("PO-2026-00001", uuid.New(), "Alice Chen")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePayment(context.Background(), order))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no rows affected", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		order, err := ordering.NewOrder("PO-2026-00001", uuid.New(), "Alice Chen")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.UpdatePayment(context.Background(), order)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	t.Run("updates status transition fields", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		order, err := ordering.NewOrder("PO-2026-00001", uuid.New(), "Alice Chen")
		require.NoError(t, err)
		require.NoError(t, order.StartProcessing())

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), order))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_Delete(t *testing.T) {
	t.Run("deletes existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectExec(`DELETE FROM "orders" WHERE id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), orderID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectExec(`DELETE FROM "orders" WHERE id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), orderID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_ExistsByOrderNumber(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE order_number = \$1`).
		WithArgs("PO-2026-00001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByOrderNumber(context.Background(), "PO-2026-00001")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	prefix := fmt.Sprintf("PO-%d-", time.Now().Year())

	t.Run("starts at one when no orders exist", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number LIKE \$1 ORDER BY order_number DESC`).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE order_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		orderNumber, err := repo.GenerateOrderNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"00001", orderNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments the highest existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "order_number"}).
			AddRow(uuid.New(), prefix+"00041")

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number LIKE \$1 ORDER BY order_number DESC`).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE order_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		orderNumber, err := repo.GenerateOrderNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"00042", orderNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips over a taken number", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "order_number"}).
			AddRow(uuid.New(), prefix+"00041")

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number LIKE \$1 ORDER BY order_number DESC`).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE order_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE order_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		orderNumber, err := repo.GenerateOrderNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"00043", orderNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
