package localstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/DevNutsPk/demoEcommerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return New(db, "guest_cart:dev-1"), mock
}

func TestLoadReturnsPersistedItems(t *testing.T) {
	store, mock := newMockStore(t)

	payload := `[{"local_id":"l1","product_id":"p1","variant":{"size":"M"},"quantity":3}]`
	rows := sqlmock.NewRows([]string{"storage_key", "payload", "updated_at"}).
		AddRow("guest_cart:dev-1", payload, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM "guest_cart_records"`).WillReturnRows(rows)

	items := store.Load(context.Background())

	require.Len(t, items, 1)
	assert.Equal(t, "l1", items[0].LocalID)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, map[string]string{"size": "M"}, items[0].Variant)
	assert.Equal(t, 3, items[0].Quantity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadAbsentRecordIsEmptyCart(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM "guest_cart_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "payload", "updated_at"}))

	items := store.Load(context.Background())

	assert.NotNil(t, items)
	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadFailsSoftOnCorruptPayload(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"storage_key", "payload", "updated_at"}).
		AddRow("guest_cart:dev-1", "{not json", time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM "guest_cart_records"`).WillReturnRows(rows)

	items := store.Load(context.Background())

	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadFailsSoftOnUnavailableStore(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM "guest_cart_records"`).
		WillReturnError(errors.New("connection refused"))

	items := store.Load(context.Background())

	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveOverwritesRecordInFull(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "guest_cart_records"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Save(context.Background(), []models.CartLineItem{
		{LocalID: "l1", ProductID: "p1", Quantity: 2},
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSurfacesWriteFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "guest_cart_records"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.Save(context.Background(), []models.CartLineItem{
		{LocalID: "l1", ProductID: "p1", Quantity: 2},
	})

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClearIsIdempotent(t *testing.T) {
	store, mock := newMockStore(t)

	// Clearing an already-empty store reports zero rows and no error.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "guest_cart_records"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, store.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
