package kvstore

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockGormStore skips AutoMigrate; the migrator's catalog queries are not
// what these tests are about.
func newMockGormStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return &GormStore{db: db}, mock
}

func TestGormStore_Get(t *testing.T) {
	store, mock := newMockGormStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "kv_entries" WHERE entry_key = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"entry_key", "value", "updated_at"}).
			AddRow("inventory_products", []byte(`[]`), time.Now()))

	got, err := store.Get(ctx, "inventory_products")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "kv_entries" WHERE entry_key = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"entry_key", "value", "updated_at"}))

	_, err = store.Get(ctx, "inventory_transactions")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SetUpserts(t *testing.T) {
	store, mock := newMockGormStore(t)

	mock.ExpectExec(`INSERT INTO "kv_entries" .* ON CONFLICT \("entry_key"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "inventory_products", []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Remove(t *testing.T) {
	store, mock := newMockGormStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "kv_entries" WHERE entry_key = $1`)).
		WithArgs("inventory_products").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Remove(context.Background(), "inventory_products"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
