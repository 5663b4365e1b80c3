package attendance_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"karma-manager/internal/attendance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const storeKey = "karma:co-1:attendance:staff"

func sampleRecords() []attendance.PunchRecord {
	in := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	out := time.Date(2024, 5, 1, 17, 30, 0, 0, time.UTC)
	return []attendance.PunchRecord{
		{PersonID: "E-1", Date: "2024-05-01", InTime: &in, OutTime: &out},
		{PersonID: "E-2", Date: "2024-05-01", InTime: &in},
	}
}

func TestMemoryStore(t *testing.T) {
	store := attendance.NewMemoryStore()
	ctx := context.Background()

	records, err := store.Load(ctx, storeKey)
	require.NoError(t, err)
	assert.Nil(t, records)

	require.NoError(t, store.Save(ctx, storeKey, sampleRecords()))
	records, err = store.Load(ctx, storeKey)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), records)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, store.Save(canceled, storeKey, nil), context.Canceled)
}

func TestRedisStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := attendance.NewRedisStore(db)
	ctx := context.Background()

	payload, err := attendance.EncodeRecords(sampleRecords())
	require.NoError(t, err)

	mock.ExpectSet(storeKey, payload, 0).SetVal("OK")
	require.NoError(t, store.Save(ctx, storeKey, sampleRecords()))

	mock.ExpectGet(storeKey).SetVal(string(payload))
	records, err := store.Load(ctx, storeKey)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), records)

	mock.ExpectGet("karma:co-2:attendance:staff").RedisNil()
	records, err = store.Load(ctx, "karma:co-2:attendance:staff")
	require.NoError(t, err)
	assert.Nil(t, records)

	mock.ExpectGet(storeKey).SetErr(errors.New("redis down"))
	_, err = store.Load(ctx, storeKey)
	assert.EqualError(t, err, "redis down")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore(t *testing.T) {
	store, err := attendance.OpenSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	records, err := store.Load(ctx, storeKey)
	require.NoError(t, err)
	assert.Nil(t, records)

	require.NoError(t, store.Save(ctx, storeKey, sampleRecords()[:1]))
	require.NoError(t, store.Save(ctx, storeKey, sampleRecords()))

	records, err = store.Load(ctx, storeKey)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), records)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	store, err := attendance.OpenSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	ledger := newLedger(t, store, clock)
	_, err = ledger.RecordPunch(context.Background(), staff{id: "E-1"})
	require.NoError(t, err)

	reopened := newLedger(t, store, clock)
	assert.Equal(t, ledger.ListRecords(), reopened.ListRecords())
}

func TestOpenSQLiteStore_RequiresPath(t *testing.T) {
	_, err := attendance.OpenSQLiteStore("  ")
	assert.Error(t, err)
}

func newGormStore(t *testing.T) (*attendance.GormStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db, PreferSimpleProtocol: true}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return attendance.NewGormStore(gdb), mock
}

func TestGormStore_Save(t *testing.T) {
	store, mock := newGormStore(t)

	payload, err := attendance.EncodeRecords(sampleRecords())
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "attendance_ledgers" (.+) ON CONFLICT \("storage_key"\) DO UPDATE SET`).
		WithArgs(storeKey, string(payload), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save(context.Background(), storeKey, sampleRecords()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Load(t *testing.T) {
	store, mock := newGormStore(t)

	payload, err := attendance.EncodeRecords(sampleRecords())
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "attendance_ledgers" WHERE storage_key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "payload", "updated_at"}).
			AddRow(storeKey, string(payload), time.Now()))

	records, err := store.Load(context.Background(), storeKey)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), records)

	mock.ExpectQuery(`SELECT \* FROM "attendance_ledgers" WHERE storage_key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "payload", "updated_at"}))

	records, err = store.Load(context.Background(), "karma:co-2:attendance:staff")
	require.NoError(t, err)
	assert.Nil(t, records)

	assert.NoError(t, mock.ExpectationsWereMet())
}
