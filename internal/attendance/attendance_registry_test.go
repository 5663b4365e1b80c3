package attendance_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"karma-manager/internal/attendance"
	attendanceMock "karma-manager/internal/attendance/mock"
	"karma-manager/internal/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestRegistry_LoadsEachLedgerOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := attendanceMock.NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any(), "karma:co-1:attendance:staff").Return(nil, nil).Times(1)
	store.EXPECT().Load(gomock.Any(), "karma:co-1:attendance:student").Return(nil, nil).Times(1)
	store.EXPECT().Load(gomock.Any(), "karma:co-2:attendance:staff").Return(nil, nil).Times(1)

	reg := attendance.NewRegistry[staff](store, nil, attendance.WithLogger(zap.NewNop()))

	var wg sync.WaitGroup
	ledgers := make([]*attendance.Ledger[staff], 20)
	for i := range ledgers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ledgers[i] = reg.Ledger(context.Background(), tenant.Context{CompanyID: "co-1"}, attendance.KindStaff)
		}(i)
	}
	wg.Wait()

	for _, l := range ledgers {
		assert.Same(t, ledgers[0], l)
	}

	student := reg.Ledger(context.Background(), tenant.Context{CompanyID: "co-1"}, attendance.KindStudent)
	other := reg.Ledger(context.Background(), tenant.Context{CompanyID: "co-2"}, attendance.KindStaff)
	assert.NotSame(t, ledgers[0], student)
	assert.NotSame(t, ledgers[0], other)
	assert.Equal(t, "co-2", other.Tenant().CompanyID)
	assert.Equal(t, 3, reg.Len())
}

func TestRegistry_TenantsAreIsolated(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	store := attendance.NewMemoryStore()
	reg := attendance.NewRegistry[staff](store, nil,
		attendance.WithClock(clock.Now),
		attendance.WithLocation(time.UTC),
		attendance.WithLogger(zap.NewNop()),
	)
	ctx := context.Background()

	a := reg.Ledger(ctx, tenant.Context{CompanyID: "co-a"}, attendance.KindStaff)
	b := reg.Ledger(ctx, tenant.Context{CompanyID: "co-b"}, attendance.KindStaff)

	_, _ = a.RecordPunch(ctx, staff{id: "E-1"})
	dir, _ := b.RecordPunch(ctx, staff{id: "E-1"})

	assert.Equal(t, attendance.DirectionIn, dir)
	assert.Len(t, a.ListRecords(), 1)
	assert.Len(t, b.ListRecords(), 1)
	_, ok := store.Raw("karma:co-a:attendance:staff")
	assert.True(t, ok)
	_, ok = store.Raw("karma:co-b:attendance:staff")
	assert.True(t, ok)
}

func TestRegistry_SharesHub(t *testing.T) {
	hub := attendance.NewHub()
	reg := attendance.NewRegistry[staff](nil, hub, attendance.WithLogger(zap.NewNop()))
	sub := reg.Hub().Subscribe(4)
	defer sub.Close()

	ledger := reg.Ledger(context.Background(), tenant.Context{CompanyID: "co-1"}, attendance.KindStudent)
	_, _ = ledger.RecordPunch(context.Background(), staff{id: "S-1"})

	evt := <-sub.Events()
	assert.Equal(t, attendance.KindStudent, evt.Kind)
	assert.Same(t, hub, reg.Hub())
}

// flakyStore fails the first failLoads calls to Load.
type flakyStore struct {
	*attendance.MemoryStore
	mu        sync.Mutex
	failLoads int
}

func (s *flakyStore) Load(ctx context.Context, key string) ([]attendance.PunchRecord, error) {
	s.mu.Lock()
	fail := s.failLoads > 0
	if fail {
		s.failLoads--
	}
	s.mu.Unlock()
	if fail {
		return nil, errors.New("i/o timeout")
	}
	return s.MemoryStore.Load(ctx, key)
}

func TestRegistry_FailedLoadDoesNotOverwriteHistory(t *testing.T) {
	clock := &fakeClock{now: at("2024-05-01", "09:00:00")}
	opts := []attendance.Option{
		attendance.WithClock(clock.Now),
		attendance.WithLocation(time.UTC),
		attendance.WithLogger(zap.NewNop()),
	}
	ctx := context.Background()
	tc := tenant.Context{CompanyID: "co-1"}
	key := tc.StorageKey(string(attendance.KindStaff))

	store := &flakyStore{MemoryStore: attendance.NewMemoryStore()}
	earlier := attendance.NewRegistry[staff](store, nil, opts...)
	for _, id := range []string{"E-1", "E-2", "E-3"} {
		_, err := earlier.Ledger(ctx, tc, attendance.KindStaff).RecordPunch(ctx, staff{id: id})
		require.NoError(t, err)
	}

	store.failLoads = 1
	reg := attendance.NewRegistry[staff](store, nil, opts...)

	ledger := reg.Ledger(ctx, tc, attendance.KindStaff)
	assert.False(t, ledger.Loaded())
	_, err := ledger.RecordPunch(ctx, staff{id: "E-4"})
	require.NoError(t, err)

	persisted, err := store.MemoryStore.Load(ctx, key)
	require.NoError(t, err)
	assert.Len(t, persisted, 3, "stored history must survive a failed load")

	again := reg.Ledger(ctx, tc, attendance.KindStaff)
	assert.Same(t, ledger, again)
	assert.True(t, again.Loaded())
	assert.Len(t, again.ListRecords(), 4)

	persisted, err = store.MemoryStore.Load(ctx, key)
	require.NoError(t, err)
	assert.Len(t, persisted, 4)
	assert.Len(t, recordsFor(persisted, "E-4", "2024-05-01"), 1)
}

func TestRegistry_ReloadKeepsFailingUntilStoreRecovers(t *testing.T) {
	store := &flakyStore{MemoryStore: attendance.NewMemoryStore(), failLoads: 3}
	reg := attendance.NewRegistry[staff](store, nil, attendance.WithLogger(zap.NewNop()))
	ctx := context.Background()
	tc := tenant.Context{CompanyID: "co-1"}

	assert.False(t, reg.Ledger(ctx, tc, attendance.KindStaff).Loaded())
	assert.False(t, reg.Ledger(ctx, tc, attendance.KindStaff).Loaded())
	assert.False(t, reg.Ledger(ctx, tc, attendance.KindStaff).Loaded())
	assert.True(t, reg.Ledger(ctx, tc, attendance.KindStaff).Loaded())
	assert.Equal(t, 1, reg.Len())
}
