package presence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"karma-manager/internal/attendance"
	"karma-manager/internal/events"
	"karma-manager/internal/presence"
	"karma-manager/internal/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeApplier struct {
	got []events.PunchRecordedEvent
	err error
}

func (f *fakeApplier) Apply(_ context.Context, evt events.PunchRecordedEvent) error {
	f.got = append(f.got, evt)
	return f.err
}

func TestFeedFromLedger_CarriesPersonName(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	ledger := attendance.NewLedger[attendance.Member](
		context.Background(),
		tenant.Context{CompanyID: "co-1"},
		attendance.KindStaff,
		attendance.NewMemoryStore(),
		attendance.WithClock(func() time.Time { return now }),
		attendance.WithLocation(time.UTC),
		attendance.WithLogger(zap.NewNop()),
	)
	sub := ledger.Subscribe(1)
	defer sub.Close()

	_, err := ledger.RecordPunch(context.Background(), attendance.Member{ID: "E-1", Name: "Rina", Kind: attendance.KindStaff})
	require.NoError(t, err)

	applier := &fakeApplier{}
	feed := presence.FeedFromLedger(applier, zap.NewNop())
	feed(context.Background(), <-sub.Events())

	require.Len(t, applier.got, 1)
	got := applier.got[0]
	assert.Equal(t, "Rina", got.PersonName)
	assert.Equal(t, "E-1", got.PersonID)
	assert.Equal(t, "co-1", got.CompanyID)
	assert.Equal(t, "staff", got.Kind)
	assert.Equal(t, "in", got.Direction)
	assert.Equal(t, events.PunchRecordedEventType, got.EventType)
}

func TestFeedFromLedger_ApplyErrorIsSwallowed(t *testing.T) {
	applier := &fakeApplier{err: errors.New("redis down")}
	feed := presence.FeedFromLedger(applier, zap.NewNop())

	assert.NotPanics(t, func() {
		feed(context.Background(), attendance.PunchEvent{CompanyID: "co-1", Kind: attendance.KindStaff})
	})
	assert.Len(t, applier.got, 1)
}
