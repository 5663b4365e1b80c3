package presence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	attendanceerrors "karma-manager/internal/attendance/errors"
	"karma-manager/internal/events"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const companyID = "5f7c2b0e-4c44-4a5e-9d6c-3d6f0a1b2c3d"

func newTestBoard(t *testing.T, now time.Time) (*Board, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	b := NewBoard(db, time.UTC, zap.NewNop())
	b.now = func() time.Time { return now }
	return b, mock
}

func entryJSON(t *testing.T, e Entry) string {
	t.Helper()
	raw, err := json.Marshal(e)
	require.NoError(t, err)
	return string(raw)
}

func TestBoard_ApplyIn(t *testing.T) {
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	b, mock := newTestBoard(t, in)

	key := "karma:" + companyID + ":presence:staff"
	want := entryJSON(t, Entry{PersonID: "p-1", PersonName: "Rina", Date: "2026-03-02", InTime: in})
	mock.ExpectHSet(key, "p-1", want).SetVal(1)

	err := b.Apply(context.Background(), events.PunchRecordedEvent{
		CompanyID:  companyID,
		Kind:       "staff",
		PersonID:   "p-1",
		PersonName: "Rina",
		Direction:  "in",
		Date:       "2026-03-02",
		InTime:     &in,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoard_ApplyOut(t *testing.T) {
	b, mock := newTestBoard(t, time.Now())

	key := "karma:" + companyID + ":presence:student"
	mock.ExpectHDel(key, "p-2").SetVal(1)

	err := b.Apply(context.Background(), events.PunchRecordedEvent{
		CompanyID: companyID,
		Kind:      "student",
		PersonID:  "p-2",
		Direction: "out",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoard_ApplyRejectsBadEvents(t *testing.T) {
	b, mock := newTestBoard(t, time.Now())

	cases := []struct {
		name string
		evt  events.PunchRecordedEvent
		want error
	}{
		{"bad kind", events.PunchRecordedEvent{CompanyID: companyID, Kind: "guest", PersonID: "p", Direction: "in"}, attendanceerrors.ErrInvalidKind},
		{"no person", events.PunchRecordedEvent{CompanyID: companyID, Kind: "staff", Direction: "in"}, attendanceerrors.ErrEmptyPersonID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, b.Apply(context.Background(), tc.evt), tc.want)
		})
	}

	err := b.Apply(context.Background(), events.PunchRecordedEvent{CompanyID: companyID, Kind: "staff", PersonID: "p", Direction: "sideways"})
	assert.ErrorContains(t, err, "unknown direction")

	err = b.Apply(context.Background(), events.PunchRecordedEvent{CompanyID: companyID, Kind: "staff", PersonID: "p", Direction: "in"})
	assert.ErrorContains(t, err, "no in_time")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoard_ListSortsAndPrunes(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	b, mock := newTestBoard(t, now)
	key := "karma:" + companyID + ":presence:staff"

	early := Entry{PersonID: "p-early", Date: "2026-03-02", InTime: now.Add(-4 * time.Hour)}
	late := Entry{PersonID: "p-late", Date: "2026-03-02", InTime: now.Add(-1 * time.Hour)}
	yesterday := Entry{PersonID: "p-old", Date: "2026-03-01", InTime: now.Add(-26 * time.Hour)}

	mock.ExpectHGetAll(key).SetVal(map[string]string{
		"p-late":  entryJSON(t, late),
		"p-early": entryJSON(t, early),
		"p-old":   entryJSON(t, yesterday),
		"p-junk":  "{not json",
	})
	mock.ExpectHDel(key, "p-junk", "p-old").SetVal(2)

	entries, err := b.List(context.Background(), companyID, "staff")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p-early", entries[0].PersonID)
	assert.Equal(t, "p-late", entries[1].PersonID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoard_ListErrors(t *testing.T) {
	b, mock := newTestBoard(t, time.Now())

	_, err := b.List(context.Background(), "", "staff")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidCompanyID)

	_, err = b.List(context.Background(), companyID, "guest")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidKind)

	mock.ExpectHGetAll("karma:" + companyID + ":presence:staff").SetErr(errors.New("redis down"))
	_, err = b.List(context.Background(), companyID, "staff")
	assert.EqualError(t, err, "redis down")
	assert.NoError(t, mock.ExpectationsWereMet())
}
