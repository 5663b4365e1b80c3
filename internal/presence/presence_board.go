// Package presence keeps a per-tenant board of who is currently punched in.
package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"karma-manager/internal/attendance"
	attendanceerrors "karma-manager/internal/attendance/errors"
	"karma-manager/internal/events"
	"karma-manager/internal/tenant"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Entry struct {
	PersonID   string    `json:"person_id"`
	PersonName string    `json:"person_name,omitempty"`
	Date       string    `json:"date"`
	InTime     time.Time `json:"in_time"`
}

// Board stores one redis hash per tenant and kind, field = person id.
type Board struct {
	rdb    redis.Cmdable
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewBoard(rdb redis.Cmdable, loc *time.Location, logger *zap.Logger) *Board {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Board{
		rdb:    rdb,
		loc:    loc,
		now:    time.Now,
		logger: logger.Named("presence.board"),
	}
}

// Apply marks the person present on an in-punch and clears them on an
// out-punch. Replaying the same event is harmless.
func (b *Board) Apply(ctx context.Context, evt events.PunchRecordedEvent) error {
	tc, err := tenant.New(evt.CompanyID)
	if err != nil {
		return err
	}
	kind, ok := attendance.ParseKind(evt.Kind)
	if !ok {
		return attendanceerrors.ErrInvalidKind
	}
	if evt.PersonID == "" {
		return attendanceerrors.ErrEmptyPersonID
	}
	key := tc.PresenceKey(string(kind))

	switch attendance.Direction(evt.Direction) {
	case attendance.DirectionIn:
		if evt.InTime == nil {
			return fmt.Errorf("presence: in-punch for %s has no in_time", evt.PersonID)
		}
		payload, err := json.Marshal(Entry{
			PersonID:   evt.PersonID,
			PersonName: evt.PersonName,
			Date:       evt.Date,
			InTime:     *evt.InTime,
		})
		if err != nil {
			return err
		}
		return b.rdb.HSet(ctx, key, evt.PersonID, string(payload)).Err()
	case attendance.DirectionOut:
		return b.rdb.HDel(ctx, key, evt.PersonID).Err()
	default:
		return fmt.Errorf("presence: unknown direction %q", evt.Direction)
	}
}

// List returns who is in today, earliest arrival first. Entries left over
// from previous days are skipped and pruned.
func (b *Board) List(ctx context.Context, companyID, kind string) ([]Entry, error) {
	tc, err := tenant.New(companyID)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidCompanyID
	}
	k, ok := attendance.ParseKind(kind)
	if !ok {
		return nil, attendanceerrors.ErrInvalidKind
	}
	key := tc.PresenceKey(string(k))

	raw, err := b.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	today := b.now().In(b.loc).Format(attendance.DateLayout)
	entries := make([]Entry, 0, len(raw))
	var stale []string
	for field, value := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(value), &e); err != nil {
			b.logger.Warn("dropping unreadable presence entry", zap.String("key", key), zap.String("person_id", field), zap.Error(err))
			stale = append(stale, field)
			continue
		}
		if e.Date != today {
			stale = append(stale, field)
			continue
		}
		entries = append(entries, e)
	}

	if len(stale) > 0 {
		sort.Strings(stale)
		if err := b.rdb.HDel(ctx, key, stale...).Err(); err != nil {
			b.logger.Warn("prune presence entries failed", zap.String("key", key), zap.Error(err))
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].InTime.Equal(entries[j].InTime) {
			return entries[i].PersonID < entries[j].PersonID
		}
		return entries[i].InTime.Before(entries[j].InTime)
	})
	return entries, nil
}
