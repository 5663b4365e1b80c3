package attendance

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	attendanceerrors "karma-manager/internal/attendance/errors"
	"karma-manager/internal/tenant"

	"go.uber.org/zap"
)

type options struct {
	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger
	seed   []PunchRecord
	hub    *Hub
}

type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLocation sets the timezone that decides the calendar day of a punch.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSeed sets the records used when the store holds nothing or fails to load.
func WithSeed(records []PunchRecord) Option {
	return func(o *options) { o.seed = records }
}

// WithHub publishes punches to an existing hub instead of a private one.
func WithHub(hub *Hub) Option {
	return func(o *options) { o.hub = hub }
}

// Ledger holds one tenant's punch records for one kind of person.
//
// Mutations are serialized: each RecordPunch sees the effect of the previous
// one. The record list is replaced as a whole on every punch, so ListRecords
// never observes a half-applied update.
type Ledger[P Identifiable] struct {
	tenant tenant.Context
	kind   Kind
	key    string
	store  Store
	hub    *Hub
	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger

	mu      sync.RWMutex
	records []PunchRecord
	// false while the persisted list could not be read; saves are held back
	// so the stored history is not overwritten by a partial list
	loaded bool
}

// NewLedger builds the ledger for tc/kind and loads its persisted records.
// A failed or corrupt load is logged and the ledger starts from the seed.
// After a failed read (as opposed to corrupt data) the ledger does not save
// until Reload succeeds.
func NewLedger[P Identifiable](ctx context.Context, tc tenant.Context, kind Kind, store Store, opts ...Option) *Ledger[P] {
	o := options{
		now: time.Now,
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.L()
	}
	if o.hub == nil {
		o.hub = NewHub()
	}
	if store == nil {
		store = NewMemoryStore()
	}

	l := &Ledger[P]{
		tenant: tc,
		kind:   kind,
		key:    tc.StorageKey(string(kind)),
		store:  store,
		hub:    o.hub,
		now:    o.now,
		loc:    o.loc,
		logger: o.logger.Named("attendance.ledger").With(
			zap.String("company_id", tc.CompanyID),
			zap.String("kind", string(kind)),
		),
	}
	l.records, l.loaded = l.load(ctx, o.seed)
	return l
}

func (l *Ledger[P]) load(ctx context.Context, seed []PunchRecord) ([]PunchRecord, bool) {
	records, err := l.store.Load(ctx, l.key)
	if err != nil {
		l.logger.Error("load ledger failed, starting from seed",
			zap.String("key", l.key),
			zap.Int("seed", len(seed)),
			zap.Error(err),
		)
		return cloneRecords(seed), errors.Is(err, ErrCorruptRecords)
	}
	if records == nil {
		return cloneRecords(seed), true
	}
	l.logger.Debug("ledger loaded", zap.String("key", l.key), zap.Int("records", len(records)))
	return records, true
}

// Loaded reports whether the persisted list has been read (or found corrupt).
func (l *Ledger[P]) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Reload retries a failed load. Punches applied in the meantime win over
// stored records of the same person and day; the merged list is saved.
func (l *Ledger[P]) Reload(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return true
	}

	stored, err := l.store.Load(ctx, l.key)
	if err != nil && !errors.Is(err, ErrCorruptRecords) {
		l.logger.Warn("reload ledger failed", zap.String("key", l.key), zap.Error(err))
		return false
	}

	merged := mergeRecords(stored, l.records)
	l.records = merged
	l.loaded = true

	if err := l.store.Save(ctx, l.key, merged); err != nil {
		l.logger.Error("persist reloaded ledger failed", zap.String("key", l.key), zap.Error(err))
	}
	l.logger.Info("ledger reloaded", zap.String("key", l.key), zap.Int("records", len(merged)))
	return true
}

func (l *Ledger[P]) Tenant() tenant.Context { return l.tenant }

func (l *Ledger[P]) Kind() Kind { return l.kind }

// Key is the storage key the ledger persists under.
func (l *Ledger[P]) Key() string { return l.key }

// RecordPunch applies a punch for p at the current time and returns whether
// it was an arrival or a departure.
//
// The punch is "out" only when today's record has an in-time and no out-time;
// otherwise it is "in", which creates today's record or reopens it, dropping
// the previous pair. Persisting the new list is best effort: a failed save is
// logged and the in-memory state is kept. The only error is an empty id.
func (l *Ledger[P]) RecordPunch(ctx context.Context, p P) (Direction, error) {
	evt, err := l.Punch(ctx, p)
	if err != nil {
		return "", err
	}
	return evt.Direction, nil
}

// Punch is RecordPunch returning the applied record alongside the direction.
func (l *Ledger[P]) Punch(ctx context.Context, p P) (PunchEvent, error) {
	id := strings.TrimSpace(p.PersonID())
	if id == "" {
		return PunchEvent{}, attendanceerrors.ErrEmptyPersonID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().In(l.loc).Round(0)
	today := now.Format(DateLayout)

	next := make([]PunchRecord, len(l.records), len(l.records)+1)
	copy(next, l.records)

	idx := indexOf(next, id, today)
	dir := DirectionIn
	switch {
	case idx >= 0 && next[idx].IsOpen():
		dir = DirectionOut
		rec := next[idx].clone()
		out := now
		if out.Before(*rec.InTime) {
			// clock went backwards; never store an out-time before the in-time
			l.logger.Warn("out punch earlier than in punch, clamping",
				zap.String("person_id", id),
				zap.Time("in_time", *rec.InTime),
				zap.Time("now", now),
			)
			out = *rec.InTime
		}
		rec.OutTime = &out
		next[idx] = rec
	case idx >= 0:
		in := now
		next[idx] = PunchRecord{PersonID: id, Date: today, InTime: &in}
	default:
		in := now
		next = append(next, PunchRecord{PersonID: id, Date: today, InTime: &in})
		idx = len(next) - 1
	}

	l.records = next

	if !l.loaded {
		l.logger.Warn("ledger not loaded yet, deferring save",
			zap.String("key", l.key),
			zap.String("person_id", id),
		)
	} else if err := l.store.Save(ctx, l.key, next); err != nil {
		l.logger.Error("persist ledger failed, keeping in-memory state",
			zap.String("key", l.key),
			zap.String("person_id", id),
			zap.Error(err),
		)
	}

	evt := PunchEvent{
		CompanyID: l.tenant.CompanyID,
		Kind:      l.kind,
		Direction: dir,
		Record:    next[idx].clone(),
		At:        now,
	}
	if n, ok := any(p).(Named); ok {
		evt.PersonName = n.DisplayName()
	}
	l.hub.Publish(evt)

	l.logger.Debug("punch recorded",
		zap.String("person_id", id),
		zap.String("direction", string(dir)),
		zap.String("date", today),
	)
	return evt, nil
}

// ListRecords returns a copy of every record. Order is not meaningful.
func (l *Ledger[P]) ListRecords() []PunchRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneRecords(l.records)
}

// Find returns the record of personID on date (yyyy-MM-dd).
func (l *Ledger[P]) Find(personID, date string) (PunchRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx := indexOf(l.records, personID, date)
	if idx < 0 {
		return PunchRecord{}, false
	}
	return l.records[idx].clone(), true
}

// Today returns personID's record for the current calendar day.
func (l *Ledger[P]) Today(personID string) (PunchRecord, bool) {
	return l.Find(personID, l.now().In(l.loc).Format(DateLayout))
}

// Subscribe registers for punches applied by this ledger (and any other
// ledger sharing its hub).
func (l *Ledger[P]) Subscribe(buffer int) *Subscription {
	return l.hub.Subscribe(buffer)
}

func indexOf(records []PunchRecord, personID, date string) int {
	for i := range records {
		if records[i].PersonID == personID && records[i].Date == date {
			return i
		}
	}
	return -1
}

// mergeRecords overlays local onto stored by (person, date).
func mergeRecords(stored, local []PunchRecord) []PunchRecord {
	out := cloneRecords(stored)
	for _, r := range local {
		if idx := indexOf(out, r.PersonID, r.Date); idx >= 0 {
			out[idx] = r.clone()
			continue
		}
		out = append(out, r.clone())
	}
	return out
}

func cloneRecords(records []PunchRecord) []PunchRecord {
	if records == nil {
		return []PunchRecord{}
	}
	out := make([]PunchRecord, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	return out
}
