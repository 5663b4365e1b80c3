package attendance

import (
	"context"
	"sync"

	"karma-manager/internal/tenant"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Registry owns one Ledger per (tenant, kind), created lazily on first use.
// All ledgers share the registry's store and hub.
type Registry[P Identifiable] struct {
	store  Store
	hub    *Hub
	opts   []Option
	logger *zap.Logger

	mu      sync.RWMutex
	ledgers map[string]*Ledger[P]
	sf      singleflight.Group
}

func NewRegistry[P Identifiable](store Store, hub *Hub, opts ...Option) *Registry[P] {
	if hub == nil {
		hub = NewHub()
	}
	return &Registry[P]{
		store:   store,
		hub:     hub,
		opts:    opts,
		logger:  zap.L().Named("attendance.registry"),
		ledgers: make(map[string]*Ledger[P]),
	}
}

func (r *Registry[P]) Hub() *Hub { return r.hub }

// Ledger returns the tenant's ledger for kind, loading it from the store the
// first time. Concurrent first calls share a single load. A ledger whose load
// failed is reloaded on the next call.
func (r *Registry[P]) Ledger(ctx context.Context, tc tenant.Context, kind Kind) *Ledger[P] {
	key := tc.StorageKey(string(kind))

	r.mu.RLock()
	l, ok := r.ledgers[key]
	r.mu.RUnlock()
	if ok {
		if !l.Loaded() {
			_, _, _ = r.sf.Do("reload:"+key, func() (interface{}, error) {
				return l.Reload(context.WithoutCancel(ctx)), nil
			})
		}
		return l
	}

	v, _, _ := r.sf.Do(key, func() (interface{}, error) {
		r.mu.RLock()
		existing, ok := r.ledgers[key]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		opts := append([]Option{WithHub(r.hub)}, r.opts...)
		// the ledger outlives the request that triggered its load
		created := NewLedger[P](context.WithoutCancel(ctx), tc, kind, r.store, opts...)

		r.mu.Lock()
		r.ledgers[key] = created
		r.mu.Unlock()

		r.logger.Info("ledger opened",
			zap.String("company_id", tc.CompanyID),
			zap.String("kind", string(kind)),
		)
		return created, nil
	})
	return v.(*Ledger[P])
}

// Len reports how many ledgers are open.
func (r *Registry[P]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ledgers)
}
