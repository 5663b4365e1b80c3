package attendance

import (
	"context"
	"sync"
)

// Store persists a tenant's serialized punch list under an opaque key.
// Load returns (nil, nil) when nothing was stored yet.
//
//go:generate mockgen -source=attendance_store.go -destination=mock/attendance_store_mock.go -package=mock
type Store interface {
	Load(ctx context.Context, key string) ([]PunchRecord, error)
	Save(ctx context.Context, key string, records []PunchRecord) error
}

// MemoryStore keeps encoded payloads in process. It is the store used when
// durability is not wanted, and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, key string) ([]PunchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	payload, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return DecodeRecords(payload)
}

func (s *MemoryStore) Save(ctx context.Context, key string, records []PunchRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = payload
	s.mu.Unlock()
	return nil
}

// Raw returns the stored payload for key.
func (s *MemoryStore) Raw(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.data[key]
	return payload, ok
}

// Put stores a raw payload, bypassing encoding.
func (s *MemoryStore) Put(key string, payload []byte) {
	s.mu.Lock()
	s.data[key] = payload
	s.mu.Unlock()
}
