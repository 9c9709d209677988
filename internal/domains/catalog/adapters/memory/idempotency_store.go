package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps create-product keys in memory.
type IdempotencyStore struct {
	mu      sync.Mutex
	records map[string]ports.IdempotencyRecord
	now     func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		records: map[string]ports.IdempotencyRecord{},
		now:     time.Now,
	}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[record.Key]; ok {
		if existing.RequestHash != record.RequestHash {
			return &existing, ports.ErrIdempotencyConflict
		}
		return &existing, nil
	}
	record.CreatedAt = s.now().UTC()
	s.records[record.Key] = record
	return &record, nil
}
