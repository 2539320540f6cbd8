package reaction

import (
	"context"
	"sync"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

// InMemoryStore provides reaction records for single-instance mode. Unlike the
// Redis store it shares no state across processes, so it only suits one server
// instance; within that instance the mutex gives the same atomicity.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[string]domain.Counts
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]domain.Counts)}
}

func (s *InMemoryStore) GetCounts(_ context.Context, itemID string, variant domain.Variant) (domain.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(itemID, variant), nil
}

func (s *InMemoryStore) Apply(_ context.Context, itemID string, incr, decr domain.Kind, variant domain.Variant) (domain.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.snapshot(itemID, variant)
	if incr != domain.KindNone {
		counts[incr]++
	}
	if decr != domain.KindNone && counts[decr] > 0 {
		counts[decr]--
	}
	s.records[itemID] = counts
	return counts.Clone(), nil
}

func (s *InMemoryStore) Reset(_ context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, itemID)
	return nil
}

// snapshot returns a mutable copy of the record, zero-filled for every kind of
// the variant. Callers hold the mutex.
func (s *InMemoryStore) snapshot(itemID string, variant domain.Variant) domain.Counts {
	counts := domain.ZeroCounts(variant)
	for k, n := range s.records[itemID] {
		counts[k] = n
	}
	return counts
}
