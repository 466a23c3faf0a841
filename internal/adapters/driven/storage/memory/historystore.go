package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Records are copied on the way in and out.
type HistoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.ContractRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		records: make(map[string]domain.ContractRecord),
	}
}

// Save stores or updates a record.
func (s *HistoryStore) Save(_ context.Context, record *domain.ContractRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = copyRecord(*record)
	return nil
}

// Get retrieves a record by ID.
func (s *HistoryStore) Get(_ context.Context, id string) (*domain.ContractRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyRecord(record)
	return &out, nil
}

// List returns records newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.ContractRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ContractRecord, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, copyRecord(record))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func copyRecord(r domain.ContractRecord) domain.ContractRecord {
	r.Unresolved = append([]string(nil), r.Unresolved...)
	return r
}
