package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure TriggerStore implements the interface.
var _ driven.TriggerStore = (*TriggerStore)(nil)

// TriggerStore is an in-memory implementation of driven.TriggerStore
// for testing. Records are kept in insertion order.
type TriggerStore struct {
	mu      sync.RWMutex
	records []domain.TriggerRecord

	// RecordErr, when non-nil, is returned by Record.
	RecordErr error
}

// NewTriggerStore creates a new in-memory trigger store.
func NewTriggerStore() *TriggerStore {
	return &TriggerStore{}
}

// Record stores a fired trigger.
func (s *TriggerStore) Record(_ context.Context, record *domain.TriggerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RecordErr != nil {
		return s.RecordErr
	}
	if record == nil {
		return domain.ErrInvalidInput
	}
	s.records = append(s.records, *record)
	return nil
}

// History returns recent triggers, most recent first.
func (s *TriggerStore) History(_ context.Context, limit int) ([]domain.TriggerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > n {
		limit = n
	}
	results := make([]domain.TriggerRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		results = append(results, s.records[i])
	}
	return results, nil
}

// Prune keeps the most recent 'keep' records.
func (s *TriggerStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) > keep {
		s.records = append([]domain.TriggerRecord(nil), s.records[len(s.records)-keep:]...)
	}
	return nil
}

// Len returns the number of stored records.
func (s *TriggerStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
