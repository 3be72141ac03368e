// Package memory holds in-memory store implementations. They back the
// optimistic local projection and the test suites; the postgres and
// clickhouse packages hold the durable equivalents.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// BallStore is an in-memory implementation of storage.BallStore.
type BallStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Ball // keyed by ball ID
	seqs map[string]struct{}     // (innings_id, seq) uniqueness
}

// NewBallStore creates a new in-memory ball store.
func NewBallStore() *BallStore {
	return &BallStore{
		data: make(map[string]*domain.Ball),
		seqs: make(map[string]struct{}),
	}
}

func seqKey(inningsID string, seq int) string {
	return fmt.Sprintf("%s|%d", inningsID, seq)
}

// Append adds a new ball. Returns ErrDuplicateKey if (innings_id, seq) exists.
func (s *BallStore) Append(_ context.Context, b *domain.Ball) error {
	if b == nil || b.ID == "" || b.InningsID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := seqKey(b.InningsID, b.Seq)
	if _, exists := s.seqs[key]; exists {
		return storage.ErrDuplicateKey
	}
	if _, exists := s.data[b.ID]; exists {
		return storage.ErrDuplicateKey
	}

	cp := *b
	s.data[b.ID] = &cp
	s.seqs[key] = struct{}{}
	return nil
}

// GetByInnings retrieves the full log for an innings, ordered by seq ASC.
func (s *BallStore) GetByInnings(_ context.Context, inningsID string) ([]*domain.Ball, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Ball
	for _, b := range s.data {
		if b.InningsID == inningsID {
			cp := *b
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Seq < result[j].Seq
	})

	return result, nil
}

// Delete removes a single ball by ID. Returns ErrNotFound if not exists.
func (s *BallStore) Delete(_ context.Context, ballID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.data[ballID]
	if !exists {
		return storage.ErrNotFound
	}

	delete(s.data, ballID)
	delete(s.seqs, seqKey(b.InningsID, b.Seq))
	return nil
}

var _ storage.BallStore = (*BallStore)(nil)
