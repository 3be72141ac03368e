package memory

import (
	"context"
	"sort"
	"sync"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// InningsStore is an in-memory implementation of storage.InningsStore.
type InningsStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Innings
}

// NewInningsStore creates a new in-memory innings store.
func NewInningsStore() *InningsStore {
	return &InningsStore{data: make(map[string]*domain.Innings)}
}

// Insert adds a new innings. Returns ErrDuplicateKey if exists.
func (s *InningsStore) Insert(_ context.Context, in *domain.Innings) error {
	if in == nil || in.ID == "" || in.MatchID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[in.ID]; exists {
		return storage.ErrDuplicateKey
	}

	cp := *in
	s.data[in.ID] = &cp
	return nil
}

// GetByID retrieves an innings by ID. Returns ErrNotFound if not exists.
func (s *InningsStore) GetByID(_ context.Context, inningsID string) (*domain.Innings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in, exists := s.data[inningsID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	cp := *in
	return &cp, nil
}

// GetByMatchAndNumber retrieves one innings of a match by its number.
func (s *InningsStore) GetByMatchAndNumber(_ context.Context, matchID string, number int) (*domain.Innings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, in := range s.data {
		if in.MatchID == matchID && in.InningsNumber == number {
			cp := *in
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetByMatch retrieves all innings of a match, ordered by innings number.
func (s *InningsStore) GetByMatch(_ context.Context, matchID string) ([]*domain.Innings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Innings
	for _, in := range s.data {
		if in.MatchID == matchID {
			cp := *in
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].InningsNumber < result[j].InningsNumber
	})

	return result, nil
}

// UpdateScore rewrites the derived score of an innings.
func (s *InningsStore) UpdateScore(_ context.Context, inningsID string, score domain.InningsScoreState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, exists := s.data[inningsID]
	if !exists {
		return storage.ErrNotFound
	}

	in.Score = score
	return nil
}

// UpdateStatus rewrites the status of an innings.
func (s *InningsStore) UpdateStatus(_ context.Context, inningsID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, exists := s.data[inningsID]
	if !exists {
		return storage.ErrNotFound
	}

	in.Status = status
	return nil
}

var _ storage.InningsStore = (*InningsStore)(nil)
