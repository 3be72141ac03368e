package memory

import (
	"context"
	"sync"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// MatchStore is an in-memory implementation of storage.MatchStore.
type MatchStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Match
}

// NewMatchStore creates a new in-memory match store.
func NewMatchStore() *MatchStore {
	return &MatchStore{data: make(map[string]*domain.Match)}
}

// Insert adds a new match. Returns ErrDuplicateKey if exists.
func (s *MatchStore) Insert(_ context.Context, m *domain.Match) error {
	if m == nil || m.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[m.ID]; exists {
		return storage.ErrDuplicateKey
	}

	cp := *m
	cp.Players = append([]domain.MatchPlayer(nil), m.Players...)
	s.data[m.ID] = &cp
	return nil
}

// GetByID retrieves a match by ID. Returns ErrNotFound if not exists.
func (s *MatchStore) GetByID(_ context.Context, matchID string) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.data[matchID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	cp := *m
	cp.Players = append([]domain.MatchPlayer(nil), m.Players...)
	return &cp, nil
}

var _ storage.MatchStore = (*MatchStore)(nil)
