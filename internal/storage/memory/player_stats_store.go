package memory

import (
	"context"
	"fmt"
	"sync"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// PlayerStatsStore is an in-memory implementation of storage.PlayerStatsStore.
type PlayerStatsStore struct {
	mu   sync.RWMutex
	data map[string]map[string]*domain.PlayerMatchStats // (match|innings) → player → stats
}

// NewPlayerStatsStore creates a new in-memory player stats store.
func NewPlayerStatsStore() *PlayerStatsStore {
	return &PlayerStatsStore{data: make(map[string]map[string]*domain.PlayerMatchStats)}
}

func statsKey(matchID, inningsID string) string {
	return fmt.Sprintf("%s|%s", matchID, inningsID)
}

// ReplaceForInnings atomically replaces every stat line of a match innings.
func (s *PlayerStatsStore) ReplaceForInnings(_ context.Context, matchID, inningsID string, stats map[string]*domain.PlayerMatchStats) error {
	if matchID == "" || inningsID == "" {
		return storage.ErrInvalidInput
	}

	fresh := make(map[string]*domain.PlayerMatchStats, len(stats))
	for playerID, st := range stats {
		cp := *st
		fresh[playerID] = &cp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[statsKey(matchID, inningsID)] = fresh
	return nil
}

// GetByInnings retrieves all stat lines of a match innings, keyed by player ID.
func (s *PlayerStatsStore) GetByInnings(_ context.Context, matchID, inningsID string) (map[string]*domain.PlayerMatchStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.data[statsKey(matchID, inningsID)]
	result := make(map[string]*domain.PlayerMatchStats, len(stored))
	for playerID, st := range stored {
		cp := *st
		result[playerID] = &cp
	}
	return result, nil
}

var _ storage.PlayerStatsStore = (*PlayerStatsStore)(nil)
