package memory

import (
	"context"
	"sort"
	"sync"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// StatsSnapshotStore is an in-memory implementation of storage.StatsSnapshotStore.
type StatsSnapshotStore struct {
	mu   sync.RWMutex
	data []*domain.StatsSnapshot
}

// NewStatsSnapshotStore creates a new in-memory snapshot store.
func NewStatsSnapshotStore() *StatsSnapshotStore {
	return &StatsSnapshotStore{}
}

// Insert adds one snapshot point.
func (s *StatsSnapshotStore) Insert(_ context.Context, snap *domain.StatsSnapshot) error {
	if snap == nil || snap.InningsID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *snap
	s.data = append(s.data, &cp)
	return nil
}

// GetByInnings retrieves all points for an innings, ordered by recorded_at ASC.
func (s *StatsSnapshotStore) GetByInnings(_ context.Context, inningsID string) ([]*domain.StatsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.StatsSnapshot
	for _, snap := range s.data {
		if snap.InningsID == inningsID {
			cp := *snap
			result = append(result, &cp)
		}
	}

	// Stable sort keeps insertion order for points sharing a timestamp.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RecordedAt < result[j].RecordedAt
	})

	return result, nil
}

var _ storage.StatsSnapshotStore = (*StatsSnapshotStore)(nil)
