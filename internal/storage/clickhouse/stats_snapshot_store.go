package clickhouse

import (
	"context"
	"fmt"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// StatsSnapshotStore implements storage.StatsSnapshotStore using ClickHouse.
type StatsSnapshotStore struct {
	conn *Conn
}

// NewStatsSnapshotStore creates a new StatsSnapshotStore.
func NewStatsSnapshotStore(conn *Conn) *StatsSnapshotStore {
	return &StatsSnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.StatsSnapshotStore = (*StatsSnapshotStore)(nil)

// Insert adds one snapshot point.
func (s *StatsSnapshotStore) Insert(ctx context.Context, snap *domain.StatsSnapshot) error {
	if snap == nil || snap.InningsID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO score_snapshots (
			innings_id, ball_count, total_runs, wickets, overs, balls_in_over, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	err := s.conn.Exec(ctx, query,
		snap.InningsID, uint32(snap.BallCount), uint32(snap.TotalRuns),
		uint8(snap.Wickets), uint16(snap.Overs), uint8(snap.BallsInOver),
		uint64(snap.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("insert score snapshot: %w", err)
	}
	return nil
}

// GetByInnings retrieves all points for an innings, ordered by recorded_at ASC.
func (s *StatsSnapshotStore) GetByInnings(ctx context.Context, inningsID string) ([]*domain.StatsSnapshot, error) {
	query := `
		SELECT innings_id, ball_count, total_runs, wickets, overs, balls_in_over, recorded_at
		FROM score_snapshots
		WHERE innings_id = ?
		ORDER BY recorded_at ASC, ball_count ASC
	`

	rows, err := s.conn.Query(ctx, query, inningsID)
	if err != nil {
		return nil, fmt.Errorf("query score snapshots: %w", err)
	}
	defer rows.Close()

	var result []*domain.StatsSnapshot
	for rows.Next() {
		var snap domain.StatsSnapshot
		var ballCount, totalRuns uint32
		var wickets, ballsInOver uint8
		var overs uint16
		var recordedAt uint64

		err := rows.Scan(&snap.InningsID, &ballCount, &totalRuns, &wickets, &overs, &ballsInOver, &recordedAt)
		if err != nil {
			return nil, fmt.Errorf("scan score snapshot row: %w", err)
		}

		snap.BallCount = int(ballCount)
		snap.TotalRuns = int(totalRuns)
		snap.Wickets = int(wickets)
		snap.Overs = int(overs)
		snap.BallsInOver = int(ballsInOver)
		snap.RecordedAt = int64(recordedAt)
		result = append(result, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score snapshot rows: %w", err)
	}

	return result, nil
}
