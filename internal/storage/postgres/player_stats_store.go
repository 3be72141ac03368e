package postgres

import (
	"context"
	"fmt"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// PlayerStatsStore implements storage.PlayerStatsStore using PostgreSQL.
// ReplaceForInnings is delete-then-insert in one transaction: the stat
// rows are a derived cache of the ball log, so a full rewrite is the only
// write path.
type PlayerStatsStore struct {
	pool *Pool
}

// NewPlayerStatsStore creates a new PlayerStatsStore.
func NewPlayerStatsStore(pool *Pool) *PlayerStatsStore {
	return &PlayerStatsStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PlayerStatsStore = (*PlayerStatsStore)(nil)

// ReplaceForInnings atomically replaces every stat line of a match innings.
func (s *PlayerStatsStore) ReplaceForInnings(ctx context.Context, matchID, inningsID string, stats map[string]*domain.PlayerMatchStats) error {
	if matchID == "" || inningsID == "" {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM player_match_stats WHERE match_id = $1 AND innings_id = $2`,
		matchID, inningsID,
	)
	if err != nil {
		return fmt.Errorf("clear player stats: %w", err)
	}

	query := `
		INSERT INTO player_match_stats (
			match_id, innings_id, player_id,
			runs, balls_faced, fours, sixes,
			balls_bowled, runs_conceded, wickets, maidens, wides, no_balls,
			catches, run_outs, stumpings
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13,
			$14, $15, $16
		)
	`

	for playerID, st := range stats {
		_, err := tx.Exec(ctx, query,
			matchID, inningsID, playerID,
			st.Runs, st.BallsFaced, st.Fours, st.Sixes,
			st.BallsBowled, st.RunsConceded, st.Wickets, st.Maidens, st.Wides, st.NoBalls,
			st.Catches, st.RunOuts, st.Stumpings,
		)
		if err != nil {
			return fmt.Errorf("insert player stats: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByInnings retrieves all stat lines of a match innings, keyed by player ID.
func (s *PlayerStatsStore) GetByInnings(ctx context.Context, matchID, inningsID string) (map[string]*domain.PlayerMatchStats, error) {
	query := `
		SELECT player_id,
			runs, balls_faced, fours, sixes,
			balls_bowled, runs_conceded, wickets, maidens, wides, no_balls,
			catches, run_outs, stumpings
		FROM player_match_stats
		WHERE match_id = $1 AND innings_id = $2
	`

	rows, err := s.pool.Query(ctx, query, matchID, inningsID)
	if err != nil {
		return nil, fmt.Errorf("get player stats by innings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*domain.PlayerMatchStats)
	for rows.Next() {
		var playerID string
		var st domain.PlayerMatchStats

		err := rows.Scan(&playerID,
			&st.Runs, &st.BallsFaced, &st.Fours, &st.Sixes,
			&st.BallsBowled, &st.RunsConceded, &st.Wickets, &st.Maidens, &st.Wides, &st.NoBalls,
			&st.Catches, &st.RunOuts, &st.Stumpings,
		)
		if err != nil {
			return nil, fmt.Errorf("scan player stats row: %w", err)
		}

		result[playerID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player stats rows: %w", err)
	}

	return result, nil
}
