package postgres

import (
	"context"
	"fmt"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// MatchStore implements storage.MatchStore using PostgreSQL. Rosters live
// in a child table and are written in the same transaction as the match.
type MatchStore struct {
	pool *Pool
}

// NewMatchStore creates a new MatchStore.
func NewMatchStore(pool *Pool) *MatchStore {
	return &MatchStore{pool: pool}
}

// Compile-time interface check.
var _ storage.MatchStore = (*MatchStore)(nil)

// Insert adds a new match with its roster. Returns ErrDuplicateKey if exists.
func (s *MatchStore) Insert(ctx context.Context, m *domain.Match) error {
	if m == nil || m.ID == "" {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO matches (match_id, total_overs) VALUES ($1, $2)`,
		m.ID, m.TotalOvers,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert match: %w", err)
	}

	playerQuery := `
		INSERT INTO match_players (match_id, player_id, team, is_dual_player)
		VALUES ($1, $2, $3, $4)
	`
	for _, p := range m.Players {
		_, err := tx.Exec(ctx, playerQuery, m.ID, p.PlayerID, p.Team, p.IsDualPlayer)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert match player: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID retrieves a match with its roster. Returns ErrNotFound if not exists.
func (s *MatchStore) GetByID(ctx context.Context, matchID string) (*domain.Match, error) {
	var m domain.Match

	row := s.pool.QueryRow(ctx,
		`SELECT match_id, total_overs FROM matches WHERE match_id = $1`,
		matchID,
	)
	if err := row.Scan(&m.ID, &m.TotalOvers); err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get match by id: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT player_id, team, is_dual_player
		FROM match_players
		WHERE match_id = $1
		ORDER BY player_id ASC
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.MatchPlayer
		if err := rows.Scan(&p.PlayerID, &p.Team, &p.IsDualPlayer); err != nil {
			return nil, fmt.Errorf("scan match player row: %w", err)
		}
		m.Players = append(m.Players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match player rows: %w", err)
	}

	return &m, nil
}
