package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// InningsStore implements storage.InningsStore using PostgreSQL.
type InningsStore struct {
	pool *Pool
}

// NewInningsStore creates a new InningsStore.
func NewInningsStore(pool *Pool) *InningsStore {
	return &InningsStore{pool: pool}
}

// Compile-time interface check.
var _ storage.InningsStore = (*InningsStore)(nil)

// Insert adds a new innings with a zeroed score. Returns ErrDuplicateKey if exists.
func (s *InningsStore) Insert(ctx context.Context, in *domain.Innings) error {
	if in == nil || in.ID == "" || in.MatchID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO innings (
			innings_id, match_id, innings_number, batting_team, status,
			total_runs, wickets, overs, balls_in_over
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		in.ID, in.MatchID, in.InningsNumber, in.BattingTeam, in.Status,
		in.Score.TotalRuns, in.Score.Wickets, in.Score.Overs, in.Score.BallsInOver,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert innings: %w", err)
	}
	return nil
}

// GetByID retrieves an innings by ID. Returns ErrNotFound if not exists.
func (s *InningsStore) GetByID(ctx context.Context, inningsID string) (*domain.Innings, error) {
	query := `
		SELECT innings_id, match_id, innings_number, batting_team, status,
			total_runs, wickets, overs, balls_in_over
		FROM innings
		WHERE innings_id = $1
	`

	row := s.pool.QueryRow(ctx, query, inningsID)
	in, err := scanInnings(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get innings by id: %w", err)
	}
	return in, nil
}

// GetByMatchAndNumber retrieves one innings of a match by its number.
func (s *InningsStore) GetByMatchAndNumber(ctx context.Context, matchID string, number int) (*domain.Innings, error) {
	query := `
		SELECT innings_id, match_id, innings_number, batting_team, status,
			total_runs, wickets, overs, balls_in_over
		FROM innings
		WHERE match_id = $1 AND innings_number = $2
	`

	row := s.pool.QueryRow(ctx, query, matchID, number)
	in, err := scanInnings(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get innings by match and number: %w", err)
	}
	return in, nil
}

// GetByMatch retrieves all innings of a match, ordered by innings number.
func (s *InningsStore) GetByMatch(ctx context.Context, matchID string) ([]*domain.Innings, error) {
	query := `
		SELECT innings_id, match_id, innings_number, batting_team, status,
			total_runs, wickets, overs, balls_in_over
		FROM innings
		WHERE match_id = $1
		ORDER BY innings_number ASC
	`

	rows, err := s.pool.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("get innings by match: %w", err)
	}
	defer rows.Close()

	var result []*domain.Innings
	for rows.Next() {
		in, err := scanInnings(rows)
		if err != nil {
			return nil, fmt.Errorf("scan innings row: %w", err)
		}
		result = append(result, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate innings rows: %w", err)
	}

	return result, nil
}

// UpdateScore rewrites the derived score of an innings.
func (s *InningsStore) UpdateScore(ctx context.Context, inningsID string, score domain.InningsScoreState) error {
	query := `
		UPDATE innings
		SET total_runs = $2, wickets = $3, overs = $4, balls_in_over = $5
		WHERE innings_id = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		inningsID, score.TotalRuns, score.Wickets, score.Overs, score.BallsInOver,
	)
	if err != nil {
		return fmt.Errorf("update innings score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateStatus rewrites the status of an innings.
func (s *InningsStore) UpdateStatus(ctx context.Context, inningsID, status string) error {
	query := `UPDATE innings SET status = $2 WHERE innings_id = $1`

	tag, err := s.pool.Exec(ctx, query, inningsID, status)
	if err != nil {
		return fmt.Errorf("update innings status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanInnings scans a single row into an Innings.
func scanInnings(row pgx.Row) (*domain.Innings, error) {
	var in domain.Innings

	err := row.Scan(
		&in.ID, &in.MatchID, &in.InningsNumber, &in.BattingTeam, &in.Status,
		&in.Score.TotalRuns, &in.Score.Wickets, &in.Score.Overs, &in.Score.BallsInOver,
	)
	if err != nil {
		return nil, err
	}

	return &in, nil
}
