package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

// BallStore implements storage.BallStore using PostgreSQL.
type BallStore struct {
	pool *Pool
}

// NewBallStore creates a new BallStore.
func NewBallStore(pool *Pool) *BallStore {
	return &BallStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BallStore = (*BallStore)(nil)

// Append adds a new ball. Returns ErrDuplicateKey if (innings_id, seq) exists.
func (s *BallStore) Append(ctx context.Context, b *domain.Ball) error {
	if b == nil || b.ID == "" || b.InningsID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO balls (
			ball_id, innings_id, seq,
			over_number, ball_number, runs,
			is_wide, is_no_ball, is_wicket,
			batsman_id, non_striker_id, bowler_id,
			striker_changed, wicket_type, fielder_id, dismissed_batsman_id
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16
		)
	`

	_, err := s.pool.Exec(ctx, query,
		b.ID, b.InningsID, b.Seq,
		b.OverNumber, b.BallNumber, b.Runs,
		b.IsWide, b.IsNoBall, b.IsWicket,
		b.BatsmanID, b.NonStrikerID, b.BowlerID,
		b.StrikerChanged, string(b.WicketType), b.FielderID, b.DismissedBatsmanID,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("append ball: %w", err)
	}
	return nil
}

// GetByInnings retrieves the full log for an innings, ordered by seq ASC.
func (s *BallStore) GetByInnings(ctx context.Context, inningsID string) ([]*domain.Ball, error) {
	query := `
		SELECT
			ball_id, innings_id, seq,
			over_number, ball_number, runs,
			is_wide, is_no_ball, is_wicket,
			batsman_id, non_striker_id, bowler_id,
			striker_changed, wicket_type, fielder_id, dismissed_batsman_id
		FROM balls
		WHERE innings_id = $1
		ORDER BY seq ASC
	`

	rows, err := s.pool.Query(ctx, query, inningsID)
	if err != nil {
		return nil, fmt.Errorf("get balls by innings: %w", err)
	}
	defer rows.Close()

	return scanBalls(rows)
}

// Delete removes a single ball by ID. Returns ErrNotFound if not exists.
func (s *BallStore) Delete(ctx context.Context, ballID string) error {
	query := `DELETE FROM balls WHERE ball_id = $1`

	tag, err := s.pool.Exec(ctx, query, ballID)
	if err != nil {
		return fmt.Errorf("delete ball: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanBalls scans multiple rows into a slice of Ball.
func scanBalls(rows pgx.Rows) ([]*domain.Ball, error) {
	var balls []*domain.Ball

	for rows.Next() {
		var b domain.Ball
		var wicketType string

		err := rows.Scan(
			&b.ID, &b.InningsID, &b.Seq,
			&b.OverNumber, &b.BallNumber, &b.Runs,
			&b.IsWide, &b.IsNoBall, &b.IsWicket,
			&b.BatsmanID, &b.NonStrikerID, &b.BowlerID,
			&b.StrikerChanged, &wicketType, &b.FielderID, &b.DismissedBatsmanID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ball row: %w", err)
		}

		b.WicketType = domain.WicketType(wicketType)
		balls = append(balls, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ball rows: %w", err)
	}

	return balls, nil
}
