// Package storage defines the persistence contracts for the scoring
// engine. The ball log is the single source of truth: score and stat
// rows are derivable caches and must never be treated as authoritative
// independent of the log.
package storage

import (
	"context"

	"boxcricket/internal/domain"
)

// BallStore provides access to the append-only ball log.
type BallStore interface {
	// Append adds a new ball. Returns ErrDuplicateKey if (innings_id, seq) exists.
	Append(ctx context.Context, b *domain.Ball) error

	// GetByInnings retrieves the full log for an innings, ordered by seq ASC.
	GetByInnings(ctx context.Context, inningsID string) ([]*domain.Ball, error)

	// Delete removes a single ball by ID. Returns ErrNotFound if not exists.
	// Only ever called for the most recently inserted ball of an innings.
	Delete(ctx context.Context, ballID string) error
}

// InningsStore provides access to innings rows.
type InningsStore interface {
	// Insert adds a new innings with a zeroed score. Returns ErrDuplicateKey if exists.
	Insert(ctx context.Context, in *domain.Innings) error

	// GetByID retrieves an innings by ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, inningsID string) (*domain.Innings, error)

	// GetByMatchAndNumber retrieves one innings of a match by its number (1 or 2).
	GetByMatchAndNumber(ctx context.Context, matchID string, number int) (*domain.Innings, error)

	// GetByMatch retrieves all innings of a match, ordered by innings number.
	GetByMatch(ctx context.Context, matchID string) ([]*domain.Innings, error)

	// UpdateScore rewrites the derived score of an innings.
	UpdateScore(ctx context.Context, inningsID string, score domain.InningsScoreState) error

	// UpdateStatus rewrites the status of an innings.
	UpdateStatus(ctx context.Context, inningsID, status string) error
}

// MatchStore provides access to match rows and rosters.
type MatchStore interface {
	// Insert adds a new match. Returns ErrDuplicateKey if exists.
	Insert(ctx context.Context, m *domain.Match) error

	// GetByID retrieves a match by ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, matchID string) (*domain.Match, error)
}

// PlayerStatsStore provides access to derived per-player stat lines.
type PlayerStatsStore interface {
	// ReplaceForInnings atomically replaces every stat line of a
	// match innings with the freshly replayed set.
	ReplaceForInnings(ctx context.Context, matchID, inningsID string, stats map[string]*domain.PlayerMatchStats) error

	// GetByInnings retrieves all stat lines of a match innings, keyed by player ID.
	GetByInnings(ctx context.Context, matchID, inningsID string) (map[string]*domain.PlayerMatchStats, error)
}

// StatsSnapshotStore is the analytics sink: an append-only timeline of
// innings scores, one point per authoritative record or undo.
type StatsSnapshotStore interface {
	// Insert adds one snapshot point.
	Insert(ctx context.Context, s *domain.StatsSnapshot) error

	// GetByInnings retrieves all points for an innings, ordered by recorded_at ASC.
	GetByInnings(ctx context.Context, inningsID string) ([]*domain.StatsSnapshot, error)
}
