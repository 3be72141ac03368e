package verification

import (
	"context"
	"errors"
	"fmt"

	"boxcricket/internal/engine"
	"boxcricket/internal/observability"
	"boxcricket/internal/storage"
)

// ErrInningsNotFound is returned when the innings ID doesn't exist.
var ErrInningsNotFound = errors.New("innings not found")

// ReplayVerifier implements Verifier against the persistent stores.
type ReplayVerifier struct {
	balls   storage.BallStore
	innings storage.InningsStore
	stats   storage.PlayerStatsStore
	metrics *observability.Metrics
}

// ReplayVerifierOptions contains configuration for creating a ReplayVerifier.
type ReplayVerifierOptions struct {
	BallStore        storage.BallStore
	InningsStore     storage.InningsStore
	PlayerStatsStore storage.PlayerStatsStore

	// Optional
	Metrics *observability.Metrics
}

// NewReplayVerifier creates a new ReplayVerifier.
func NewReplayVerifier(opts ReplayVerifierOptions) *ReplayVerifier {
	return &ReplayVerifier{
		balls:   opts.BallStore,
		innings: opts.InningsStore,
		stats:   opts.PlayerStatsStore,
		metrics: opts.Metrics,
	}
}

// Compile-time interface check.
var _ Verifier = (*ReplayVerifier)(nil)

// VerifyInnings loads the ball log, validates its ordering, replays it
// from scratch, and compares the derived state against the stored rows.
func (v *ReplayVerifier) VerifyInnings(ctx context.Context, inningsID string) (*VerificationResult, error) {
	stored, err := v.innings.GetByID(ctx, inningsID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInningsNotFound
		}
		return nil, fmt.Errorf("load innings: %w", err)
	}

	ballLog, err := v.balls.GetByInnings(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("load ball log: %w", err)
	}

	result := &VerificationResult{
		InningsID: inningsID,
		BallCount: len(ballLog),
	}

	if err := engine.ValidateOrdering(ballLog); err != nil {
		result.Divergences = append(result.Divergences, FieldDivergence{
			Field:    "Ordering",
			Expected: "strictly increasing seq",
			Actual:   err.Error(),
		})
	}

	replayed := engine.ReplayStats(ballLog)
	progress := engine.ReplayOverProgress(ballLog)

	replayedScore := stored.Score
	replayedScore.TotalRuns = replayed.TotalRuns
	replayedScore.Wickets = replayed.Wickets
	replayedScore.Overs = progress.Overs
	replayedScore.BallsInOver = progress.BallsInOver

	result.Divergences = append(result.Divergences, CompareScores(stored.Score, replayedScore)...)

	storedStats, err := v.stats.GetByInnings(ctx, stored.MatchID, inningsID)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	result.Divergences = append(result.Divergences, CompareStats(storedStats, replayed.StatsByPlayer)...)

	result.Match = len(result.Divergences) == 0
	if !result.Match && v.metrics != nil {
		v.metrics.VerifyDivergence.Inc()
	}

	return result, nil
}

// VerifyMatch verifies every innings of a match.
func (v *ReplayVerifier) VerifyMatch(ctx context.Context, matchID string) (*VerificationReport, error) {
	allInnings, err := v.innings.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("load innings: %w", err)
	}

	report := &VerificationReport{
		TotalInnings: len(allInnings),
		Results:      make([]VerificationResult, 0, len(allInnings)),
	}

	for _, in := range allInnings {
		result, err := v.VerifyInnings(ctx, in.ID)
		if err != nil {
			report.Results = append(report.Results, VerificationResult{
				InningsID: in.ID,
				Divergences: []FieldDivergence{
					{Field: "Error", Expected: nil, Actual: err.Error()},
				},
			})
			report.DivergentInnings++
			continue
		}

		report.Results = append(report.Results, *result)
		if result.Match {
			report.MatchedInnings++
		} else {
			report.DivergentInnings++
		}
	}

	return report, nil
}
