// Package verification checks that persisted scoring state matches a
// fresh replay of the ball log. Because every derived value is supposed
// to be a pure function of the log, any divergence is a defect.
package verification

import (
	"context"

	"boxcricket/internal/domain"
)

// FieldDivergence represents a mismatch between stored and replayed values.
type FieldDivergence struct {
	Field    string // field name, prefixed with player ID for stat lines
	Expected any    // stored value
	Actual   any    // replayed value
}

// VerificationResult contains the result of verifying a single innings.
type VerificationResult struct {
	InningsID   string
	Match       bool
	BallCount   int
	Divergences []FieldDivergence
}

// VerificationReport contains results for batch verification.
type VerificationReport struct {
	TotalInnings     int
	MatchedInnings   int
	DivergentInnings int
	Results          []VerificationResult
}

// Verifier re-derives innings state from the ball log and compares it
// with what the stores hold.
type Verifier interface {
	// VerifyInnings verifies a single innings by ID.
	VerifyInnings(ctx context.Context, inningsID string) (*VerificationResult, error)

	// VerifyMatch verifies every innings of a match.
	VerifyMatch(ctx context.Context, matchID string) (*VerificationReport, error)
}

// CompareScores compares a stored score against a replayed one.
func CompareScores(stored, replayed domain.InningsScoreState) []FieldDivergence {
	var divergences []FieldDivergence

	if stored.TotalRuns != replayed.TotalRuns {
		divergences = append(divergences, FieldDivergence{
			Field:    "TotalRuns",
			Expected: stored.TotalRuns,
			Actual:   replayed.TotalRuns,
		})
	}
	if stored.Wickets != replayed.Wickets {
		divergences = append(divergences, FieldDivergence{
			Field:    "Wickets",
			Expected: stored.Wickets,
			Actual:   replayed.Wickets,
		})
	}
	if stored.Overs != replayed.Overs {
		divergences = append(divergences, FieldDivergence{
			Field:    "Overs",
			Expected: stored.Overs,
			Actual:   replayed.Overs,
		})
	}
	if stored.BallsInOver != replayed.BallsInOver {
		divergences = append(divergences, FieldDivergence{
			Field:    "BallsInOver",
			Expected: stored.BallsInOver,
			Actual:   replayed.BallsInOver,
		})
	}

	return divergences
}

// CompareStats compares stored stat lines against replayed ones, keyed
// by player. Players present on one side only are divergences too.
func CompareStats(stored, replayed map[string]*domain.PlayerMatchStats) []FieldDivergence {
	var divergences []FieldDivergence

	for playerID, st := range stored {
		re, ok := replayed[playerID]
		if !ok {
			divergences = append(divergences, FieldDivergence{
				Field:    playerID,
				Expected: *st,
				Actual:   nil,
			})
			continue
		}
		if *st != *re {
			divergences = append(divergences, FieldDivergence{
				Field:    playerID,
				Expected: *st,
				Actual:   *re,
			})
		}
	}

	for playerID, re := range replayed {
		if _, ok := stored[playerID]; !ok {
			divergences = append(divergences, FieldDivergence{
				Field:    playerID,
				Expected: nil,
				Actual:   *re,
			})
		}
	}

	return divergences
}
