package engine

import "boxcricket/internal/domain"

// UndoOutcome is the result of removing the most recent ball.
type UndoOutcome struct {
	RemainingBalls []*domain.Ball
	Score          domain.InningsScoreState

	// DeletedBall is nil when the log was already empty.
	DeletedBall *domain.Ball
}

// UndoLastBall removes the last ball from the log and re-derives the
// entire score from the remaining balls. "Last" means the highest
// (OverNumber, BallNumber), tie-broken by insertion order, which matters
// when several illegal deliveries share a pending ball number.
//
// Undo never subtracts from the current score; it replays the remaining
// log from scratch, so it is the exact inverse of record.
func UndoLastBall(existing []*domain.Ball, score domain.InningsScoreState) *UndoOutcome {
	if len(existing) == 0 {
		return &UndoOutcome{RemainingBalls: existing, Score: score}
	}

	last := 0
	for i := 1; i < len(existing); i++ {
		if compareBalls(existing[i], existing[last]) >= 0 {
			last = i
		}
	}
	deleted := existing[last]

	remaining := make([]*domain.Ball, 0, len(existing)-1)
	remaining = append(remaining, existing[:last]...)
	remaining = append(remaining, existing[last+1:]...)

	replayed := ReplayStats(remaining)
	progress := ReplayOverProgress(remaining)

	return &UndoOutcome{
		RemainingBalls: remaining,
		Score: domain.InningsScoreState{
			TotalRuns:   replayed.TotalRuns,
			Wickets:     replayed.Wickets,
			Overs:       progress.Overs,
			BallsInOver: progress.BallsInOver,
		},
		DeletedBall: deleted,
	}
}
