package engine

import "boxcricket/internal/domain"

// OverProgress is the over counter after one delivery.
type OverProgress struct {
	Overs       int
	BallsInOver int

	// OverCompleted signals that bowler selection must be re-entered and
	// the end-of-over strike swap applies.
	OverCompleted bool
}

// AdvanceOver advances the over counter by one delivery. Illegal
// deliveries leave the counter untouched.
func AdvanceOver(overs, ballsInOver int, isLegal bool) OverProgress {
	if !isLegal {
		return OverProgress{Overs: overs, BallsInOver: ballsInOver}
	}

	ballsInOver++
	if ballsInOver >= domain.BallsPerOver {
		return OverProgress{Overs: overs + 1, BallsInOver: 0, OverCompleted: true}
	}
	return OverProgress{Overs: overs, BallsInOver: ballsInOver}
}

// ReplayOverProgress derives the over counter from scratch by replaying
// an ordered ball log. Undo uses this instead of subtracting from the
// current counter.
func ReplayOverProgress(balls []*domain.Ball) OverProgress {
	var p OverProgress
	for _, b := range balls {
		p = AdvanceOver(p.Overs, p.BallsInOver, b.IsLegal())
	}
	return p
}
