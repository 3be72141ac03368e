package engine

import "boxcricket/internal/domain"

// ShouldChangeStrike decides whether the striker rotates after this ball,
// at the per-ball layer only. Extras never rotate strike. On the 6th
// legal ball of an over the per-ball rotation is suppressed: over
// completion triggers its own end-of-over swap, so an odd run on the 6th
// ball nets out to no change, while an even run undergoes exactly the
// end-of-over swap. Callers must apply that swap themselves when
// AdvanceOver reports completion.
func ShouldChangeStrike(ballNumber, runs int, isWide, isNoBall bool) bool {
	if isWide || isNoBall {
		return false
	}
	if ballNumber == domain.BallsPerOver {
		return false
	}
	return runs%2 == 1
}
