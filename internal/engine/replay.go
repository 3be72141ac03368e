package engine

import "boxcricket/internal/domain"

// ReplayResult is the full derivation of an innings from its ball log.
type ReplayResult struct {
	TotalRuns     int
	Wickets       int
	StatsByPlayer map[string]*domain.PlayerMatchStats
}

// ReplayStats replays an ordered ball log into cumulative score and
// per-player aggregates. It runs to completion on every record and undo;
// the O(log length) cost buys exact consistency between record and undo.
//
// Bonus runs for illegal deliveries are already embedded in Ball.Runs, so
// runs conceded and total runs never add a second extra.
func ReplayStats(balls []*domain.Ball) *ReplayResult {
	res := &ReplayResult{StatsByPlayer: make(map[string]*domain.PlayerMatchStats)}

	ensure := func(playerID string) *domain.PlayerMatchStats {
		s, ok := res.StatsByPlayer[playerID]
		if !ok {
			s = &domain.PlayerMatchStats{}
			res.StatsByPlayer[playerID] = s
		}
		return s
	}

	// Per-bowler per-over conceded runs, for maiden detection after the
	// full pass.
	overRuns := make(map[string]map[int]int)

	for _, ball := range balls {
		legal := ball.IsLegal()

		// Batting. Wides are the only deliveries that do not count as a
		// ball faced; a batsman can still score off a no-ball.
		bat := ensure(ball.BatsmanID)
		if !ball.IsWide {
			bat.BallsFaced++
		}
		bat.Runs += ball.Runs
		if ball.Runs == 4 {
			bat.Fours++
		}
		if ball.Runs == 6 {
			bat.Sixes++
		}

		// Bowling.
		bowl := ensure(ball.BowlerID)
		if legal {
			bowl.BallsBowled++
		}
		if ball.IsWide {
			bowl.Wides++
		}
		if ball.IsNoBall {
			bowl.NoBalls++
		}
		bowl.RunsConceded += ball.Runs
		res.TotalRuns += ball.Runs

		if ball.IsWicket {
			res.Wickets++

			d := ResolveDismissal(ball.BatsmanID, ball.DismissedBatsmanID, ball.FielderID, ball.WicketType)
			if d.BowlerCredited {
				bowl.Wickets++
			}
			if ball.FielderID != "" {
				f := ensure(ball.FielderID)
				if d.FielderCatch {
					f.Catches++
				}
				if d.FielderRunOut {
					f.RunOuts++
				}
				if d.FielderStumping {
					f.Stumpings++
				}
			}
		}

		if overRuns[ball.BowlerID] == nil {
			overRuns[ball.BowlerID] = make(map[int]int)
		}
		overRuns[ball.BowlerID][ball.OverNumber] += ball.Runs
	}

	// Maidens: overs in which the bowler conceded zero runs.
	for bowlerID, overs := range overRuns {
		for _, runs := range overs {
			if runs == 0 {
				ensure(bowlerID).Maidens++
			}
		}
	}

	return res
}
