package engine

import (
	"reflect"
	"testing"

	"boxcricket/internal/domain"
)

// delivery builds a ball with the usual trio of players filled in.
func delivery(seq, over, number, runs int, mods ...func(*domain.Ball)) *domain.Ball {
	b := &domain.Ball{
		Seq:          seq,
		OverNumber:   over,
		BallNumber:   number,
		Runs:         runs,
		BatsmanID:    "bat1",
		NonStrikerID: "bat2",
		BowlerID:     "bowl1",
	}
	for _, mod := range mods {
		mod(b)
	}
	return b
}

func asWide(b *domain.Ball)   { b.IsWide = true }
func asNoBall(b *domain.Ball) { b.IsNoBall = true }

func asWicket(wt domain.WicketType, fielderID, dismissedID string) func(*domain.Ball) {
	return func(b *domain.Ball) {
		b.IsWicket = true
		b.WicketType = wt
		b.FielderID = fielderID
		b.DismissedBatsmanID = dismissedID
	}
}

func TestReplayStats_Totals(t *testing.T) {
	balls := []*domain.Ball{
		delivery(0, 0, 1, 4),
		delivery(1, 0, 1, 0, asWide),
		delivery(2, 0, 1, 1, asWide), // 2nd consecutive wide carries the bonus run
		delivery(3, 0, 2, 6),
	}

	res := ReplayStats(balls)

	if res.TotalRuns != 11 {
		t.Errorf("TotalRuns = %d, want 11", res.TotalRuns)
	}
	if res.Wickets != 0 {
		t.Errorf("Wickets = %d, want 0", res.Wickets)
	}

	bat := res.StatsByPlayer["bat1"]
	if bat.Runs != 11 {
		t.Errorf("Batsman runs = %d, want 11", bat.Runs)
	}
	// Wides are the only deliveries not faced.
	if bat.BallsFaced != 2 {
		t.Errorf("BallsFaced = %d, want 2", bat.BallsFaced)
	}
	if bat.Fours != 1 || bat.Sixes != 1 {
		t.Errorf("Fours/Sixes = %d/%d, want 1/1", bat.Fours, bat.Sixes)
	}

	bowl := res.StatsByPlayer["bowl1"]
	if bowl.BallsBowled != 2 {
		t.Errorf("BallsBowled = %d, want 2", bowl.BallsBowled)
	}
	if bowl.RunsConceded != 11 {
		t.Errorf("RunsConceded = %d, want 11", bowl.RunsConceded)
	}
	if bowl.Wides != 2 {
		t.Errorf("Wides = %d, want 2", bowl.Wides)
	}
}

func TestReplayStats_NoBallFaced(t *testing.T) {
	balls := []*domain.Ball{
		delivery(0, 0, 0, 2, asNoBall),
	}

	res := ReplayStats(balls)
	bat := res.StatsByPlayer["bat1"]

	// A batsman can score off a no-ball, so it counts as a ball faced.
	if bat.BallsFaced != 1 {
		t.Errorf("BallsFaced = %d, want 1 (no-ball is faced)", bat.BallsFaced)
	}
	if res.StatsByPlayer["bowl1"].NoBalls != 1 {
		t.Error("Bowler no-ball tally missing")
	}
	if res.StatsByPlayer["bowl1"].BallsBowled != 0 {
		t.Error("No-ball must not count as a ball bowled")
	}
}

func TestReplayStats_WicketCredit(t *testing.T) {
	balls := []*domain.Ball{
		delivery(0, 0, 1, 0, asWicket(domain.WicketCaught, "fielder1", "bat1")),
		delivery(1, 0, 2, 0, asWicket(domain.WicketRunOut, "fielder1", "bat2")),
		delivery(2, 0, 3, 0, asWicket(domain.WicketStumped, "keeper1", "bat1")),
	}

	res := ReplayStats(balls)

	if res.Wickets != 3 {
		t.Fatalf("Wickets = %d, want 3", res.Wickets)
	}

	bowl := res.StatsByPlayer["bowl1"]
	// Caught and stumped credit the bowler; the run-out does not.
	if bowl.Wickets != 2 {
		t.Errorf("Bowler wickets = %d, want 2", bowl.Wickets)
	}

	fielder := res.StatsByPlayer["fielder1"]
	if fielder.Catches != 1 {
		t.Errorf("Fielder catches = %d, want 1", fielder.Catches)
	}
	if fielder.RunOuts != 1 {
		t.Errorf("Fielder runOuts = %d, want 1", fielder.RunOuts)
	}

	keeper := res.StatsByPlayer["keeper1"]
	if keeper.Stumpings != 1 {
		t.Errorf("Keeper stumpings = %d, want 1", keeper.Stumpings)
	}
}

func TestReplayStats_MaidenDetection(t *testing.T) {
	var balls []*domain.Ball
	// Over 0: six dots.
	for i := 0; i < 6; i++ {
		balls = append(balls, delivery(i, 0, i+1, 0))
	}
	// Over 1: one scoring ball.
	balls = append(balls, delivery(6, 1, 1, 2))

	res := ReplayStats(balls)
	if res.StatsByPlayer["bowl1"].Maidens != 1 {
		t.Errorf("Maidens = %d, want 1", res.StatsByPlayer["bowl1"].Maidens)
	}
}

func TestReplayStats_Deterministic(t *testing.T) {
	balls := []*domain.Ball{
		delivery(0, 0, 1, 4),
		delivery(1, 0, 1, 0, asWide),
		delivery(2, 0, 2, 1),
		delivery(3, 0, 3, 0, asWicket(domain.WicketBowled, "", "bat1")),
	}

	first := ReplayStats(balls)
	second := ReplayStats(balls)

	if first.TotalRuns != second.TotalRuns || first.Wickets != second.Wickets {
		t.Fatal("Replay is not deterministic on totals")
	}
	if !reflect.DeepEqual(first.StatsByPlayer, second.StatsByPlayer) {
		t.Fatal("Replay is not deterministic on player stats")
	}
}
