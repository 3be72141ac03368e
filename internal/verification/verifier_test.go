package verification

import (
	"context"
	"errors"
	"testing"

	"boxcricket/internal/domain"
	"boxcricket/internal/engine"
	"boxcricket/internal/service"
	"boxcricket/internal/storage/memory"
)

type fixture struct {
	verifier  *ReplayVerifier
	svc       *service.ScoringService
	innings   *memory.InningsStore
	stats     *memory.PlayerStatsStore
	matchID   string
	inningsID string
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	balls := memory.NewBallStore()
	innings := memory.NewInningsStore()
	matches := memory.NewMatchStore()
	stats := memory.NewPlayerStatsStore()

	svc := service.New(service.Options{
		Evaluator:        engine.NewEvaluator(nil, nil),
		BallStore:        balls,
		InningsStore:     innings,
		MatchStore:       matches,
		PlayerStatsStore: stats,
	})

	match := &domain.Match{
		ID:         "m1",
		TotalOvers: 4,
		Players: []domain.MatchPlayer{
			{PlayerID: "bat1", Team: "A"},
			{PlayerID: "bat2", Team: "A"},
			{PlayerID: "bowl1", Team: "B"},
		},
	}
	created, err := svc.SetupMatch(context.Background(), match, "A", "B")
	if err != nil {
		t.Fatalf("SetupMatch failed: %v", err)
	}

	verifier := NewReplayVerifier(ReplayVerifierOptions{
		BallStore:        balls,
		InningsStore:     innings,
		PlayerStatsStore: stats,
	})

	return &fixture{
		verifier:  verifier,
		svc:       svc,
		innings:   innings,
		stats:     stats,
		matchID:   "m1",
		inningsID: created[0].ID,
	}
}

func record(t *testing.T, f *fixture, in domain.RecordBallInput) {
	t.Helper()
	if _, err := f.svc.RecordBall(context.Background(), f.inningsID, in); err != nil {
		t.Fatalf("RecordBall failed: %v", err)
	}
}

func TestVerifyInnings_CleanStateMatches(t *testing.T) {
	f := setupFixture(t)

	record(t, f, domain.RecordBallInput{BatsmanID: "bat1", NonStrikerID: "bat2", BowlerID: "bowl1", Runs: 4})
	record(t, f, domain.RecordBallInput{BatsmanID: "bat1", NonStrikerID: "bat2", BowlerID: "bowl1", IsWide: true})
	record(t, f, domain.RecordBallInput{
		BatsmanID: "bat1", NonStrikerID: "bat2", BowlerID: "bowl1",
		IsWicket: true, WicketType: domain.WicketBowled,
	})

	result, err := f.verifier.VerifyInnings(context.Background(), f.inningsID)
	if err != nil {
		t.Fatalf("VerifyInnings failed: %v", err)
	}

	if !result.Match {
		t.Errorf("Expected clean state to match, divergences: %+v", result.Divergences)
	}
	if result.BallCount != 3 {
		t.Errorf("BallCount = %d, want 3", result.BallCount)
	}
}

func TestVerifyInnings_DetectsScoreTampering(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	record(t, f, domain.RecordBallInput{BatsmanID: "bat1", NonStrikerID: "bat2", BowlerID: "bowl1", Runs: 2})

	// Corrupt the derived score behind the log's back.
	f.innings.UpdateScore(ctx, f.inningsID, domain.InningsScoreState{TotalRuns: 99, BallsInOver: 1})

	result, err := f.verifier.VerifyInnings(ctx, f.inningsID)
	if err != nil {
		t.Fatalf("VerifyInnings failed: %v", err)
	}

	if result.Match {
		t.Fatal("Expected divergence on tampered score")
	}
	found := false
	for _, d := range result.Divergences {
		if d.Field == "TotalRuns" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected TotalRuns divergence, got %+v", result.Divergences)
	}
}

func TestVerifyInnings_DetectsStatsTampering(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	record(t, f, domain.RecordBallInput{BatsmanID: "bat1", NonStrikerID: "bat2", BowlerID: "bowl1", Runs: 6})

	f.stats.ReplaceForInnings(ctx, f.matchID, f.inningsID, map[string]*domain.PlayerMatchStats{
		"bat1": {Runs: 6, BallsFaced: 1, Sixes: 2},
	})

	result, err := f.verifier.VerifyInnings(ctx, f.inningsID)
	if err != nil {
		t.Fatalf("VerifyInnings failed: %v", err)
	}

	if result.Match {
		t.Fatal("Expected divergence on tampered stats")
	}
}

func TestVerifyInnings_NotFound(t *testing.T) {
	f := setupFixture(t)

	_, err := f.verifier.VerifyInnings(context.Background(), "missing")
	if !errors.Is(err, ErrInningsNotFound) {
		t.Errorf("Expected ErrInningsNotFound, got %v", err)
	}
}

func TestVerifyMatch_ReportsPerInnings(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	record(t, f, domain.RecordBallInput{BatsmanID: "bat1", NonStrikerID: "bat2", BowlerID: "bowl1", Runs: 1})

	report, err := f.verifier.VerifyMatch(ctx, f.matchID)
	if err != nil {
		t.Fatalf("VerifyMatch failed: %v", err)
	}

	if report.TotalInnings != 2 {
		t.Fatalf("TotalInnings = %d, want 2", report.TotalInnings)
	}
	if report.MatchedInnings != 2 || report.DivergentInnings != 0 {
		t.Errorf("Expected both innings clean, got %+v", report)
	}
}
