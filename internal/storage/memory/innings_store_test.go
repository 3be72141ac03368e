package memory

import (
	"context"
	"errors"
	"testing"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage"
)

func TestInningsStore_InsertAndGet(t *testing.T) {
	store := NewInningsStore()
	ctx := context.Background()

	in := &domain.Innings{
		ID:            "inn1",
		MatchID:       "match1",
		InningsNumber: 1,
		BattingTeam:   "A",
		Status:        domain.InningsInProgress,
	}

	if err := store.Insert(ctx, in); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "inn1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.BattingTeam != "A" {
		t.Errorf("BattingTeam = %q, want A", got.BattingTeam)
	}
}

func TestInningsStore_UpdateScore(t *testing.T) {
	store := NewInningsStore()
	ctx := context.Background()

	if err := store.Insert(ctx, &domain.Innings{ID: "inn1", MatchID: "m1", InningsNumber: 1}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	score := domain.InningsScoreState{TotalRuns: 42, Wickets: 3, Overs: 5, BallsInOver: 2}
	if err := store.UpdateScore(ctx, "inn1", score); err != nil {
		t.Fatalf("UpdateScore failed: %v", err)
	}

	got, _ := store.GetByID(ctx, "inn1")
	if got.Score != score {
		t.Errorf("Score = %+v, want %+v", got.Score, score)
	}
}

func TestInningsStore_GetByMatchAndNumber(t *testing.T) {
	store := NewInningsStore()
	ctx := context.Background()

	store.Insert(ctx, &domain.Innings{ID: "inn1", MatchID: "m1", InningsNumber: 1})
	store.Insert(ctx, &domain.Innings{ID: "inn2", MatchID: "m1", InningsNumber: 2})

	got, err := store.GetByMatchAndNumber(ctx, "m1", 2)
	if err != nil {
		t.Fatalf("GetByMatchAndNumber failed: %v", err)
	}
	if got.ID != "inn2" {
		t.Errorf("Got innings %q, want inn2", got.ID)
	}

	if _, err := store.GetByMatchAndNumber(ctx, "m1", 3); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestInningsStore_UpdateScoreNotFound(t *testing.T) {
	store := NewInningsStore()

	err := store.UpdateScore(context.Background(), "nope", domain.InningsScoreState{})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
