package engine

import (
	"testing"

	"boxcricket/internal/domain"
)

func TestSortBalls(t *testing.T) {
	balls := []*domain.Ball{
		delivery(3, 1, 1, 0),
		delivery(1, 0, 1, 0, asWide),
		delivery(0, 0, 1, 2),
		delivery(2, 0, 2, 0),
	}

	SortBalls(balls)

	wantSeqs := []int{0, 1, 2, 3}
	for i, want := range wantSeqs {
		if balls[i].Seq != want {
			t.Errorf("position %d has seq %d, want %d", i, balls[i].Seq, want)
		}
	}
}

func TestSortBalls_SharedBallNumber(t *testing.T) {
	// Two wides share ball number 1; insertion order must win.
	balls := []*domain.Ball{
		delivery(2, 0, 1, 1, asWide),
		delivery(1, 0, 1, 0, asWide),
	}

	SortBalls(balls)

	if balls[0].Seq != 1 || balls[1].Seq != 2 {
		t.Errorf("Tie not broken by insertion order: [%d, %d]", balls[0].Seq, balls[1].Seq)
	}
}

func TestValidateOrdering(t *testing.T) {
	ordered := []*domain.Ball{delivery(0, 0, 1, 0), delivery(1, 0, 2, 0)}
	if err := ValidateOrdering(ordered); err != nil {
		t.Errorf("ValidateOrdering on ordered log: %v", err)
	}

	unordered := []*domain.Ball{delivery(1, 0, 2, 0), delivery(0, 0, 1, 0)}
	if err := ValidateOrdering(unordered); err == nil {
		t.Error("ValidateOrdering accepted an unordered log")
	}
}
