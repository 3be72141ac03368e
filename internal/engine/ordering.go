package engine

import (
	"errors"
	"sort"

	"boxcricket/internal/domain"
)

// ErrInvalidOrdering is returned when a ball log is not in insertion order.
var ErrInvalidOrdering = errors.New("balls are not in insertion order")

// SortBalls orders a log by (OverNumber ASC, BallNumber ASC, Seq ASC).
// Illegal deliveries share a pending ball number, so Seq breaks the tie
// by insertion order.
func SortBalls(balls []*domain.Ball) {
	sort.SliceStable(balls, func(i, j int) bool {
		return compareBalls(balls[i], balls[j]) < 0
	})
}

// ValidateOrdering checks that a log is strictly ordered by Seq.
func ValidateOrdering(balls []*domain.Ball) error {
	for i := 1; i < len(balls); i++ {
		if balls[i-1].Seq >= balls[i].Seq {
			return ErrInvalidOrdering
		}
	}
	return nil
}

func compareBalls(a, b *domain.Ball) int {
	if a.OverNumber != b.OverNumber {
		return a.OverNumber - b.OverNumber
	}
	if a.BallNumber != b.BallNumber {
		return a.BallNumber - b.BallNumber
	}
	return a.Seq - b.Seq
}
