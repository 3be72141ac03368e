package engine

import "boxcricket/internal/domain"

// IllegalStreak counts consecutive illegal deliveries at the tail of a
// chronologically ordered ball log. It walks backwards from the most
// recent ball and stops at the first legal delivery.
func IllegalStreak(balls []*domain.Ball) int {
	streak := 0
	for i := len(balls) - 1; i >= 0; i-- {
		if balls[i].IsLegal() {
			break
		}
		streak++
	}
	return streak
}
