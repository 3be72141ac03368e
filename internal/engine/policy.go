package engine

import (
	"errors"

	"boxcricket/internal/domain"
)

// ErrUnknownExtrasVariant is returned for an unrecognized policy variant.
var ErrUnknownExtrasVariant = errors.New("unknown extras policy variant")

// ExtrasPolicy decides the bonus run awarded to an illegal delivery given
// the consecutive-illegal streak length including the new delivery.
type ExtrasPolicy interface {
	// BonusRuns returns the bonus for the newest delivery of a streak of
	// the given length. Only called for illegal deliveries; a legal
	// delivery always breaks the streak and earns no bonus.
	BonusRuns(newStreak int) int

	// ID returns the policy identifier.
	ID() string
}

// PolicyFromConfig creates an ExtrasPolicy from its configuration.
func PolicyFromConfig(cfg domain.ExtrasPolicyConfig) (ExtrasPolicy, error) {
	switch cfg.Variant {
	case domain.ExtrasStreakBonus, "":
		return streakBonusPolicy{}, nil
	case domain.ExtrasClassic:
		return classicExtraPolicy{}, nil
	default:
		return nil, ErrUnknownExtrasVariant
	}
}

// streakBonusPolicy is the box-cricket house rule: no run for the first
// illegal delivery after a legal one, 1 run for the 2nd, 3rd, 4th, ...
// consecutive illegal delivery until the streak breaks.
type streakBonusPolicy struct{}

func (streakBonusPolicy) BonusRuns(newStreak int) int {
	if newStreak >= 2 {
		return 1
	}
	return 0
}

func (streakBonusPolicy) ID() string { return string(domain.ExtrasStreakBonus) }

// classicExtraPolicy awards 1 run for every illegal delivery.
type classicExtraPolicy struct{}

func (classicExtraPolicy) BonusRuns(newStreak int) int {
	if newStreak >= 1 {
		return 1
	}
	return 0
}

func (classicExtraPolicy) ID() string { return string(domain.ExtrasClassic) }
