package domain

// ExtrasVariant selects how bonus runs are awarded for illegal deliveries.
type ExtrasVariant string

const (
	// ExtrasStreakBonus is the house rule: the 1st consecutive illegal
	// delivery awards nothing, every subsequent one in the streak awards
	// exactly 1 bonus run.
	ExtrasStreakBonus ExtrasVariant = "STREAK_BONUS"

	// ExtrasClassic awards 1 run for every wide or no-ball, as in
	// standard limited-overs cricket.
	ExtrasClassic ExtrasVariant = "CLASSIC_EXTRA"
)

// ExtrasPolicyConfig configures the bonus-run policy for a match variant.
type ExtrasPolicyConfig struct {
	Variant ExtrasVariant
}

// DefaultExtrasPolicy is the box-cricket house rule.
var DefaultExtrasPolicy = ExtrasPolicyConfig{Variant: ExtrasStreakBonus}
