package domain

// WicketType identifies how a batsman was dismissed.
type WicketType string

// Wicket types. RUN_OUT is the only type that never credits the bowler.
const (
	WicketBowled          WicketType = "BOWLED"
	WicketCaught          WicketType = "CAUGHT"
	WicketCaughtAndBowled WicketType = "CAUGHT_AND_BOWLED"
	WicketRunOut          WicketType = "RUN_OUT"
	WicketStumped         WicketType = "STUMPED"
	WicketLBW             WicketType = "LBW"
	WicketHitWicket       WicketType = "HIT_WICKET"
	WicketRetired         WicketType = "RETIRED"
	WicketOther           WicketType = "OTHER"
)

// Ball is one delivery event, legal or illegal. The ordered sequence of
// Balls for an innings is the single source of truth; score state and
// player stats are derived from it by replay, never mutated independently.
type Ball struct {
	ID        string // deterministic hash once persisted, temporary uuid before
	InningsID string

	// Seq is the insertion-order position within the innings (0-based).
	// It is the undo tiebreaker when several illegal deliveries share the
	// same (OverNumber, BallNumber).
	Seq int

	OverNumber int // 0-based
	BallNumber int // 1-based within the over; counts legal deliveries only

	// Runs includes off-the-bat runs plus any bonus run awarded by the
	// extras policy. No base run is added for illegal deliveries.
	Runs int

	IsWide   bool
	IsNoBall bool
	IsWicket bool

	BatsmanID    string
	NonStrikerID string
	BowlerID     string

	// StrikerChanged is derived by the strike rotation rule, not input.
	StrikerChanged bool

	WicketType         WicketType // empty when not a wicket
	FielderID          string     // empty when no fielder involved
	DismissedBatsmanID string     // empty when not a wicket
}

// IsLegal reports whether the delivery counts toward the 6-ball over.
func (b *Ball) IsLegal() bool {
	return !b.IsWide && !b.IsNoBall
}

// RecordBallInput is the raw caller input for recording one delivery.
// Runs may be non-zero on a wide or no-ball (byes/overthrows in this
// variant's accounting).
type RecordBallInput struct {
	BatsmanID    string `json:"batsmanId"`
	NonStrikerID string `json:"nonStrikerId"`
	BowlerID     string `json:"bowlerId"`

	Runs     int  `json:"runs"`
	IsWide   bool `json:"isWide"`
	IsNoBall bool `json:"isNoBall"`
	IsWicket bool `json:"isWicket"`

	WicketType         WicketType `json:"wicketType,omitempty"`
	FielderID          string     `json:"fielderId,omitempty"`
	DismissedBatsmanID string     `json:"dismissedBatsmanId,omitempty"`
}
