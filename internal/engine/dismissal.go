package engine

import "boxcricket/internal/domain"

// Dismissal is a resolved wicket: who is out and who gets credited.
type Dismissal struct {
	DismissedBatsmanID string

	// BowlerCredited is true for dismissal types attributed to the
	// bowler. Run-outs never credit the bowler.
	BowlerCredited bool

	// Fielder tallies, keyed off the named fielder (wicketkeeper for a
	// stumping). CaughtAndBowled catches credit the bowler instead.
	FielderCatch    bool
	FielderRunOut   bool
	FielderStumping bool
}

// ResolveDismissal determines the dismissed batsman and credit assignment
// for a wicket ball. The dismissed batsman defaults to the striker, which
// is correct for every dismissal type except a run-out of the non-striker;
// those must name the dismissed batsman explicitly.
func ResolveDismissal(strikerID, explicitDismissedID, fielderID string, wicketType domain.WicketType) Dismissal {
	d := Dismissal{DismissedBatsmanID: strikerID}
	if explicitDismissedID != "" {
		d.DismissedBatsmanID = explicitDismissedID
	}

	switch wicketType {
	case domain.WicketBowled, domain.WicketCaught, domain.WicketCaughtAndBowled,
		domain.WicketStumped, domain.WicketHitWicket:
		d.BowlerCredited = true
	}

	if fielderID != "" {
		switch wicketType {
		case domain.WicketCaught, domain.WicketCaughtAndBowled:
			d.FielderCatch = true
		case domain.WicketRunOut:
			d.FielderRunOut = true
		case domain.WicketStumped:
			d.FielderStumping = true
		}
	}

	return d
}
