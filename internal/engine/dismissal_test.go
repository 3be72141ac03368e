package engine

import (
	"testing"

	"boxcricket/internal/domain"
)

func TestResolveDismissal_DefaultsToStriker(t *testing.T) {
	d := ResolveDismissal("striker", "", "", domain.WicketBowled)

	if d.DismissedBatsmanID != "striker" {
		t.Errorf("DismissedBatsmanID = %q, want striker", d.DismissedBatsmanID)
	}
	if !d.BowlerCredited {
		t.Error("Bowled should credit the bowler")
	}
}

func TestResolveDismissal_ExplicitNonStrikerRunOut(t *testing.T) {
	d := ResolveDismissal("striker", "nonstriker", "fielder", domain.WicketRunOut)

	if d.DismissedBatsmanID != "nonstriker" {
		t.Errorf("DismissedBatsmanID = %q, want nonstriker", d.DismissedBatsmanID)
	}
	if d.BowlerCredited {
		t.Error("Run-out must never credit the bowler")
	}
	if !d.FielderRunOut {
		t.Error("Run-out should credit the named fielder")
	}
}

func TestResolveDismissal_BowlerCredit(t *testing.T) {
	credited := []domain.WicketType{
		domain.WicketBowled,
		domain.WicketCaught,
		domain.WicketCaughtAndBowled,
		domain.WicketStumped,
		domain.WicketHitWicket,
	}
	for _, wt := range credited {
		if d := ResolveDismissal("s", "", "", wt); !d.BowlerCredited {
			t.Errorf("%s should credit the bowler", wt)
		}
	}

	uncredited := []domain.WicketType{domain.WicketRunOut, domain.WicketRetired, domain.WicketOther}
	for _, wt := range uncredited {
		if d := ResolveDismissal("s", "", "", wt); d.BowlerCredited {
			t.Errorf("%s must not credit the bowler", wt)
		}
	}
}

func TestResolveDismissal_FielderTallies(t *testing.T) {
	tests := []struct {
		wicketType domain.WicketType
		catch      bool
		runOut     bool
		stumping   bool
	}{
		{domain.WicketCaught, true, false, false},
		{domain.WicketCaughtAndBowled, true, false, false},
		{domain.WicketRunOut, false, true, false},
		{domain.WicketStumped, false, false, true},
		{domain.WicketBowled, false, false, false},
	}

	for _, tt := range tests {
		d := ResolveDismissal("s", "", "fielder", tt.wicketType)
		if d.FielderCatch != tt.catch || d.FielderRunOut != tt.runOut || d.FielderStumping != tt.stumping {
			t.Errorf("%s: got catch=%v runOut=%v stumping=%v, want %v/%v/%v",
				tt.wicketType, d.FielderCatch, d.FielderRunOut, d.FielderStumping,
				tt.catch, tt.runOut, tt.stumping)
		}
	}
}

func TestResolveDismissal_NoFielderNamed(t *testing.T) {
	d := ResolveDismissal("s", "", "", domain.WicketCaught)
	if d.FielderCatch || d.FielderRunOut || d.FielderStumping {
		t.Error("No fielder tallies without a named fielder")
	}
}
