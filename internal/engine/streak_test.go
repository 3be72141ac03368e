package engine

import (
	"testing"

	"boxcricket/internal/domain"
)

func wide() *domain.Ball   { return &domain.Ball{IsWide: true} }
func noBall() *domain.Ball { return &domain.Ball{IsNoBall: true} }
func legal(runs int) *domain.Ball {
	return &domain.Ball{Runs: runs}
}

func TestIllegalStreak(t *testing.T) {
	tests := []struct {
		name  string
		balls []*domain.Ball
		want  int
	}{
		{"empty log", nil, 0},
		{"single legal", []*domain.Ball{legal(0)}, 0},
		{"single wide", []*domain.Ball{wide()}, 1},
		{"wide then legal", []*domain.Ball{wide(), legal(4)}, 0},
		{"legal then wide", []*domain.Ball{legal(4), wide()}, 1},
		{"two wides", []*domain.Ball{wide(), wide()}, 2},
		{"wide noball wide", []*domain.Ball{wide(), noBall(), wide()}, 3},
		{"streak after break", []*domain.Ball{wide(), wide(), legal(1), noBall()}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IllegalStreak(tt.balls); got != tt.want {
				t.Errorf("IllegalStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakBonusPolicy(t *testing.T) {
	policy, err := PolicyFromConfig(domain.DefaultExtrasPolicy)
	if err != nil {
		t.Fatalf("PolicyFromConfig failed: %v", err)
	}

	// 1st consecutive illegal awards nothing, every later one awards 1.
	for streak, want := range map[int]int{1: 0, 2: 1, 3: 1, 4: 1, 7: 1} {
		if got := policy.BonusRuns(streak); got != want {
			t.Errorf("BonusRuns(%d) = %d, want %d", streak, got, want)
		}
	}
}

func TestClassicExtraPolicy(t *testing.T) {
	policy, err := PolicyFromConfig(domain.ExtrasPolicyConfig{Variant: domain.ExtrasClassic})
	if err != nil {
		t.Fatalf("PolicyFromConfig failed: %v", err)
	}

	for streak, want := range map[int]int{1: 1, 2: 1, 5: 1} {
		if got := policy.BonusRuns(streak); got != want {
			t.Errorf("BonusRuns(%d) = %d, want %d", streak, got, want)
		}
	}
}

func TestPolicyFromConfig_Unknown(t *testing.T) {
	_, err := PolicyFromConfig(domain.ExtrasPolicyConfig{Variant: "DOUBLE_OR_NOTHING"})
	if err == nil {
		t.Fatal("Expected error for unknown variant")
	}
}
