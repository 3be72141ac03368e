package engine

import (
	"errors"
	"fmt"

	"boxcricket/internal/domain"
)

// Validation errors. These are preconditions: the evaluator rejects the
// input before any state is derived.
var (
	ErrMissingBatsman    = errors.New("batsman is required")
	ErrMissingNonStriker = errors.New("non-striker is required")
	ErrMissingBowler     = errors.New("bowler is required")
	ErrNegativeRuns      = errors.New("runs must be >= 0")
)

// Evaluation is the fully-resolved outcome of one delivery.
type Evaluation struct {
	Ball           *domain.Ball
	Score          domain.InningsScoreState
	OverCompleted  bool
	StrikerChanged bool
}

// Evaluator turns raw ball input into validated events. It holds no
// mutable state and performs no I/O, so the same instance serves both the
// speculative local path and the authoritative server path.
type Evaluator struct {
	policy ExtrasPolicy
	tracer Tracer
}

// NewEvaluator creates an Evaluator with the given extras policy. A nil
// tracer disables tracing.
func NewEvaluator(policy ExtrasPolicy, tracer Tracer) *Evaluator {
	if policy == nil {
		policy = streakBonusPolicy{}
	}
	return &Evaluator{policy: policy, tracer: tracer}
}

// EvaluateBall resolves one delivery against the existing log and score.
// The returned ball carries no ID; identifier assignment belongs to the
// caller (temporary on the optimistic path, deterministic on the
// authoritative path). The new score is derived by replaying the extended
// log in full, never by incremental addition, which keeps record exactly
// invertible by undo.
func (e *Evaluator) EvaluateBall(existing []*domain.Ball, score domain.InningsScoreState, in domain.RecordBallInput) (*Evaluation, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	isLegal := !in.IsWide && !in.IsNoBall

	// Illegal deliveries share the pending ball number and do not
	// advance it.
	legalInOver := 0
	for _, b := range existing {
		if b.OverNumber == score.Overs && b.IsLegal() {
			legalInOver++
		}
	}
	ballNumber := legalInOver
	if isLegal {
		ballNumber++
	}

	streakBefore := IllegalStreak(existing)
	bonus := 0
	if !isLegal {
		bonus = e.policy.BonusRuns(streakBefore + 1)
	}
	trace(e.tracer, "illegal_streak", map[string]any{
		"streakBefore": streakBefore,
		"isLegal":      isLegal,
		"bonus":        bonus,
		"policy":       e.policy.ID(),
	})

	strikerChanged := ShouldChangeStrike(ballNumber, in.Runs, in.IsWide, in.IsNoBall)

	ball := &domain.Ball{
		Seq:            nextSeq(existing),
		OverNumber:     score.Overs,
		BallNumber:     ballNumber,
		Runs:           in.Runs + bonus,
		IsWide:         in.IsWide,
		IsNoBall:       in.IsNoBall,
		IsWicket:       in.IsWicket,
		BatsmanID:      in.BatsmanID,
		NonStrikerID:   in.NonStrikerID,
		BowlerID:       in.BowlerID,
		StrikerChanged: strikerChanged,
	}
	if in.IsWicket {
		d := ResolveDismissal(in.BatsmanID, in.DismissedBatsmanID, in.FielderID, in.WicketType)
		ball.WicketType = in.WicketType
		ball.FielderID = in.FielderID
		ball.DismissedBatsmanID = d.DismissedBatsmanID
	}

	extended := make([]*domain.Ball, 0, len(existing)+1)
	extended = append(extended, existing...)
	extended = append(extended, ball)
	replayed := ReplayStats(extended)

	progress := AdvanceOver(score.Overs, score.BallsInOver, isLegal)

	trace(e.tracer, "ball_evaluated", map[string]any{
		"over":           ball.OverNumber,
		"ball":           ball.BallNumber,
		"runs":           ball.Runs,
		"strikerChanged": strikerChanged,
		"overCompleted":  progress.OverCompleted,
	})

	return &Evaluation{
		Ball: ball,
		Score: domain.InningsScoreState{
			TotalRuns:   replayed.TotalRuns,
			Wickets:     replayed.Wickets,
			Overs:       progress.Overs,
			BallsInOver: progress.BallsInOver,
		},
		OverCompleted:  progress.OverCompleted,
		StrikerChanged: strikerChanged,
	}, nil
}

func validateInput(in domain.RecordBallInput) error {
	switch {
	case in.BatsmanID == "":
		return ErrMissingBatsman
	case in.NonStrikerID == "":
		return ErrMissingNonStriker
	case in.BowlerID == "":
		return ErrMissingBowler
	case in.Runs < 0:
		return fmt.Errorf("%w: got %d", ErrNegativeRuns, in.Runs)
	}
	return nil
}

// IsValidationError reports whether err is an input precondition failure
// rather than a runtime fault. Validation errors are never retried.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingBatsman) ||
		errors.Is(err, ErrMissingNonStriker) ||
		errors.Is(err, ErrMissingBowler) ||
		errors.Is(err, ErrNegativeRuns)
}

func nextSeq(balls []*domain.Ball) int {
	seq := 0
	for _, b := range balls {
		if b.Seq >= seq {
			seq = b.Seq + 1
		}
	}
	return seq
}
