// Package service implements the authoritative scoring path: the same
// pure evaluation the optimistic path runs, followed by persistence.
// Every write re-derives score and stats by replaying the full ball log.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"boxcricket/internal/domain"
	"boxcricket/internal/engine"
	"boxcricket/internal/idhash"
	"boxcricket/internal/observability"
	"boxcricket/internal/storage"
)

// ErrInningsCompleted is returned when recording into a closed innings.
var ErrInningsCompleted = errors.New("innings is completed")

// ScoringService is the authoritative scorer. It owns the persisted ball
// log and all state derived from it.
type ScoringService struct {
	evaluator *engine.Evaluator

	balls     storage.BallStore
	innings   storage.InningsStore
	matches   storage.MatchStore
	stats     storage.PlayerStatsStore
	snapshots storage.StatsSnapshotStore

	metrics *observability.Metrics
	verbose bool
}

// Options for creating ScoringService.
type Options struct {
	Evaluator *engine.Evaluator

	// Required stores
	BallStore        storage.BallStore
	InningsStore     storage.InningsStore
	MatchStore       storage.MatchStore
	PlayerStatsStore storage.PlayerStatsStore

	// Optional analytics sink. Snapshot writes are best-effort and never
	// fail the scoring operation.
	StatsSnapshotStore storage.StatsSnapshotStore

	// Optional
	Metrics *observability.Metrics
	Verbose bool
}

// New creates a new ScoringService.
func New(opts Options) *ScoringService {
	ev := opts.Evaluator
	if ev == nil {
		ev = engine.NewEvaluator(nil, nil)
	}
	return &ScoringService{
		evaluator: ev,
		balls:     opts.BallStore,
		innings:   opts.InningsStore,
		matches:   opts.MatchStore,
		stats:     opts.PlayerStatsStore,
		snapshots: opts.StatsSnapshotStore,
		metrics:   opts.Metrics,
		verbose:   opts.Verbose,
	}
}

// SetupMatch persists a match and creates both innings with zeroed
// scores. Innings IDs are deterministic, so repeating the call for the
// same match is rejected as a duplicate rather than forking state.
func (s *ScoringService) SetupMatch(ctx context.Context, m *domain.Match, firstBattingTeam, secondBattingTeam string) ([]*domain.Innings, error) {
	if err := s.matches.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("insert match: %w", err)
	}

	teams := []string{firstBattingTeam, secondBattingTeam}
	result := make([]*domain.Innings, 0, 2)
	for i, team := range teams {
		in := &domain.Innings{
			ID:            idhash.ComputeInningsID(m.ID, i+1),
			MatchID:       m.ID,
			InningsNumber: i + 1,
			BattingTeam:   team,
			Status:        domain.InningsInProgress,
		}
		if err := s.innings.Insert(ctx, in); err != nil {
			return nil, fmt.Errorf("insert innings %d: %w", i+1, err)
		}
		result = append(result, in)
	}

	return result, nil
}

// RecordBall evaluates and persists one delivery. The ball log is loaded
// in full, the delivery is resolved against it, and score plus player
// stats are rewritten from the extended log.
func (s *ScoringService) RecordBall(ctx context.Context, inningsID string, in domain.RecordBallInput) (*domain.RecordResult, error) {
	innings, err := s.innings.GetByID(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("load innings: %w", err)
	}
	if innings.Status == domain.InningsCompleted {
		return nil, ErrInningsCompleted
	}

	match, err := s.matches.GetByID(ctx, innings.MatchID)
	if err != nil {
		return nil, fmt.Errorf("load match: %w", err)
	}

	ballLog, err := s.balls.GetByInnings(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("load ball log: %w", err)
	}

	eval, err := s.evaluator.EvaluateBall(ballLog, innings.Score, in)
	if err != nil {
		s.countError("record")
		return nil, err
	}

	ball := eval.Ball
	ball.InningsID = inningsID
	ball.ID = idhash.ComputeBallID(inningsID, ball.Seq)

	if err := s.balls.Append(ctx, ball); err != nil {
		s.countError("record")
		return nil, fmt.Errorf("append ball: %w", err)
	}
	if err := s.innings.UpdateScore(ctx, inningsID, eval.Score); err != nil {
		return nil, fmt.Errorf("update score: %w", err)
	}

	extended := append(ballLog, ball)
	if err := s.replaceStats(ctx, match.ID, inningsID, extended); err != nil {
		return nil, err
	}
	s.writeSnapshot(ctx, inningsID, len(extended), eval.Score)

	flags, err := s.completionFlags(ctx, match, innings, eval.Score)
	if err != nil {
		return nil, err
	}

	s.countRecord(ball)
	s.logf("recorded ball %d.%d innings=%s runs=%d wicket=%v",
		ball.OverNumber, ball.BallNumber, inningsID, ball.Runs, ball.IsWicket)

	return &domain.RecordResult{
		Ball:               ball,
		UpdatedScore:       eval.Score,
		OverCompleted:      eval.OverCompleted,
		StrikerChanged:     eval.StrikerChanged,
		CanCompleteInnings: flags.canComplete,
		IsAllOut:           flags.allOut,
		IsOversComplete:    flags.oversComplete,
		IsTargetReached:    flags.targetReached,
	}, nil
}

// UndoBall removes the most recent ball and re-derives all state from the
// remaining log. Undo on an empty log is a no-op, not an error.
func (s *ScoringService) UndoBall(ctx context.Context, inningsID string) (*domain.UndoResult, error) {
	innings, err := s.innings.GetByID(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("load innings: %w", err)
	}

	ballLog, err := s.balls.GetByInnings(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("load ball log: %w", err)
	}

	out := engine.UndoLastBall(ballLog, innings.Score)
	if out.DeletedBall == nil {
		return &domain.UndoResult{UpdatedScore: innings.Score}, nil
	}

	if err := s.balls.Delete(ctx, out.DeletedBall.ID); err != nil {
		s.countError("undo")
		return nil, fmt.Errorf("delete ball: %w", err)
	}
	if err := s.innings.UpdateScore(ctx, inningsID, out.Score); err != nil {
		return nil, fmt.Errorf("update score: %w", err)
	}

	if err := s.replaceStats(ctx, innings.MatchID, inningsID, out.RemainingBalls); err != nil {
		return nil, err
	}
	s.writeSnapshot(ctx, inningsID, len(out.RemainingBalls), out.Score)

	if s.metrics != nil {
		s.metrics.BallsUndone.Inc()
	}
	s.logf("undid ball %d.%d innings=%s",
		out.DeletedBall.OverNumber, out.DeletedBall.BallNumber, inningsID)

	return &domain.UndoResult{
		UpdatedScore: out.Score,
		DeletedBall:  out.DeletedBall,
	}, nil
}

// CompleteInnings marks an innings as completed. Completing an already
// completed innings is an error.
func (s *ScoringService) CompleteInnings(ctx context.Context, inningsID string) error {
	innings, err := s.innings.GetByID(ctx, inningsID)
	if err != nil {
		return fmt.Errorf("load innings: %w", err)
	}
	if innings.Status == domain.InningsCompleted {
		return ErrInningsCompleted
	}

	if err := s.innings.UpdateStatus(ctx, inningsID, domain.InningsCompleted); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	s.logf("completed innings %s at %d/%d", inningsID, innings.Score.TotalRuns, innings.Score.Wickets)
	return nil
}

// GetInnings returns the innings row plus its full ball log.
func (s *ScoringService) GetInnings(ctx context.Context, inningsID string) (*domain.Innings, []*domain.Ball, error) {
	innings, err := s.innings.GetByID(ctx, inningsID)
	if err != nil {
		return nil, nil, fmt.Errorf("load innings: %w", err)
	}

	ballLog, err := s.balls.GetByInnings(ctx, inningsID)
	if err != nil {
		return nil, nil, fmt.Errorf("load ball log: %w", err)
	}

	return innings, ballLog, nil
}

// GetStats returns the persisted per-player stat lines for an innings.
func (s *ScoringService) GetStats(ctx context.Context, inningsID string) (map[string]*domain.PlayerMatchStats, error) {
	innings, err := s.innings.GetByID(ctx, inningsID)
	if err != nil {
		return nil, fmt.Errorf("load innings: %w", err)
	}

	stats, err := s.stats.GetByInnings(ctx, innings.MatchID, inningsID)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}

type completion struct {
	allOut        bool
	oversComplete bool
	targetReached bool
	canComplete   bool
}

// completionFlags decides whether the innings may be closed. All-out
// leaves one batsman stranded, so the wicket limit is team size minus
// one. The target applies to the second innings only.
func (s *ScoringService) completionFlags(ctx context.Context, match *domain.Match, innings *domain.Innings, score domain.InningsScoreState) (completion, error) {
	var c completion

	teamSize := match.BattingTeamSize(innings.BattingTeam)
	if teamSize > 1 && score.Wickets >= teamSize-1 {
		c.allOut = true
	}
	if match.TotalOvers > 0 && score.Overs >= match.TotalOvers {
		c.oversComplete = true
	}

	if innings.InningsNumber == 2 {
		first, err := s.innings.GetByMatchAndNumber(ctx, match.ID, 1)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return c, fmt.Errorf("load first innings: %w", err)
		}
		if err == nil && score.TotalRuns >= first.Score.TotalRuns+1 {
			c.targetReached = true
		}
	}

	c.canComplete = c.allOut || c.oversComplete || c.targetReached
	return c, nil
}

// replaceStats replays the log and atomically rewrites every stat line.
func (s *ScoringService) replaceStats(ctx context.Context, matchID, inningsID string, balls []*domain.Ball) error {
	replayed := engine.ReplayStats(balls)
	if s.metrics != nil {
		s.metrics.ReplayBallCount.Observe(float64(len(balls)))
	}
	if err := s.stats.ReplaceForInnings(ctx, matchID, inningsID, replayed.StatsByPlayer); err != nil {
		return fmt.Errorf("replace stats: %w", err)
	}
	return nil
}

// writeSnapshot appends one timeline point to the analytics sink.
// Failures are logged and swallowed.
func (s *ScoringService) writeSnapshot(ctx context.Context, inningsID string, ballCount int, score domain.InningsScoreState) {
	if s.snapshots == nil {
		return
	}

	snap := &domain.StatsSnapshot{
		InningsID:   inningsID,
		BallCount:   ballCount,
		TotalRuns:   score.TotalRuns,
		Wickets:     score.Wickets,
		Overs:       score.Overs,
		BallsInOver: score.BallsInOver,
		RecordedAt:  time.Now().UnixMilli(),
	}
	if err := s.snapshots.Insert(ctx, snap); err != nil {
		log.Printf("snapshot write failed for innings %s: %v", inningsID, err)
	}
}

func (s *ScoringService) countRecord(ball *domain.Ball) {
	if s.metrics == nil {
		return
	}
	s.metrics.BallsRecorded.Inc()
	if ball.IsWide {
		s.metrics.IllegalBalls.WithLabelValues("wide").Inc()
	}
	if ball.IsNoBall {
		s.metrics.IllegalBalls.WithLabelValues("no_ball").Inc()
	}
	if ball.IsWicket {
		s.metrics.WicketsRecorded.WithLabelValues(string(ball.WicketType)).Inc()
	}
}

func (s *ScoringService) countError(operation string) {
	if s.metrics != nil {
		s.metrics.ScoringErrors.WithLabelValues(operation).Inc()
	}
}

func (s *ScoringService) logf(format string, args ...any) {
	if s.verbose {
		log.Printf(format, args...)
	}
}
