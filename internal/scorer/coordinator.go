// Package scorer implements the optimistic scoring path. An operation is
// applied to local state first and returned immediately; a background
// sync then replays it against the authoritative scorer, reconciling IDs
// on success and rolling the local state back on failure.
package scorer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"boxcricket/internal/domain"
	"boxcricket/internal/engine"
	"boxcricket/internal/observability"
)

// Default sync configuration values.
const (
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 500 * time.Millisecond
	DefaultMaxDelay    = 5 * time.Second
	DefaultBackoffMult = 2.0
)

// ErrSyncFailed wraps the final error after retries are exhausted.
var ErrSyncFailed = errors.New("authoritative sync failed")

// AuthoritativeClient is the server-side path the coordinator syncs
// against. Implemented by service.ScoringService locally and by any HTTP
// client remotely.
type AuthoritativeClient interface {
	RecordBall(ctx context.Context, inningsID string, in domain.RecordBallInput) (*domain.RecordResult, error)
	UndoBall(ctx context.Context, inningsID string) (*domain.UndoResult, error)
}

// SyncOutcome reports how one background sync ended.
type SyncOutcome struct {
	InningsID  string
	RolledBack bool
	Err        error

	// Record is set for record syncs, Undo for undo syncs.
	Record *domain.RecordResult
	Undo   *domain.UndoResult
}

// Coordinator runs the dual-path protocol. One sync is in flight per
// innings at a time; operations issued meanwhile queue in order behind
// it, each evaluated on top of the previous optimistic state.
type Coordinator struct {
	client    AuthoritativeClient
	evaluator *engine.Evaluator
	metrics   *observability.Metrics
	onSync    func(SyncOutcome)

	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64

	mu       sync.Mutex
	sessions map[string]*session
}

// session is the local state of one innings. Its mutex is held from the
// start of an operation until the background sync for it completes, which
// serializes operations per innings.
type session struct {
	mu    sync.Mutex
	balls []*domain.Ball
	score domain.InningsScoreState
}

// Options for creating Coordinator.
type Options struct {
	Client    AuthoritativeClient
	Evaluator *engine.Evaluator

	// Optional
	Metrics *observability.Metrics

	// OnSync is invoked after every background sync, successful or not.
	OnSync func(SyncOutcome)

	MaxRetries  int
	RetryDelay  time.Duration
	MaxDelay    time.Duration
	BackoffMult float64
}

// New creates a new Coordinator.
func New(opts Options) *Coordinator {
	ev := opts.Evaluator
	if ev == nil {
		ev = engine.NewEvaluator(nil, nil)
	}
	c := &Coordinator{
		client:      opts.Client,
		evaluator:   ev,
		metrics:     opts.Metrics,
		onSync:      opts.OnSync,
		maxRetries:  opts.MaxRetries,
		retryDelay:  opts.RetryDelay,
		maxDelay:    opts.MaxDelay,
		backoffMult: opts.BackoffMult,
		sessions:    make(map[string]*session),
	}
	if c.maxRetries <= 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.retryDelay <= 0 {
		c.retryDelay = DefaultRetryDelay
	}
	if c.maxDelay <= 0 {
		c.maxDelay = DefaultMaxDelay
	}
	if c.backoffMult <= 1 {
		c.backoffMult = DefaultBackoffMult
	}
	return c
}

// RecordBall applies the delivery to local state and returns the
// optimistic result immediately. The authoritative sync continues in the
// background; the session stays locked until it finishes, so a caller
// issuing the next ball right away queues rather than races.
func (c *Coordinator) RecordBall(ctx context.Context, inningsID string, in domain.RecordBallInput) (*domain.RecordResult, error) {
	sess := c.session(inningsID)
	sess.mu.Lock()

	eval, err := c.evaluator.EvaluateBall(sess.balls, sess.score, in)
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}

	// Snapshot for rollback.
	prevBalls := sess.balls
	prevScore := sess.score

	ball := eval.Ball
	ball.InningsID = inningsID
	ball.ID = tempID()

	sess.balls = appendBall(sess.balls, ball)
	sess.score = eval.Score

	go func() {
		defer sess.mu.Unlock()

		res, err := c.syncRecord(inningsID, in)
		if err != nil {
			sess.balls = prevBalls
			sess.score = prevScore
			if c.metrics != nil {
				c.metrics.SyncRollbacks.Inc()
			}
			log.Printf("sync failed, rolled back ball %d.%d innings=%s: %v",
				ball.OverNumber, ball.BallNumber, inningsID, err)
			c.notify(SyncOutcome{InningsID: inningsID, RolledBack: true, Err: err})
			return
		}

		// Reconcile: the authoritative ball replaces the temp-ID ball. Both
		// paths ran the same pure evaluation, so everything except the ID
		// already matches.
		sess.balls[len(sess.balls)-1] = res.Ball
		sess.score = res.UpdatedScore
		c.notify(SyncOutcome{InningsID: inningsID, Record: res})
	}()

	return &domain.RecordResult{
		Ball:           ball,
		UpdatedScore:   eval.Score,
		OverCompleted:  eval.OverCompleted,
		StrikerChanged: eval.StrikerChanged,
	}, nil
}

// UndoBall removes the most recent local ball and returns immediately.
// Undo of an empty log is a local no-op and never reaches the server.
func (c *Coordinator) UndoBall(ctx context.Context, inningsID string) (*domain.UndoResult, error) {
	sess := c.session(inningsID)
	sess.mu.Lock()

	out := engine.UndoLastBall(sess.balls, sess.score)
	if out.DeletedBall == nil {
		sess.mu.Unlock()
		return &domain.UndoResult{UpdatedScore: sess.score}, nil
	}

	prevBalls := sess.balls
	prevScore := sess.score

	sess.balls = out.RemainingBalls
	sess.score = out.Score

	go func() {
		defer sess.mu.Unlock()

		res, err := c.syncUndo(inningsID)
		if err != nil {
			sess.balls = prevBalls
			sess.score = prevScore
			if c.metrics != nil {
				c.metrics.SyncRollbacks.Inc()
			}
			log.Printf("undo sync failed, rolled back innings=%s: %v", inningsID, err)
			c.notify(SyncOutcome{InningsID: inningsID, RolledBack: true, Err: err})
			return
		}

		sess.score = res.UpdatedScore
		c.notify(SyncOutcome{InningsID: inningsID, Undo: res})
	}()

	return &domain.UndoResult{
		UpdatedScore: out.Score,
		DeletedBall:  out.DeletedBall,
	}, nil
}

// State returns a copy of the current local log and score. It waits for
// any in-flight sync, so the answer reflects a settled state.
func (c *Coordinator) State(inningsID string) ([]*domain.Ball, domain.InningsScoreState) {
	sess := c.session(inningsID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	balls := make([]*domain.Ball, len(sess.balls))
	copy(balls, sess.balls)
	return balls, sess.score
}

// Seed primes the local state of an innings, typically from the
// authoritative store when a scoring session resumes mid-innings.
func (c *Coordinator) Seed(inningsID string, balls []*domain.Ball, score domain.InningsScoreState) {
	sess := c.session(inningsID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.balls = make([]*domain.Ball, len(balls))
	copy(sess.balls, balls)
	sess.score = score
}

// Wait blocks until the innings has no sync in flight.
func (c *Coordinator) Wait(inningsID string) {
	sess := c.session(inningsID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
}

// syncRecord pushes one record to the authoritative path with bounded
// exponential backoff. Validation errors are never retried.
func (c *Coordinator) syncRecord(inningsID string, in domain.RecordBallInput) (*domain.RecordResult, error) {
	var res *domain.RecordResult
	err := c.withRetry(func(ctx context.Context) error {
		var err error
		res, err = c.client.RecordBall(ctx, inningsID, in)
		return err
	})
	return res, err
}

func (c *Coordinator) syncUndo(inningsID string) (*domain.UndoResult, error) {
	var res *domain.UndoResult
	err := c.withRetry(func(ctx context.Context) error {
		var err error
		res, err = c.client.UndoBall(ctx, inningsID)
		return err
	})
	return res, err
}

func (c *Coordinator) withRetry(call func(ctx context.Context) error) error {
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.SyncLatency.Observe(time.Since(start).Seconds())
		}
	}()

	// Background syncs outlive the request context.
	ctx := context.Background()

	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if c.metrics != nil {
				c.metrics.SyncRetries.Inc()
			}
			time.Sleep(delay)
			// Exponential backoff
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}
		if c.metrics != nil {
			c.metrics.SyncAttempts.Inc()
		}

		err := call(ctx)
		if err == nil {
			return nil
		}
		if engine.IsValidationError(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrSyncFailed, c.maxRetries+1, lastErr)
}

func (c *Coordinator) session(inningsID string) *session {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[inningsID]
	if !ok {
		sess = &session{}
		c.sessions[inningsID] = sess
	}
	return sess
}

func (c *Coordinator) notify(outcome SyncOutcome) {
	if c.onSync != nil {
		c.onSync(outcome)
	}
}

// tempID returns a temporary client-side identifier, replaced by the
// deterministic server ID at reconciliation.
func tempID() string {
	return "temp-" + uuid.NewString()
}

func appendBall(balls []*domain.Ball, b *domain.Ball) []*domain.Ball {
	extended := make([]*domain.Ball, 0, len(balls)+1)
	extended = append(extended, balls...)
	extended = append(extended, b)
	return extended
}
