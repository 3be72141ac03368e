// Package main provides the authoritative scoring server:
// - Scoring API: record, undo, innings state, player stats
// - Live feed: WebSocket fan-out of accepted updates
// - Observability: health, metrics, status
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"boxcricket/internal/domain"
	"boxcricket/internal/engine"
	"boxcricket/internal/live"
	"boxcricket/internal/observability"
	"boxcricket/internal/service"
	"boxcricket/internal/storage"
	chstore "boxcricket/internal/storage/clickhouse"
	"boxcricket/internal/storage/memory"
	"boxcricket/internal/storage/migrations"
	pgstore "boxcricket/internal/storage/postgres"
)

// Server holds all components of the scoring service.
type Server struct {
	svc     *service.ScoringService
	hub     *live.Hub
	metrics *observability.Metrics
	logger  *log.Logger

	started     time.Time
	ballsServed atomic.Int64
	undosServed atomic.Int64
}

// allStores holds all storage implementations.
type allStores struct {
	ballStore     storage.BallStore
	inningsStore  storage.InningsStore
	matchStore    storage.MatchStore
	statsStore    storage.PlayerStatsStore
	snapshotStore storage.StatsSnapshotStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional analytics sink)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	extrasVariant := flag.String("extras-policy", envOr("EXTRAS_POLICY", string(domain.ExtrasStreakBonus)),
		"Extras scoring variant: STREAK_BONUS or CLASSIC_EXTRA")
	verbose := flag.Bool("verbose", false, "Verbose scoring logs")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	policy, err := engine.PolicyFromConfig(domain.ExtrasPolicyConfig{
		Variant: domain.ExtrasVariant(*extrasVariant),
	})
	if err != nil {
		logger.Fatalf("Invalid extras policy %q: %v", *extrasVariant, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory, logger)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	metrics := observability.NewMetrics("")

	svc := service.New(service.Options{
		Evaluator:          engine.NewEvaluator(policy, nil),
		BallStore:          stores.ballStore,
		InningsStore:       stores.inningsStore,
		MatchStore:         stores.matchStore,
		PlayerStatsStore:   stores.statsStore,
		StatsSnapshotStore: stores.snapshotStore,
		Metrics:            metrics,
		Verbose:            *verbose,
	})

	server := &Server{
		svc:     svc,
		hub:     live.NewHub(metrics),
		metrics: metrics,
		logger:  logger,
		started: time.Now(),
	}

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.routes(),
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
		cancel()
	}()

	logger.Printf("Scoring server listening on %s (extras policy: %s)", *addr, policy.ID())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores, running migrations on boot.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool, logger *log.Logger) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			ballStore:     memory.NewBallStore(),
			inningsStore:  memory.NewInningsStore(),
			matchStore:    memory.NewMatchStore(),
			statsStore:    memory.NewPlayerStatsStore(),
			snapshotStore: memory.NewStatsSnapshotStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
	}

	stores := &allStores{
		ballStore:    pgstore.NewBallStore(pool),
		inningsStore: pgstore.NewInningsStore(pool),
		matchStore:   pgstore.NewMatchStore(pool),
		statsStore:   pgstore.NewPlayerStatsStore(pool),
	}

	// The analytics sink is optional; scoring never depends on it.
	var chConn *chstore.Conn
	if clickhouseDSN != "" {
		chConn, err = migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
		}
		stores.snapshotStore = chstore.NewStatsSnapshotStore(chConn)
	} else {
		logger.Println("No ClickHouse DSN; score timeline snapshots disabled")
	}

	cleanup := func() {
		if chConn != nil {
			chConn.Close()
		}
		pool.Close()
	}

	return stores, cleanup, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/matches", s.handleCreateMatch)
	mux.HandleFunc("GET /api/innings/{id}", s.handleGetInnings)
	mux.HandleFunc("GET /api/innings/{id}/stats", s.handleGetStats)
	mux.HandleFunc("POST /api/innings/{id}/balls", s.handleRecordBall)
	mux.HandleFunc("POST /api/innings/{id}/undo", s.handleUndoBall)
	mux.HandleFunc("POST /api/innings/{id}/complete", s.handleCompleteInnings)
	mux.HandleFunc("GET /api/innings/{id}/ws", s.handleLiveFeed)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/status", s.handleStatus)

	return mux
}

// CreateMatchRequest is the JSON body for POST /api/matches.
type CreateMatchRequest struct {
	ID                string               `json:"id"`
	TotalOvers        int                  `json:"totalOvers"`
	Players           []matchPlayerRequest `json:"players"`
	FirstBattingTeam  string               `json:"firstBattingTeam"`
	SecondBattingTeam string               `json:"secondBattingTeam"`
}

type matchPlayerRequest struct {
	PlayerID     string `json:"playerId"`
	Team         string `json:"team"`
	IsDualPlayer bool   `json:"isDualPlayer"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ID == "" || req.TotalOvers <= 0 || req.FirstBattingTeam == "" || req.SecondBattingTeam == "" {
		writeError(w, http.StatusBadRequest, "id, totalOvers and both batting teams are required")
		return
	}

	match := &domain.Match{ID: req.ID, TotalOvers: req.TotalOvers}
	for _, p := range req.Players {
		match.Players = append(match.Players, domain.MatchPlayer{
			PlayerID:     p.PlayerID,
			Team:         p.Team,
			IsDualPlayer: p.IsDualPlayer,
		})
	}

	innings, err := s.svc.SetupMatch(r.Context(), match, req.FirstBattingTeam, req.SecondBattingTeam)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			writeError(w, http.StatusConflict, "match already exists")
			return
		}
		s.logger.Printf("create match: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"match":   match,
		"innings": innings,
	})
}

func (s *Server) handleRecordBall(w http.ResponseWriter, r *http.Request) {
	inningsID := r.PathValue("id")

	var in domain.RecordBallInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.svc.RecordBall(r.Context(), inningsID, in)
	if err != nil {
		s.writeScoringError(w, "record ball", err)
		return
	}

	s.ballsServed.Add(1)
	s.hub.Broadcast(live.Update{
		Type:      live.MsgTypeBallRecorded,
		InningsID: inningsID,
		Score:     res.UpdatedScore,
		Ball:      res.Ball,
	})

	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleUndoBall(w http.ResponseWriter, r *http.Request) {
	inningsID := r.PathValue("id")

	res, err := s.svc.UndoBall(r.Context(), inningsID)
	if err != nil {
		s.writeScoringError(w, "undo ball", err)
		return
	}

	if res.DeletedBall != nil {
		s.undosServed.Add(1)
		s.hub.Broadcast(live.Update{
			Type:      live.MsgTypeBallUndone,
			InningsID: inningsID,
			Score:     res.UpdatedScore,
			Ball:      res.DeletedBall,
		})
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompleteInnings(w http.ResponseWriter, r *http.Request) {
	inningsID := r.PathValue("id")

	if err := s.svc.CompleteInnings(r.Context(), inningsID); err != nil {
		s.writeScoringError(w, "complete innings", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": domain.InningsCompleted})
}

func (s *Server) handleGetInnings(w http.ResponseWriter, r *http.Request) {
	inningsID := r.PathValue("id")

	innings, balls, err := s.svc.GetInnings(r.Context(), inningsID)
	if err != nil {
		s.writeScoringError(w, "get innings", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"innings": innings,
		"balls":   balls,
	})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	inningsID := r.PathValue("id")

	stats, err := s.svc.GetStats(r.Context(), inningsID)
	if err != nil {
		s.writeScoringError(w, "get stats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleLiveFeed(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r, r.PathValue("id"))
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	BallsServed int64  `json:"balls_served"`
	UndosServed int64  `json:"undos_served"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:      "running",
		Uptime:      time.Since(s.started).String(),
		BallsServed: s.ballsServed.Load(),
		UndosServed: s.undosServed.Load(),
	})
}

// writeScoringError maps service errors to HTTP status codes.
func (s *Server) writeScoringError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "innings not found")
	case errors.Is(err, service.ErrInningsCompleted):
		writeError(w, http.StatusConflict, "innings is completed")
	case engine.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Printf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
