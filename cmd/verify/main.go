// Package main verifies persisted scoring state against a fresh replay
// of the ball log. Exits non-zero when any divergence is found.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"boxcricket/internal/storage/postgres"
	"boxcricket/internal/verification"
)

func main() {
	inningsID := flag.String("innings-id", "", "Innings ID to verify")
	matchID := flag.String("match-id", "", "Match ID to verify (all innings)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	logger := log.New(os.Stderr, "[verify] ", log.LstdFlags)

	if (*inningsID == "") == (*matchID == "") {
		logger.Fatal("exactly one of --innings-id or --match-id is required")
	}
	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	pool, err := postgres.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	verifier := verification.NewReplayVerifier(verification.ReplayVerifierOptions{
		BallStore:        postgres.NewBallStore(pool),
		InningsStore:     postgres.NewInningsStore(pool),
		PlayerStatsStore: postgres.NewPlayerStatsStore(pool),
	})

	var report *verification.VerificationReport
	if *inningsID != "" {
		result, err := verifier.VerifyInnings(ctx, *inningsID)
		if err != nil {
			logger.Fatalf("verify innings: %v", err)
		}
		report = &verification.VerificationReport{
			TotalInnings: 1,
			Results:      []verification.VerificationResult{*result},
		}
		if result.Match {
			report.MatchedInnings = 1
		} else {
			report.DivergentInnings = 1
		}
	} else {
		report, err = verifier.VerifyMatch(ctx, *matchID)
		if err != nil {
			logger.Fatalf("verify match: %v", err)
		}
	}

	if *outputJSON {
		output, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(output))
	} else {
		printReport(report)
	}

	if report.DivergentInnings > 0 {
		os.Exit(1)
	}
}

func printReport(report *verification.VerificationReport) {
	fmt.Printf("\n=== Verification Summary ===\n")
	fmt.Printf("Total Innings:     %d\n", report.TotalInnings)
	fmt.Printf("Matched:           %d\n", report.MatchedInnings)
	fmt.Printf("Divergent:         %d\n", report.DivergentInnings)

	for _, result := range report.Results {
		status := "OK"
		if !result.Match {
			status = "DIVERGED"
		}
		fmt.Printf("\nInnings %s (%d balls): %s\n", result.InningsID, result.BallCount, status)
		for _, d := range result.Divergences {
			fmt.Printf("  %-24s stored=%v replayed=%v\n", d.Field, d.Expected, d.Actual)
		}
	}
}
