package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"boxcricket/internal/domain"
	"boxcricket/internal/storage/migrations"
	"boxcricket/internal/storage/postgres"
)

// setupTestDB creates a PostgreSQL container for testing and applies the
// embedded migrations. Returns a cleanup function that must be called
// after tests complete.
//
// Tests live in package postgres_test because the migration runner
// imports the postgres package.
func setupTestDB(t *testing.T) (*postgres.Pool, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := pgcontainer.Run(ctx, "postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("test"),
		pgcontainer.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := postgres.NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	err = migrations.RunPostgresMigrations(ctx, pool)
	require.NoError(t, err, "failed to run migrations")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// createTestMatch inserts a match with a fixed two-team roster and one
// innings, and returns (matchID, inningsID).
func createTestMatch(t *testing.T, ctx context.Context, pool *postgres.Pool, id string) (string, string) {
	t.Helper()

	matchStore := postgres.NewMatchStore(pool)
	match := &domain.Match{
		ID:         id,
		TotalOvers: 6,
		Players: []domain.MatchPlayer{
			{PlayerID: "bat1", Team: "A"},
			{PlayerID: "bat2", Team: "A"},
			{PlayerID: "bowl1", Team: "B"},
			{PlayerID: "keeper1", Team: "B"},
		},
	}
	require.NoError(t, matchStore.Insert(ctx, match))

	inningsStore := postgres.NewInningsStore(pool)
	inningsID := id + "-inn1"
	innings := &domain.Innings{
		ID:            inningsID,
		MatchID:       id,
		InningsNumber: 1,
		BattingTeam:   "A",
		Status:        domain.InningsInProgress,
	}
	require.NoError(t, inningsStore.Insert(ctx, innings))

	return id, inningsID
}
