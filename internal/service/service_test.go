package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/db"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/schedule"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, time.June, 14, 9, 0, 0, 0, time.UTC)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	// Every new connection would open its own empty in-memory database
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, db.RunMigrations(database.DB), "Failed to apply migrations")

	return database
}

type testServices struct {
	tournaments *TournamentService
	matches     *MatchService
	store       *store.TournamentStore
}

func newTestServices(database *sqlx.DB) testServices {
	tournamentStore := store.NewTournamentStore(database)
	scheduler := schedule.New()
	return testServices{
		tournaments: NewTournamentService(database, tournamentStore, scheduler),
		matches:     NewMatchService(database, tournamentStore, store.NewMarshallStore(database), scheduler),
		store:       tournamentStore,
	}
}

func teamInputs(pool bracket.Label, count int) []TeamInput {
	inputs := make([]TeamInput, count)
	for i := range inputs {
		inputs[i] = TeamInput{Name: fmt.Sprintf("Pool %s Team %d", pool, i+1), Pool: pool}
	}
	return inputs
}

func scoreInput(a, b int) ScoreInput {
	return ScoreInput{ScoreA: &a, ScoreB: &b, Status: bracket.MatchCompleted}
}

// completeRound finishes every playable match of the round, team A winning 15-10.
// Matches missing a team are settled when the round is scheduled.
func completeRound(t *testing.T, svc testServices, tournamentID string, round bracket.Round) {
	t.Helper()

	matches, err := svc.store.GetMatches(context.Background(), tournamentID)
	require.NoError(t, err)
	for _, m := range matches {
		if m.Round != round || m.TeamAID == nil || m.TeamBID == nil {
			continue
		}
		_, err := svc.matches.RecordScore(context.Background(), m.ID, scoreInput(15, 10))
		require.NoError(t, err)
	}
}
