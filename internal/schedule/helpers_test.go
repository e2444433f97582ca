package schedule

import (
	"fmt"
	"time"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/google/uuid"
)

var testStart = time.Date(2025, time.June, 14, 9, 0, 0, 0, time.UTC)

// sequentialIDs returns a deterministic ID source: 00000000-0000-0000-0000-000000000001, ...
func sequentialIDs() func() uuid.UUID {
	var n uint64
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		for i := 0; i < 8; i++ {
			id[15-i] = byte(n >> (8 * i))
		}
		return id
	}
}

func newTestScheduler() *Scheduler {
	return New(
		WithIDSource(sequentialIDs()),
		WithClock(func() time.Time { return testStart }),
	)
}

func makeTeams(pool bracket.Label, count int) []bracket.Team {
	teams := make([]bracket.Team, count)
	for i := range teams {
		teams[i] = bracket.Team{
			ID:   uuid.New(),
			Name: fmt.Sprintf("%s%d", pool, i+1),
			Pool: pool,
		}
	}
	return teams
}

func ptr[T any](v T) *T {
	return &v
}

func result(round bracket.Round, teamA, teamB uuid.UUID, scoreA, scoreB int) bracket.Match {
	return bracket.Match{
		ID:      uuid.New(),
		TeamAID: &teamA,
		TeamBID: &teamB,
		ScoreA:  &scoreA,
		ScoreB:  &scoreB,
		Status:  bracket.MatchCompleted,
		Round:   round,
		Bracket: bracket.LabelA,
	}
}

// complete gives every generated match a score, team A winning by the given margin
func complete(matches []bracket.Match, margin int) []bracket.Match {
	done := make([]bracket.Match, len(matches))
	for i, m := range matches {
		m.ScoreA = ptr(10 + margin)
		m.ScoreB = ptr(10)
		m.Status = bracket.MatchCompleted
		done[i] = m
	}
	return done
}

type pair [2]uuid.UUID

func pairOf(m bracket.Match) pair {
	a, b := *m.TeamAID, *m.TeamBID
	if a.String() > b.String() {
		a, b = b, a
	}
	return pair{a, b}
}
