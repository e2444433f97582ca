package schedule

import (
	"testing"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankTeamsTieBreaks(t *testing.T) {
	teams := []bracket.Team{
		{ID: uuid.New(), Name: "C", Pool: bracket.LabelA},
		{ID: uuid.New(), Name: "B", Pool: bracket.LabelA},
		{ID: uuid.New(), Name: "A", Pool: bracket.LabelA},
	}
	c, b, a := teams[0].ID, teams[1].ID, teams[2].ID
	outsider := uuid.New()

	matches := []bracket.Match{
		// A: 9 points, +5
		result(bracket.RoundRobin, a, outsider, 2, 1),
		result(bracket.RoundRobin, outsider, a, 1, 2),
		result(bracket.RoundRobin, a, outsider, 4, 1),
		// B: 9 points, +2
		result(bracket.RoundRobin, b, outsider, 13, 12),
		result(bracket.RoundRobin, b, outsider, 13, 12),
		result(bracket.RoundRobin, outsider, b, 12, 13),
		result(bracket.RoundRobin, b, outsider, 12, 13),
		// C: 6 points, +10
		result(bracket.RoundRobin, c, outsider, 15, 10),
		result(bracket.RoundRobin, outsider, c, 10, 15),
	}

	ranked, err := RankTeams(teams, matches)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, []string{"A", "B", "C"}, []string{ranked[0].Name, ranked[1].Name, ranked[2].Name})
	for i, team := range ranked {
		require.NotNil(t, team.Rank)
		assert.Equal(t, i+1, *team.Rank)
	}

	// The caller's slice is not reordered or ranked
	assert.Equal(t, "C", teams[0].Name)
	assert.Nil(t, teams[0].Rank)
}

func TestRankTeamsWinsBreakTies(t *testing.T) {
	teams := makeTeams(bracket.LabelA, 2)
	first, second := teams[0].ID, teams[1].ID
	outsider := uuid.New()

	matches := []bracket.Match{
		// first: 1 win + 0 draws = 3 points, +0 after a loss
		result(bracket.RoundRobin, first, outsider, 15, 10),
		result(bracket.RoundRobin, first, outsider, 10, 15),
		// second: 3 draws = 3 points, +0
		result(bracket.RoundRobin, second, outsider, 10, 10),
		result(bracket.RoundRobin, second, outsider, 11, 11),
		result(bracket.RoundRobin, second, outsider, 12, 12),
	}

	ranked, err := RankTeams([]bracket.Team{teams[1], teams[0]}, matches)
	require.NoError(t, err)
	assert.Equal(t, first, ranked[0].ID)
	assert.Equal(t, second, ranked[1].ID)
}

func TestRankTeamsStable(t *testing.T) {
	teams := makeTeams(bracket.LabelA, 4)

	// Nobody has played: all level, input order wins
	ranked, err := RankTeams(teams, nil)
	require.NoError(t, err)
	for i := range teams {
		assert.Equal(t, teams[i].ID, ranked[i].ID)
		assert.Equal(t, i+1, *ranked[i].Rank)
	}

	// Two identical records in the middle of the list
	matches := []bracket.Match{
		result(bracket.RoundRobin, teams[3].ID, teams[0].ID, 15, 5),
		result(bracket.RoundRobin, teams[2].ID, teams[1].ID, 15, 5),
	}
	ranked, err = RankTeams(teams, matches)
	require.NoError(t, err)
	assert.Equal(t, teams[2].ID, ranked[0].ID)
	assert.Equal(t, teams[3].ID, ranked[1].ID)
	assert.Equal(t, teams[0].ID, ranked[2].ID)
	assert.Equal(t, teams[1].ID, ranked[3].ID)
}

func TestRankTeamsIdempotent(t *testing.T) {
	teams := makeTeams(bracket.LabelB, 5)
	matches, err := newTestScheduler().GenerateRoundRobin(teams, bracket.LabelB, testStart, "Pitch")
	require.NoError(t, err)

	for i := range matches {
		matches[i].Status = bracket.MatchCompleted
		matches[i].ScoreA = ptr(7 + i%4)
		matches[i].ScoreB = ptr(9 - i%3)
	}

	first, err := RankTeams(teams, matches)
	require.NoError(t, err)
	second, err := RankTeams(first, matches)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankTeamsIgnoresUnfinishedMatches(t *testing.T) {
	teams := makeTeams(bracket.LabelA, 3)

	inProgress := result(bracket.RoundRobin, teams[2].ID, teams[0].ID, 8, 3)
	inProgress.Status = bracket.MatchInProgress
	scheduled := bracket.Match{
		ID:      uuid.New(),
		TeamAID: &teams[2].ID,
		TeamBID: &teams[1].ID,
		Status:  bracket.MatchScheduled,
		Round:   bracket.RoundRobin,
		Bracket: bracket.LabelA,
	}
	bye := bracket.Match{
		ID:      uuid.New(),
		TeamAID: &teams[2].ID,
		ScoreA:  ptr(15),
		ScoreB:  ptr(0),
		Status:  bracket.MatchCompleted,
		Round:   bracket.QuarterFinals,
		Bracket: bracket.LabelA,
	}
	played := result(bracket.RoundRobin, teams[1].ID, teams[0].ID, 15, 14)

	standings, err := Standings(teams, []bracket.Match{inProgress, scheduled, bye, played})
	require.NoError(t, err)

	assert.Equal(t, teams[1].ID, standings[0].Team.ID)
	assert.Equal(t, 3, standings[0].Points)
	assert.Equal(t, 1, standings[0].Played)

	// Team without a result sorts after the winner, ahead of the loser on differential
	assert.Equal(t, teams[2].ID, standings[1].Team.ID)
	assert.Equal(t, 0, standings[1].Played)
	assert.Equal(t, teams[0].ID, standings[2].Team.ID)
	assert.Equal(t, -1, standings[2].PointDifferential)
	assert.Equal(t, 1, standings[2].Losses)
}

func TestStandingsDraw(t *testing.T) {
	teams := makeTeams(bracket.LabelA, 2)

	standings, err := Standings(teams, []bracket.Match{
		result(bracket.RoundRobin, teams[0].ID, teams[1].ID, 12, 12),
	})
	require.NoError(t, err)

	for _, s := range standings {
		assert.Equal(t, 1, s.Points)
		assert.Equal(t, 1, s.Draws)
		assert.Equal(t, 0, s.PointDifferential)
		assert.Equal(t, 12, s.PointsFor)
		assert.Equal(t, 12, s.PointsAgainst)
	}
}

func TestRankTeamsMalformedMatch(t *testing.T) {
	teams := makeTeams(bracket.LabelA, 2)

	halfScored := result(bracket.RoundRobin, teams[0].ID, teams[1].ID, 15, 3)
	halfScored.ScoreB = nil
	_, err := RankTeams(teams, []bracket.Match{halfScored})
	assert.ErrorIs(t, err, ErrMalformedRecord)

	completedWithoutScore := result(bracket.RoundRobin, teams[0].ID, teams[1].ID, 15, 3)
	completedWithoutScore.ScoreA, completedWithoutScore.ScoreB = nil, nil
	_, err = RankTeams(teams, []bracket.Match{completedWithoutScore})
	assert.ErrorIs(t, err, ErrMalformedRecord)

	selfMatch := result(bracket.RoundRobin, teams[0].ID, teams[0].ID, 15, 3)
	_, err = RankTeams(teams, []bracket.Match{selfMatch})
	assert.ErrorIs(t, err, ErrMalformedRecord)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "match", inputErr.Kind)
}
