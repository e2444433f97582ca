package schedule

import (
	"slices"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/utils"
	"github.com/google/uuid"
)

const (
	winPoints  = 3
	drawPoints = 1
)

// Standing is a team's record over its completed matches
type Standing struct {
	Team              bracket.Team `json:"team"`
	Played            int          `json:"played"`
	Wins              int          `json:"wins"`
	Draws             int          `json:"draws"`
	Losses            int          `json:"losses"`
	PointsFor         int          `json:"points_for"`
	PointsAgainst     int          `json:"points_against"`
	PointDifferential int          `json:"point_differential"`
	Points            int          `json:"points"`
}

// Standings tallies completed matches for the given teams and orders them by
// points, then point differential, then wins. Teams level on all three keep their
// input order. Matches against teams outside the list are ignored.
func Standings(teams []bracket.Team, matches []bracket.Match) ([]Standing, error) {
	if err := validateTeams(teams); err != nil {
		return nil, err
	}
	if err := validateMatches(matches); err != nil {
		return nil, err
	}

	standings := make([]Standing, len(teams))
	index := make(map[uuid.UUID]*Standing, len(teams))
	for i := range teams {
		standings[i].Team = teams[i]
		index[teams[i].ID] = &standings[i]
	}

	for i := range matches {
		m := &matches[i]
		if !m.HasResult() {
			continue
		}
		scoreA, scoreB := utils.OrZero(m.ScoreA), utils.OrZero(m.ScoreB)
		if a := index[*m.TeamAID]; a != nil {
			a.record(scoreA, scoreB)
		}
		if b := index[*m.TeamBID]; b != nil {
			b.record(scoreB, scoreA)
		}
	}

	slices.SortStableFunc(standings, func(a, b Standing) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		if a.PointDifferential != b.PointDifferential {
			return b.PointDifferential - a.PointDifferential
		}
		return b.Wins - a.Wins
	})

	return standings, nil
}

func (s *Standing) record(scored, conceded int) {
	s.Played++
	s.PointsFor += scored
	s.PointsAgainst += conceded
	s.PointDifferential += scored - conceded

	switch {
	case scored > conceded:
		s.Wins++
		s.Points += winPoints
	case scored == conceded:
		s.Draws++
		s.Points += drawPoints
	default:
		s.Losses++
	}
}

// RankTeams returns copies of the teams in ranking order with Rank set, 1 being
// the best. The input slice is left untouched.
func RankTeams(teams []bracket.Team, matches []bracket.Match) ([]bracket.Team, error) {
	standings, err := Standings(teams, matches)
	if err != nil {
		return nil, err
	}

	ranked := make([]bracket.Team, len(standings))
	for i, s := range standings {
		rank := i + 1
		ranked[i] = s.Team
		ranked[i].Rank = &rank
	}
	return ranked, nil
}
