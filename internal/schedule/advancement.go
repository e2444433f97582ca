package schedule

import (
	"time"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/google/uuid"
)

// CheckRoundComplete reports whether the round has at least one match and all of
// its matches are completed.
func CheckRoundComplete(round bracket.Round, matches []bracket.Match) bool {
	found := false
	for i := range matches {
		if matches[i].Round != round {
			continue
		}
		if !matches[i].IsCompleted() {
			return false
		}
		found = true
	}
	return found
}

// AdvanceRound generates the matches of the round following currentRound. Nothing
// is generated while currentRound is incomplete or when it has no successor.
//
// Crossover is seeded from pools A and B using the Rank already set on each team,
// callers rank the pools beforehand. Elimination rounds take the winners of
// currentRound in match order.
func (s *Scheduler) AdvanceRound(currentRound bracket.Round, matches []bracket.Match, teams []bracket.Team, startTime time.Time, pitchPrefix string) ([]bracket.Match, error) {
	if err := validateTeams(teams); err != nil {
		return nil, err
	}
	if err := validateMatches(matches); err != nil {
		return nil, err
	}

	if !CheckRoundComplete(currentRound, matches) {
		return []bracket.Match{}, nil
	}
	nextRound, ok := currentRound.Next()
	if !ok {
		return []bracket.Match{}, nil
	}

	existing := make([]uuid.UUID, len(matches))
	for i := range matches {
		existing[i] = matches[i].ID
	}

	if nextRound == bracket.Crossover {
		pools := bracket.TeamsByPool(teams)
		return s.generateCrossover(pools[bracket.LabelA], pools[bracket.LabelB], startTime, pitchPrefix, existing)
	}

	winners := roundWinners(currentRound, matches)
	if len(winners) == 0 {
		return []bracket.Match{}, nil
	}
	return s.generateElimination(winners, nextRound, startTime, pitchPrefix, existing)
}

func roundWinners(round bracket.Round, matches []bracket.Match) []uuid.UUID {
	var winners []uuid.UUID
	for i := range matches {
		if matches[i].Round != round {
			continue
		}
		if w := matches[i].Winner(); w != nil {
			winners = append(winners, *w)
		}
	}
	return winners
}
