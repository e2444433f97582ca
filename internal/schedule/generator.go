package schedule

import (
	"slices"
	"time"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/google/uuid"
)

// Teams without a rank are seeded after every ranked team
const unrankedSeed = 999

// GenerateRoundRobin pairs every team of the pool with every other team once, using
// the circle method. With an odd number of teams a bye slot is added and the team
// drawn against it sits the round out.
//
// Each round takes n/2 consecutive one hour slots from startTime, match i of a round
// is played on pitch "{pitchPrefix} {i+1}".
func (s *Scheduler) GenerateRoundRobin(teams []bracket.Team, label bracket.Label, startTime time.Time, pitchPrefix string) ([]bracket.Match, error) {
	if err := validateTeams(teams); err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return []bracket.Match{}, nil
	}

	// nil is the bye
	slots := make([]*uuid.UUID, 0, len(teams)+1)
	for i := range teams {
		id := teams[i].ID
		slots = append(slots, &id)
	}
	if len(slots)%2 != 0 {
		slots = append(slots, nil)
	}

	n := len(slots)
	totalRounds := n - 1
	matchesPerRound := n / 2
	start := s.startOrNow(startTime)
	ids := s.ids(nil)

	matches := make([]bracket.Match, 0, len(teams)*(len(teams)-1)/2)
	for r := 0; r < totalRounds; r++ {
		for i := 0; i < matchesPerRound; i++ {
			home, away := slots[i], slots[n-1-i]
			if home == nil || away == nil {
				continue
			}

			id, err := ids.next()
			if err != nil {
				return nil, err
			}
			matches = append(matches, newMatch(id, home, away, bracket.RoundRobin, label,
				slotTime(start, r*matchesPerRound+i), pitchLabel(pitchPrefix, i)))
		}

		// First slot stays put, the last one moves to the front of the rest
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	return matches, nil
}

// GenerateCrossover seeds the two pools by rank and plays the i-th best team of
// pool A against the i-th worst team of pool B.
func (s *Scheduler) GenerateCrossover(poolA, poolB []bracket.Team, startTime time.Time, pitchPrefix string) ([]bracket.Match, error) {
	if err := validateTeams(poolA, poolB); err != nil {
		return nil, err
	}
	return s.generateCrossover(poolA, poolB, startTime, pitchPrefix, nil)
}

func (s *Scheduler) generateCrossover(poolA, poolB []bracket.Team, startTime time.Time, pitchPrefix string, existing []uuid.UUID) ([]bracket.Match, error) {
	seededA := seedByRank(poolA)
	seededB := seedByRank(poolB)
	count := min(len(seededA), len(seededB))
	start := s.startOrNow(startTime)
	ids := s.ids(existing)

	matches := make([]bracket.Match, 0, count)
	for i := 0; i < count; i++ {
		id, err := ids.next()
		if err != nil {
			return nil, err
		}
		teamA := seededA[i].ID
		teamB := seededB[len(seededB)-1-i].ID
		// Crossover is played as one merged bracket
		matches = append(matches, newMatch(id, &teamA, &teamB, bracket.Crossover, bracket.LabelA,
			slotTime(start, i), pitchLabel(pitchPrefix, i)))
	}

	return matches, nil
}

// GenerateElimination pairs teams positionally, teams[2i] against teams[2i+1]. The
// round fixes the number of matches, slots without a team are left empty. Rounds
// that are not elimination rounds produce no matches.
func (s *Scheduler) GenerateElimination(teams []bracket.Team, round bracket.Round, startTime time.Time, pitchPrefix string) ([]bracket.Match, error) {
	if err := validateTeams(teams); err != nil {
		return nil, err
	}

	teamIDs := make([]uuid.UUID, len(teams))
	for i := range teams {
		teamIDs[i] = teams[i].ID
	}
	return s.generateElimination(teamIDs, round, startTime, pitchPrefix, nil)
}

func (s *Scheduler) generateElimination(teamIDs []uuid.UUID, round bracket.Round, startTime time.Time, pitchPrefix string, existing []uuid.UUID) ([]bracket.Match, error) {
	count := round.MatchCount()
	start := s.startOrNow(startTime)
	ids := s.ids(existing)

	slot := func(i int) *uuid.UUID {
		if i >= len(teamIDs) {
			return nil
		}
		id := teamIDs[i]
		return &id
	}

	matches := make([]bracket.Match, 0, count)
	for i := 0; i < count; i++ {
		id, err := ids.next()
		if err != nil {
			return nil, err
		}
		matches = append(matches, newMatch(id, slot(2*i), slot(2*i+1), round, bracket.LabelA,
			slotTime(start, i), pitchLabel(pitchPrefix, i)))
	}

	return matches, nil
}

// newMatch copies the team IDs so no two matches share a pointer
func newMatch(id uuid.UUID, teamA, teamB *uuid.UUID, round bracket.Round, label bracket.Label, start time.Time, pitch string) bracket.Match {
	return bracket.Match{
		ID:        id,
		TeamAID:   cloneID(teamA),
		TeamBID:   cloneID(teamB),
		Status:    bracket.MatchScheduled,
		Pitch:     pitch,
		StartTime: start,
		Round:     round,
		Bracket:   label,
	}
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func seedByRank(teams []bracket.Team) []bracket.Team {
	seeded := slices.Clone(teams)
	slices.SortStableFunc(seeded, func(a, b bracket.Team) int {
		return seedOf(a) - seedOf(b)
	})
	return seeded
}

func seedOf(t bracket.Team) int {
	if t.Rank == nil {
		return unrankedSeed
	}
	return *t.Rank
}
