package service

import (
	"sort"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/google/uuid"
)

// BoardData is the schedule grouped the way the score board shows it: round, then bracket
type BoardData struct {
	Rounds    map[bracket.Round]map[bracket.Label][]bracket.Match `json:"rounds"`
	RoundList []bracket.Round                                    `json:"round_list"`
	TeamMap   map[uuid.UUID]bracket.Team                         `json:"team_map"`
}

func PrepareBoardData(teams []bracket.Team, matches []bracket.Match) BoardData {
	teamMap := make(map[uuid.UUID]bracket.Team)
	for _, t := range teams {
		teamMap[t.ID] = t
	}

	rounds := make(map[bracket.Round]map[bracket.Label][]bracket.Match)
	var roundList []bracket.Round

	for _, m := range matches {
		if _, exists := rounds[m.Round]; !exists {
			rounds[m.Round] = make(map[bracket.Label][]bracket.Match)
			roundList = append(roundList, m.Round)
		}
		rounds[m.Round][m.Bracket] = append(rounds[m.Round][m.Bracket], m)
	}

	sort.Slice(roundList, func(i, j int) bool {
		return roundList[i].Order() < roundList[j].Order()
	})

	for _, brackets := range rounds {
		for _, list := range brackets {
			sortMatches(list)
		}
	}

	return BoardData{
		Rounds:    rounds,
		RoundList: roundList,
		TeamMap:   teamMap,
	}
}

func sortMatches(matches []bracket.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].StartTime.Equal(matches[j].StartTime) {
			return matches[i].StartTime.Before(matches[j].StartTime)
		}
		return matches[i].Pitch < matches[j].Pitch
	})
}
