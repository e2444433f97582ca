package bracket

type Round string

const (
	RoundRobin    Round = "Round Robin"
	Crossover     Round = "Crossover"
	QuarterFinals Round = "Quarter-Finals"
	SemiFinals    Round = "Semi-Finals"
	Finals        Round = "Finals"
)

// Rounds in the order they are played
var Rounds = []Round{RoundRobin, Crossover, QuarterFinals, SemiFinals, Finals}

// Order returns the 1-based position of the round, or 0 for an unknown round
func (r Round) Order() int {
	for i, round := range Rounds {
		if round == r {
			return i + 1
		}
	}
	return 0
}

func (r Round) Valid() bool {
	return r.Order() > 0
}

// Next returns the round that follows r. Finals and unknown rounds have none.
func (r Round) Next() (Round, bool) {
	order := r.Order()
	if order == 0 || order >= len(Rounds) {
		return "", false
	}
	return Rounds[order], true
}

// MatchCount is the fixed number of matches of an elimination round
func (r Round) MatchCount() int {
	switch r {
	case QuarterFinals:
		return 4
	case SemiFinals:
		return 2
	case Finals:
		return 1
	}
	return 0
}
