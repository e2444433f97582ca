package service

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrRoundNotComplete     = errors.New("current round is not complete")
	ErrRoundAlreadyAdvanced = errors.New("next round has already been scheduled")
	ErrRoundLocked          = errors.New("match belongs to a round that has already been advanced")
	ErrTournamentCompleted  = errors.New("tournament is already completed")
	ErrNothingToSchedule    = errors.New("no matches could be scheduled for the next round")
)
