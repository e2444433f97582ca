package bracket

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "Scheduled"
	MatchInProgress MatchStatus = "In Progress"
	MatchCompleted  MatchStatus = "Completed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchInProgress, MatchCompleted:
		return true
	}
	return false
}

// Label groups matches that are played in parallel, e.g. one per pool
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
)

func (l Label) Valid() bool {
	switch l {
	case LabelA, LabelB, LabelC:
		return true
	}
	return false
}

var ErrInvalidScore = errors.New("invalid score")

type Match struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournament_id"`

	TeamAID *uuid.UUID `db:"team_a_id" json:"team_a_id"`
	TeamBID *uuid.UUID `db:"team_b_id" json:"team_b_id"`

	ScoreA *int        `db:"score_a" json:"score_a"`
	ScoreB *int        `db:"score_b" json:"score_b"`
	Status MatchStatus `db:"status" json:"status"`

	Pitch     string    `db:"pitch" json:"pitch"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	Round     Round     `db:"round" json:"round"`
	Bracket   Label     `db:"bracket" json:"bracket"`

	MarshallID   *uuid.UUID `db:"marshall_id" json:"marshall_id,omitempty"`
	MarshallName *string    `db:"marshall_name" json:"marshall_name,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (m *Match) IsCompleted() bool {
	return m.Status == MatchCompleted
}

// HasResult reports whether the match counts towards standings
func (m *Match) HasResult() bool {
	return m.IsCompleted() && m.TeamAID != nil && m.TeamBID != nil && m.ScoreA != nil && m.ScoreB != nil
}

// Winner returns the team with the higher score. A drawn match goes to team A,
// and a match with a single team present goes to that team.
func (m *Match) Winner() *uuid.UUID {
	if !m.IsCompleted() {
		return nil
	}
	if m.TeamAID == nil {
		return m.TeamBID
	}
	if m.TeamBID == nil || m.ScoreA == nil || m.ScoreB == nil {
		return m.TeamAID
	}
	if *m.ScoreB > *m.ScoreA {
		return m.TeamBID
	}
	return m.TeamAID
}

// ValidateScore checks a score update against the match invariants
func ValidateScore(scoreA, scoreB *int, status MatchStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidScore, status)
	}
	if (scoreA == nil) != (scoreB == nil) {
		return fmt.Errorf("%w: both scores must be set or both empty", ErrInvalidScore)
	}
	if scoreA != nil && (*scoreA < 0 || *scoreB < 0) {
		return fmt.Errorf("%w: scores cannot be negative", ErrInvalidScore)
	}
	if status == MatchCompleted && scoreA == nil {
		return fmt.Errorf("%w: a completed match needs both scores", ErrInvalidScore)
	}
	return nil
}

// Validate returns a description of the first broken invariant, or nil
func (m *Match) Validate() error {
	if m.ID == uuid.Nil {
		return errors.New("missing id")
	}
	if !m.Round.Valid() {
		return fmt.Errorf("unknown round %q", m.Round)
	}
	if !m.Bracket.Valid() {
		return fmt.Errorf("unknown bracket %q", m.Bracket)
	}
	if m.TeamAID != nil && m.TeamBID != nil && *m.TeamAID == *m.TeamBID {
		return errors.New("team plays against itself")
	}
	return ValidateScore(m.ScoreA, m.ScoreB, m.Status)
}
