package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/schedule"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/store"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchService struct {
	db        *sqlx.DB
	store     *store.TournamentStore
	marshalls *store.MarshallStore
	scheduler *schedule.Scheduler
}

func NewMatchService(db *sqlx.DB, store *store.TournamentStore, marshalls *store.MarshallStore, scheduler *schedule.Scheduler) *MatchService {
	return &MatchService{db: db, store: store, marshalls: marshalls, scheduler: scheduler}
}

type MatchData struct {
	Match       *bracket.Match `json:"match"`
	TeamA       *bracket.Team  `json:"team_a"`
	TeamB       *bracket.Team  `json:"team_b"`
	NextMatchID *uuid.UUID     `json:"next_match_id"`
}

type ScoreInput struct {
	ScoreA *int                `json:"score_a"`
	ScoreB *int                `json:"score_b"`
	Status bracket.MatchStatus `json:"status"`
}

type AdvanceResult struct {
	Round   bracket.Round   `json:"round"`
	Matches []bracket.Match `json:"matches"`
	// Set once the final has been played
	Completed bool `json:"completed"`
}

func (s *MatchService) GetMatchViewData(ctx context.Context, matchIDStr string) (*MatchData, error) {
	match, err := s.store.GetMatch(ctx, matchIDStr)
	if err != nil {
		return nil, err
	}

	var teamA, teamB *bracket.Team
	if match.TeamAID != nil {
		t, err := s.store.GetTeam(ctx, match.TeamAID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to get team A: %w", err)
		}
		teamA = t
	}
	if match.TeamBID != nil {
		t, err := s.store.GetTeam(ctx, match.TeamBID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to get team B: %w", err)
		}
		teamB = t
	}

	matches, err := s.store.GetMatches(ctx, match.TournamentID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get next match: %w", err)
	}

	return &MatchData{
		Match:       match,
		TeamA:       teamA,
		TeamB:       teamB,
		NextMatchID: nextOpenMatch(matches),
	}, nil
}

// RecordScore updates the live score and status of a match
func (s *MatchService) RecordScore(ctx context.Context, matchID uuid.UUID, input ScoreInput) (*bracket.Match, error) {
	if err := bracket.ValidateScore(input.ScoreA, input.ScoreB, input.Status); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match.TeamAID == nil || match.TeamBID == nil {
		return nil, fmt.Errorf("%w: match %s has no opponent to score against", ErrInvalidInput, match.ID)
	}

	tournament, err := s.store.GetTournamentTx(ctx, tx, match.TournamentID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	// Results feeding a round that is already scheduled are frozen
	if tournament.CurrentRound.Order() > match.Round.Order() || tournament.Status == bracket.TournamentCompleted {
		return nil, ErrRoundLocked
	}

	match.ScoreA = input.ScoreA
	match.ScoreB = input.ScoreB
	match.Status = input.Status

	if err := s.store.UpdateMatch(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return match, tx.Commit()
}

// AssignMarshall puts a marshall in charge of a match, registering the name on first use
func (s *MatchService) AssignMarshall(ctx context.Context, matchID uuid.UUID, name string) (*bracket.Match, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: marshall name is required", ErrInvalidInput)
	}
	if len(name) > maxNameLength {
		return nil, fmt.Errorf("%w: marshall name '%s' exceeds %d characters", ErrInvalidInput, name, maxNameLength)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	marshall, err := s.marshalls.GetMarshallByNameTx(ctx, tx, name)
	if errors.Is(err, sql.ErrNoRows) {
		marshall = &bracket.Marshall{ID: uuid.New(), Name: name}
		err = s.marshalls.CreateMarshallTx(ctx, tx, marshall)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find or create marshall: %w", err)
	}

	match.MarshallID = &marshall.ID
	match.MarshallName = &marshall.Name

	if err := s.store.UpdateMatch(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return match, tx.Commit()
}

func (s *MatchService) GetMarshalls(ctx context.Context) ([]bracket.Marshall, error) {
	return s.marshalls.GetMarshalls(ctx)
}

// AdvanceRound schedules the round after the tournament's current one. Pools are
// ranked before the crossover so seeding uses the final round robin standings.
// A zero startTime schedules from now.
func (s *MatchService) AdvanceRound(ctx context.Context, tournamentID uuid.UUID, startTime time.Time) (*AdvanceResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id := tournamentID.String()
	tournament, err := s.store.GetTournamentTx(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament.Status == bracket.TournamentCompleted {
		return nil, ErrTournamentCompleted
	}

	teams, err := s.store.GetTeamsTx(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}
	matches, err := s.store.GetMatchesTx(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	current := tournament.CurrentRound
	if !schedule.CheckRoundComplete(current, matches) {
		return nil, ErrRoundNotComplete
	}

	next, ok := current.Next()
	if !ok {
		if err := s.store.UpdateTournamentProgressTx(ctx, tx, id, current, bracket.TournamentCompleted); err != nil {
			return nil, fmt.Errorf("failed to complete tournament: %w", err)
		}
		return &AdvanceResult{Round: current, Matches: []bracket.Match{}, Completed: true}, tx.Commit()
	}

	for _, m := range matches {
		if m.Round == next {
			return nil, ErrRoundAlreadyAdvanced
		}
	}

	if next == bracket.Crossover {
		teams, err = rankPools(teams, matches)
		if err != nil {
			return nil, err
		}
		if err := s.store.UpdateTeamRanksTx(ctx, tx, teams); err != nil {
			return nil, fmt.Errorf("failed to store pool ranks: %w", err)
		}
	}

	generated, err := s.scheduler.AdvanceRound(current, matches, teams, startTime, tournament.PitchPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule %s: %w", next, err)
	}
	if len(generated) == 0 {
		return nil, ErrNothingToSchedule
	}

	generated = settleOpenSlots(stampMatches(tournamentID, generated))
	if err := s.store.CreateMatches(ctx, tx, generated); err != nil {
		return nil, fmt.Errorf("failed to create matches: %w", err)
	}
	if err := s.store.UpdateTournamentProgressTx(ctx, tx, id, next, bracket.TournamentStarted); err != nil {
		return nil, fmt.Errorf("failed to update tournament round: %w", err)
	}

	return &AdvanceResult{Round: next, Matches: generated}, tx.Commit()
}

// settleOpenSlots completes matches missing a team on a 0-0 walkover. A lone team
// goes through, an empty pairing produces no winner.
func settleOpenSlots(matches []bracket.Match) []bracket.Match {
	for i := range matches {
		m := &matches[i]
		if m.TeamAID != nil && m.TeamBID != nil {
			continue
		}
		m.ScoreA = utils.Ptr(0)
		m.ScoreB = utils.Ptr(0)
		m.Status = bracket.MatchCompleted
	}
	return matches
}

func rankPools(teams []bracket.Team, matches []bracket.Match) ([]bracket.Team, error) {
	var ranked []bracket.Team
	pools := bracket.TeamsByPool(teams)
	for _, label := range poolLabels {
		if len(pools[label]) == 0 {
			continue
		}
		poolRanked, err := schedule.RankTeams(pools[label], matches)
		if err != nil {
			return nil, fmt.Errorf("failed to rank pool %s: %w", label, err)
		}
		ranked = append(ranked, poolRanked...)
	}
	return ranked, nil
}
