package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/schedule"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/store"
	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

const maxNameLength = 50

type TournamentService struct {
	db        *sqlx.DB
	store     *store.TournamentStore
	scheduler *schedule.Scheduler
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, scheduler *schedule.Scheduler) *TournamentService {
	return &TournamentService{db: db, store: store, scheduler: scheduler}
}

type TeamInput struct {
	Name string        `json:"name"`
	Pool bracket.Label `json:"pool"`
}

type TournamentInput struct {
	Name        string      `json:"name"`
	StartTime   time.Time   `json:"start_time"`
	PitchPrefix string      `json:"pitch_prefix"`
	Teams       []TeamInput `json:"teams"`
}

type TournamentData struct {
	Tournament  *bracket.Tournament `json:"tournament"`
	Teams       []bracket.Team      `json:"teams"`
	Matches     []bracket.Match     `json:"matches"`
	Board       BoardData           `json:"board"`
	NextMatchID *uuid.UUID          `json:"next_match_id"`
}

type PoolStandings struct {
	Pool      bracket.Label       `json:"pool"`
	Standings []schedule.Standing `json:"standings"`
}

func (s *TournamentService) GetTournamentData(ctx context.Context, id string) (*TournamentData, error) {
	var (
		tournament *bracket.Tournament
		teams      []bracket.Team
		matches    []bracket.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournament, err = s.store.GetTournament(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.store.GetTeams(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.store.GetMatches(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &TournamentData{
		Tournament:  tournament,
		Teams:       teams,
		Matches:     matches,
		Board:       PrepareBoardData(teams, matches),
		NextMatchID: nextOpenMatch(matches),
	}, nil
}

func (s *TournamentService) GetTournaments(ctx context.Context) ([]bracket.Tournament, error) {
	return s.store.GetTournaments(ctx)
}

// GetStandings ranks every pool on the matches played so far
func (s *TournamentService) GetStandings(ctx context.Context, id string) ([]PoolStandings, error) {
	if _, err := s.store.GetTournament(ctx, id); err != nil {
		return nil, err
	}
	teams, err := s.store.GetTeams(ctx, id)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.GetMatches(ctx, id)
	if err != nil {
		return nil, err
	}

	pools := bracket.TeamsByPool(teams)
	var result []PoolStandings
	for _, label := range poolLabels {
		if len(pools[label]) == 0 {
			continue
		}
		standings, err := schedule.Standings(pools[label], matches)
		if err != nil {
			return nil, fmt.Errorf("failed to rank pool %s: %w", label, err)
		}
		result = append(result, PoolStandings{Pool: label, Standings: standings})
	}
	return result, nil
}

var poolLabels = []bracket.Label{bracket.LabelA, bracket.LabelB, bracket.LabelC}

func validateTournamentInput(input TournamentInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: tournament name is required", ErrInvalidInput)
	}
	if len(input.Name) > maxNameLength {
		return fmt.Errorf("%w: tournament name '%s' exceeds %d characters", ErrInvalidInput, input.Name, maxNameLength)
	}

	names := make(map[string]bool, len(input.Teams))
	for _, team := range input.Teams {
		name := strings.TrimSpace(team.Name)
		if name == "" {
			return fmt.Errorf("%w: team name is required", ErrInvalidInput)
		}
		if len(name) > maxNameLength {
			return fmt.Errorf("%w: team name '%s' exceeds %d characters", ErrInvalidInput, name, maxNameLength)
		}
		if !team.Pool.Valid() {
			return fmt.Errorf("%w: team '%s' has unknown pool %q", ErrInvalidInput, name, team.Pool)
		}
		if names[strings.ToLower(name)] {
			return fmt.Errorf("%w: team name '%s' is used twice", ErrInvalidInput, name)
		}
		names[strings.ToLower(name)] = true
	}
	return nil
}

// CreateTournament stores the tournament with its teams and the round robin of every pool
func (s *TournamentService) CreateTournament(ctx context.Context, input TournamentInput) (uuid.UUID, error) {
	if err := validateTournamentInput(input); err != nil {
		return uuid.Nil, err
	}

	startTime := input.StartTime
	if startTime.IsZero() {
		startTime = time.Now()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	tournamentID := uuid.New()
	tournament := bracket.Tournament{
		ID:           tournamentID,
		Name:         strings.TrimSpace(input.Name),
		Status:       bracket.TournamentStarted,
		CurrentRound: bracket.RoundRobin,
		PitchPrefix:  utils.OrDefault(input.PitchPrefix, "Pitch"),
		StartTime:    startTime.UTC(),
	}

	if err := s.store.CreateTournament(ctx, tx, &tournament); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	teams := make([]bracket.Team, 0, len(input.Teams))
	for _, team := range input.Teams {
		teams = append(teams, bracket.Team{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Name:         strings.TrimSpace(team.Name),
			Pool:         team.Pool,
		})
	}

	if err := s.store.CreateTeams(ctx, tx, teams); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create teams: %w", err)
	}

	// Pools play in parallel, each on its own set of pitches
	pools := bracket.TeamsByPool(teams)
	var matches []bracket.Match
	for _, label := range poolLabels {
		poolMatches, err := s.scheduler.GenerateRoundRobin(pools[label], label, tournament.StartTime,
			fmt.Sprintf("%s %s", tournament.PitchPrefix, label))
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to schedule pool %s: %w", label, err)
		}
		matches = append(matches, poolMatches...)
	}

	if err := s.store.CreateMatches(ctx, tx, stampMatches(tournamentID, matches)); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create matches: %w", err)
	}

	return tournamentID, tx.Commit()
}

// stampMatches attaches generated matches to the tournament they are stored under
func stampMatches(tournamentID uuid.UUID, matches []bracket.Match) []bracket.Match {
	for i := range matches {
		matches[i].TournamentID = tournamentID
		matches[i].StartTime = matches[i].StartTime.UTC()
	}
	return matches
}

func nextOpenMatch(matches []bracket.Match) *uuid.UUID {
	for _, m := range matches {
		if !m.IsCompleted() {
			id := m.ID
			return &id
		}
	}
	return nil
}
