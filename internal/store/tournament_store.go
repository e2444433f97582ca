package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/jmoiron/sqlx"
)

type TournamentStore struct {
	db *sqlx.DB
}

const (
	matchColumns = `id, tournament_id, team_a_id, team_b_id, score_a, score_b, status, pitch, start_time, round, bracket, marshall_id, marshall_name`

	createMatchesQuery = `INSERT INTO matches (` + matchColumns + `)
		VALUES (:id, :tournament_id, :team_a_id, :team_b_id, :score_a, :score_b, :status, :pitch, :start_time, :round, :bracket, :marshall_id, :marshall_name)`

	updateMatchQuery = `
		UPDATE matches SET
		score_a = :score_a,
		score_b = :score_b,
		status = :status,
		marshall_id = :marshall_id,
		marshall_name = :marshall_name
		WHERE id = :id
	`
	// Matches come back in schedule order, which is also the order winners advance in
	getMatchesQuery = "SELECT * FROM matches WHERE tournament_id = ? ORDER BY start_time ASC, pitch ASC, id ASC"
)

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *bracket.Tournament) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, status, current_round, pitch_prefix, start_time)
        VALUES (:id, :name, :status, :current_round, :pitch_prefix, :start_time)`, tournament)
	return err
}

func (s *TournamentStore) CreateTeams(ctx context.Context, tx *sqlx.Tx, teams []bracket.Team) error {
	if len(teams) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO teams (id, tournament_id, name, pool, pool_rank)
            VALUES (:id, :tournament_id, :name, :pool, :pool_rank)`, teams)
	return err
}

func (s *TournamentStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []bracket.Match) error {
	if len(matches) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, createMatchesQuery, matches)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id string) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, tx *sqlx.Tx, id string) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	err := tx.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentStore) GetTournaments(ctx context.Context) ([]bracket.Tournament, error) {
	var tournaments []bracket.Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments ORDER BY created_at DESC, name ASC")
	return tournaments, err
}

func (s *TournamentStore) UpdateTournamentProgressTx(ctx context.Context, tx *sqlx.Tx, id string, round bracket.Round, status bracket.TournamentStatus) error {
	res, err := tx.ExecContext(ctx, "UPDATE tournaments SET current_round = ?, status = ? WHERE id = ?", round, status, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, "tournament", id)
}

func (s *TournamentStore) GetTeams(ctx context.Context, tournamentID string) ([]bracket.Team, error) {
	var teams []bracket.Team
	err := s.db.SelectContext(ctx, &teams, "SELECT * FROM teams WHERE tournament_id = ? ORDER BY pool ASC, name ASC", tournamentID)
	return teams, err
}

func (s *TournamentStore) GetTeamsTx(ctx context.Context, tx *sqlx.Tx, tournamentID string) ([]bracket.Team, error) {
	var teams []bracket.Team
	err := tx.SelectContext(ctx, &teams, "SELECT * FROM teams WHERE tournament_id = ? ORDER BY pool ASC, name ASC", tournamentID)
	return teams, err
}

func (s *TournamentStore) GetTeam(ctx context.Context, id string) (*bracket.Team, error) {
	var team bracket.Team
	err := s.db.GetContext(ctx, &team, "SELECT * FROM teams WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TournamentStore) UpdateTeamRanksTx(ctx context.Context, tx *sqlx.Tx, teams []bracket.Team) error {
	for _, t := range teams {
		if _, err := tx.ExecContext(ctx, "UPDATE teams SET pool_rank = ? WHERE id = ?", t.Rank, t.ID); err != nil {
			return fmt.Errorf("failed to rank team %s: %w", t.ID, err)
		}
	}
	return nil
}

func (s *TournamentStore) GetMatches(ctx context.Context, tournamentID string) ([]bracket.Match, error) {
	var matches []bracket.Match
	err := s.db.SelectContext(ctx, &matches, getMatchesQuery, tournamentID)
	return matches, err
}

func (s *TournamentStore) GetMatchesTx(ctx context.Context, tx *sqlx.Tx, tournamentID string) ([]bracket.Match, error) {
	var matches []bracket.Match
	err := tx.SelectContext(ctx, &matches, getMatchesQuery, tournamentID)
	return matches, err
}

func (s *TournamentStore) GetMatch(ctx context.Context, id string) (*bracket.Match, error) {
	var match bracket.Match
	err := s.db.GetContext(ctx, &match, "SELECT * FROM matches WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *TournamentStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id string) (*bracket.Match, error) {
	var match bracket.Match
	err := tx.GetContext(ctx, &match, "SELECT * FROM matches WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *TournamentStore) UpdateMatch(ctx context.Context, tx *sqlx.Tx, match *bracket.Match) error {
	res, err := tx.NamedExecContext(ctx, updateMatchQuery, match)
	if err != nil {
		return err
	}
	return expectOneRow(res, "match", match.ID.String())
}
