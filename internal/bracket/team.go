package bracket

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Team struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournament_id"`
	Name         string    `db:"name" json:"name"`
	Pool         Label     `db:"pool" json:"pool"`

	// Assigned by ranking, 1 is the best team
	Rank *int `db:"pool_rank" json:"rank,omitempty"`
}

func (t *Team) Validate() error {
	if t.ID == uuid.Nil {
		return errors.New("missing id")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("missing name")
	}
	if !t.Pool.Valid() {
		return fmt.Errorf("unknown pool %q", t.Pool)
	}
	return nil
}

// TeamsByPool splits teams by pool label keeping their relative order
func TeamsByPool(teams []Team) map[Label][]Team {
	pools := make(map[Label][]Team)
	for _, t := range teams {
		pools[t.Pool] = append(pools[t.Pool], t)
	}
	return pools
}
