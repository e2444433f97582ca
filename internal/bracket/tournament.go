package bracket

import (
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentDraft     TournamentStatus = "draft"
	TournamentStarted   TournamentStatus = "started"
	TournamentCompleted TournamentStatus = "completed"
)

type Tournament struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	Name         string           `db:"name" json:"name"`
	Status       TournamentStatus `db:"status" json:"status"`
	CurrentRound Round            `db:"current_round" json:"current_round"`
	PitchPrefix  string           `db:"pitch_prefix" json:"pitch_prefix"`
	StartTime    time.Time        `db:"start_time" json:"start_time"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}
