package bracket

import (
	"time"

	"github.com/google/uuid"
)

// Marshall is a volunteer who supervises a match and reports its score
type Marshall struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
