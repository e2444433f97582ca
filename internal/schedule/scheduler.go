// Package schedule builds the match schedule of a tournament: round robin pools,
// crossover pairings, elimination brackets, pool rankings and round advancement.
//
// Everything here is a pure function of its inputs. Generated matches are never
// persisted by this package, callers stamp the tournament ID and store them.
package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Up to this many draws from the ID source are tried before giving up on a fresh ID
const maxIDAttempts = 16

// Scheduler generates matches. It keeps no state between calls besides its ID source and clock.
type Scheduler struct {
	newID func() uuid.UUID
	now   func() time.Time
}

// Option configures a Scheduler built by New
type Option func(*Scheduler)

// WithIDSource replaces uuid.New as the source of match IDs
func WithIDSource(fn func() uuid.UUID) Option {
	return func(s *Scheduler) {
		s.newID = fn
	}
}

// WithClock replaces time.Now, used when a zero start time is given
func WithClock(fn func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = fn
	}
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		newID: uuid.New,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) startOrNow(start time.Time) time.Time {
	if start.IsZero() {
		return s.now()
	}
	return start
}

// idPool hands out IDs that are not already taken by existing or freshly generated matches
type idPool struct {
	newID func() uuid.UUID
	taken map[uuid.UUID]struct{}
}

func (s *Scheduler) ids(existing []uuid.UUID) *idPool {
	taken := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}
	return &idPool{newID: s.newID, taken: taken}
}

func (p *idPool) next() (uuid.UUID, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := p.newID()
		if id == uuid.Nil {
			continue
		}
		if _, ok := p.taken[id]; ok {
			continue
		}
		p.taken[id] = struct{}{}
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("failed to generate a unique match id after %d attempts", maxIDAttempts)
}

func slotTime(start time.Time, slot int) time.Time {
	return start.Add(time.Duration(slot) * time.Hour)
}

func pitchLabel(prefix string, index int) string {
	return fmt.Sprintf("%s %d", prefix, index+1)
}
