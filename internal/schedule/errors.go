package schedule

import (
	"errors"
	"fmt"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/bracket"
	"github.com/google/uuid"
)

// ErrMalformedRecord marks input that breaks the data model. It is a programming
// error on the caller side, retrying with the same input will fail the same way.
var ErrMalformedRecord = errors.New("malformed record")

type InputError struct {
	Kind   string // "team" or "match"
	Index  int
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %d: %s", ErrMalformedRecord, e.Kind, e.Index, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func validateTeams(groups ...[]bracket.Team) error {
	seen := make(map[uuid.UUID]struct{})
	index := 0
	for _, teams := range groups {
		for i := range teams {
			if err := teams[i].Validate(); err != nil {
				return &InputError{Kind: "team", Index: index, Reason: err.Error()}
			}
			if _, ok := seen[teams[i].ID]; ok {
				return &InputError{Kind: "team", Index: index, Reason: "duplicate id " + teams[i].ID.String()}
			}
			seen[teams[i].ID] = struct{}{}
			index++
		}
	}
	return nil
}

func validateMatches(matches []bracket.Match) error {
	seen := make(map[uuid.UUID]struct{}, len(matches))
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			return &InputError{Kind: "match", Index: i, Reason: err.Error()}
		}
		if _, ok := seen[matches[i].ID]; ok {
			return &InputError{Kind: "match", Index: i, Reason: "duplicate id " + matches[i].ID.String()}
		}
		seen[matches[i].ID] = struct{}{}
	}
	return nil
}
