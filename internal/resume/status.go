// Package resume holds the in-memory resume model: normalization of
// partial data, ordered section mutations, and the status lifecycle.
package resume

import (
	"fmt"

	"github.com/resumeforge/resume-maker/internal/types"
)

// ErrInvalidTransition indicates a status change outside the lifecycle.
type ErrInvalidTransition struct {
	From types.Status
	To   types.Status
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// allowedTransitions encodes the forward-only lifecycle:
// UPLOADED -> PARSING -> {PARSED | ERROR} -> SCORING -> {SCORED | ERROR}.
// A SCORED resume may be re-scored, and PARSED/SCORED may be re-parsed.
var allowedTransitions = map[types.Status][]types.Status{
	types.StatusUploaded: {types.StatusParsing, types.StatusError},
	types.StatusParsing:  {types.StatusParsed, types.StatusError},
	types.StatusParsed:   {types.StatusScoring, types.StatusParsing, types.StatusError},
	types.StatusScoring:  {types.StatusScored, types.StatusError},
	types.StatusScored:   {types.StatusScoring, types.StatusParsing, types.StatusError},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to types.Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates and applies a status change on the resume.
func Transition(res *types.Resume, to types.Status) error {
	if !CanTransition(res.Status, to) {
		return &ErrInvalidTransition{From: res.Status, To: to}
	}
	res.Status = to
	return nil
}
