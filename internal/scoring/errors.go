// Package scoring computes ATS compatibility scores for resumes, using
// either a free local heuristic engine or a detailed AI-backed engine.
package scoring

import (
	"fmt"

	"github.com/resumeforge/resume-maker/internal/types"
)

// ErrNotReady indicates scoring was requested before the resume was parsed.
type ErrNotReady struct {
	Status types.Status
}

func (e *ErrNotReady) Error() string {
	return fmt.Sprintf("resume is not ready for scoring (status %s)", e.Status)
}

// ErrEmptyResume indicates there is no content to score at all.
type ErrEmptyResume struct{}

func (e *ErrEmptyResume) Error() string {
	return "resume has no content to score"
}

// EngineError represents a failure inside a scoring engine.
type EngineError struct {
	Engine  string
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s engine: %s: %v", e.Engine, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s engine: %s", e.Engine, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}
