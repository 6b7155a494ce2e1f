package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/resumeforge/resume-maker/internal/db"
	"github.com/resumeforge/resume-maker/internal/export"
	"github.com/resumeforge/resume-maker/internal/ingest"
	"github.com/resumeforge/resume-maker/internal/render"
	"github.com/resumeforge/resume-maker/internal/resume"
	"github.com/resumeforge/resume-maker/internal/schemas"
	"github.com/resumeforge/resume-maker/internal/scoring"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNoScore indicates no score is available for a resume yet.
type ErrNoScore struct{}

func (e *ErrNoScore) Error() string {
	return "no score available; request scoring first"
}

// ErrNoFile indicates the resume has no stored original file.
type ErrNoFile struct{}

func (e *ErrNoFile) Error() string {
	return "resume has no stored original file"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var schemaErr *schemas.ValidationError
	var unknownTmpl *render.ErrUnknownTemplate
	var unsupported *ingest.ErrUnsupportedFileType
	var notFound *db.ErrResumeNotFound
	var noScore *ErrNoScore
	var noFile *ErrNoFile
	var notReady *scoring.ErrNotReady
	var badTransition *resume.ErrInvalidTransition
	var emptyResume *scoring.ErrEmptyResume
	var noCredits *db.ErrInsufficientCredits
	var engineFailure *scoring.EngineError
	var exportFailure *export.ExportError

	switch {
	case errors.As(err, &validation), errors.As(err, &schemaErr), errors.As(err, &unknownTmpl):
		return http.StatusBadRequest
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &notFound), errors.As(err, &noScore), errors.As(err, &noFile):
		return http.StatusNotFound
	case errors.As(err, &notReady), errors.As(err, &badTransition):
		return http.StatusConflict
	case errors.As(err, &emptyResume):
		return http.StatusUnprocessableEntity
	case errors.As(err, &noCredits):
		return http.StatusPaymentRequired
	case errors.As(err, &engineFailure):
		return http.StatusBadGateway
	case errors.As(err, &exportFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
