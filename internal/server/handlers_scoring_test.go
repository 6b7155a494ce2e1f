package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/resumeforge/resume-maker/internal/types"
)

// recordingEngine counts invocations so tests can assert that a rejected
// request never reaches an engine.
type recordingEngine struct {
	calls  int
	result *types.ScoreResult
	err    error
}

func (e *recordingEngine) Score(_ context.Context, _ *types.Resume, _ string) (*types.ScoreResult, error) {
	e.calls++
	return e.result, e.err
}

func scoreRequest(body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(http.MethodPost, "/resumes/id/score", nil)
	} else {
		r = httptest.NewRequest(http.MethodPost, "/resumes/id/score", strings.NewReader(body))
	}
	return r
}

func TestScoreResume_RejectsUnparsedResume(t *testing.T) {
	engine := &recordingEngine{}
	s := newTestServer()
	s.localEngine = engine

	for _, status := range []types.Status{
		types.StatusUploaded, types.StatusParsing, types.StatusScoring, types.StatusError,
	} {
		res := &types.Resume{ID: uuid.New(), UserID: uuid.New(), Status: status}
		rec := httptest.NewRecorder()

		s.scoreResume(rec, scoreRequest(""), res)

		assert.Equal(t, http.StatusConflict, rec.Code, "status %s", status)
		assert.Contains(t, rec.Body.String(), "not ready")
	}
	assert.Zero(t, engine.calls)
}

func TestScoreResume_RejectsUnknownEngine(t *testing.T) {
	engine := &recordingEngine{}
	s := newTestServer()
	s.localEngine = engine

	res := &types.Resume{ID: uuid.New(), UserID: uuid.New(), Status: types.StatusParsed}
	rec := httptest.NewRecorder()

	s.scoreResume(rec, scoreRequest(`{"engine":"premium"}`), res)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, engine.calls)
}

func TestScoreResume_AIUnconfigured(t *testing.T) {
	engine := &recordingEngine{}
	s := newTestServer()
	s.localEngine = engine

	res := &types.Resume{ID: uuid.New(), UserID: uuid.New(), Status: types.StatusParsed}
	rec := httptest.NewRecorder()

	s.scoreResume(rec, scoreRequest(`{"engine":"ai"}`), res)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")
	assert.Zero(t, engine.calls)
}

func TestScoreResume_MalformedBody(t *testing.T) {
	engine := &recordingEngine{}
	s := newTestServer()
	s.localEngine = engine

	res := &types.Resume{ID: uuid.New(), UserID: uuid.New(), Status: types.StatusParsed}
	rec := httptest.NewRecorder()

	s.scoreResume(rec, scoreRequest(`{"engine":`), res)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, engine.calls)
}
