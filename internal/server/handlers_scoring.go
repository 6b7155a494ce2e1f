package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/resumeforge/resume-maker/internal/scoring"
	"github.com/resumeforge/resume-maker/internal/types"
)

// ScoreRequest is the body for POST /resumes/{id}/score. The local engine
// is free; the AI engine consumes one credit per request.
type ScoreRequest struct {
	Engine         string `json:"engine" validate:"omitempty,oneof=local ai"`
	JobDescription string `json:"job_description" validate:"omitempty,max=20000"`
}

// handleScoreResume runs an ATS evaluation of the resume and caches the
// result. Scoring is synchronous: the response carries the full result.
func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	res, err := s.ownedResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.scoreResume(w, r, res)
}

func (s *Server) scoreResume(w http.ResponseWriter, r *http.Request, res *types.Resume) {
	var req ScoreRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	if req.Engine == "" {
		req.Engine = "local"
	}
	if err := s.validate.Struct(&req); err != nil {
		s.handleError(w, &ErrValidation{Field: "engine", Message: err.Error()})
		return
	}

	if !res.Status.Scorable() {
		s.handleError(w, &scoring.ErrNotReady{Status: res.Status})
		return
	}

	engine, err := s.selectEngine(req.Engine)
	if err != nil {
		s.handleError(w, err)
		return
	}

	// The AI engine costs a credit, charged before the model call.
	if req.Engine == "ai" {
		if err := s.db.ConsumeCredit(r.Context(), res.UserID); err != nil {
			s.handleError(w, err)
			return
		}
	}

	prev := res.Status
	if err := s.db.UpdateStatus(r.Context(), res.ID, prev, types.StatusScoring); err != nil {
		// A concurrent mutation beat us to the row; hand the credit back.
		if req.Engine == "ai" {
			if refundErr := s.db.AddCredits(r.Context(), res.UserID, 1); refundErr != nil {
				log.Printf("Failed to refund credit for %s: %v", res.UserID, refundErr)
			}
		}
		s.handleError(w, err)
		return
	}

	result, err := engine.Score(r.Context(), res, req.JobDescription)
	if err != nil {
		if stErr := s.db.SetStatus(r.Context(), res.ID, types.StatusError); stErr != nil {
			log.Printf("Failed to mark resume %s ERROR: %v", res.ID, stErr)
		}
		s.handleError(w, err)
		return
	}

	if err := s.db.SetLatestScore(r.Context(), res.ID, result.TotalScore); err != nil {
		log.Printf("Failed to persist score for %s: %v", res.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to persist score")
		return
	}

	if s.cache != nil {
		if err := s.cache.Put(r.Context(), res.ID, result); err != nil {
			log.Printf("Failed to cache score for %s: %v", res.ID, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGetScore returns the cached score, falling back to the persisted
// headline number when the cache has expired.
func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	res, err := s.ownedResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if s.cache != nil {
		cached, err := s.cache.Get(r.Context(), res.ID)
		if err != nil {
			log.Printf("Score cache lookup failed for %s: %v", res.ID, err)
		} else if cached != nil {
			s.jsonResponse(w, http.StatusOK, cached)
			return
		}
	}

	if res.LatestScore == nil {
		s.handleError(w, &ErrNoScore{})
		return
	}

	// Only the headline number survives cache expiry.
	s.jsonResponse(w, http.StatusOK, &types.ScoreResult{
		TotalScore:    *res.LatestScore,
		Rating:        types.RatingForScore(*res.LatestScore),
		ScoringMethod: "stored",
	})
}

// scoreEngine is the common surface of the local and AI engines.
type scoreEngine interface {
	Score(ctx context.Context, res *types.Resume, jobDescription string) (*types.ScoreResult, error)
}

func (s *Server) selectEngine(name string) (scoreEngine, error) {
	if name == "ai" {
		if s.aiEngine == nil {
			return nil, &ErrValidation{Field: "engine", Message: "AI scoring is not configured"}
		}
		return s.aiEngine, nil
	}
	return s.localEngine, nil
}
