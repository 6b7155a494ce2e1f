package server

import (
	"log"
	"net/http"
)

// handleGetCredits returns the caller's AI-scoring credit balance.
func (s *Server) handleGetCredits(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	balance, err := s.db.GetCredits(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to fetch credits for %s: %v", userID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to fetch credits")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"balance": balance,
	})
}
