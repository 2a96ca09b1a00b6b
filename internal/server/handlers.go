package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// envelope is the response body every endpoint returns. The HTTP status is
// always 200 for consistency; success or failure lives in the body.
type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	StartedAt string `json:"started_at,omitempty"`
	Error     string `json:"error,omitempty"`
}

// requireServiceAuth protects endpoints with a bearer token that must equal
// the service role key or the dedicated worker token. Comparison is constant
// time on both accepted values.
func (s *Server) requireServiceAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.ServiceRoleKey == "" && s.config.WorkerToken == "" {
			s.log.Warn("Refresh API accessed but no auth tokens configured")
			http.Error(w, "Service auth is not configured", http.StatusForbidden)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || !s.tokenMatches(token) {
			s.log.Warn("Rejected request with invalid bearer token", "remote_addr", r.RemoteAddr)
			http.Error(w, "Invalid bearer token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// tokenMatches compares against both accepted tokens in constant time.
func (s *Server) tokenMatches(token string) bool {
	matchesRole := s.config.ServiceRoleKey != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(s.config.ServiceRoleKey)) == 1
	matchesWorker := s.config.WorkerToken != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(s.config.WorkerToken)) == 1
	return matchesRole || matchesWorker
}

// handleRefreshContent validates auth, acknowledges the trigger, and runs the
// pipeline in a detached goroutine. Concurrent triggers are resolved by the
// pipeline's single-flight lock, not here.
func (s *Server) handleRefreshContent(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	startedAt := time.Now().UTC()

	go func() {
		// Detached from the request lifecycle on purpose: the caller's
		// context dies with the response.
		run := s.pipeline.Run(context.Background())
		if run.Skipped {
			s.log.Info("Triggered run was skipped", "trigger_request_id", requestID, "run_request_id", run.RequestID)
		}
	}()

	writeJSON(w, envelope{
		Success:   true,
		Message:   "Refresh started",
		RequestID: requestID,
		StartedAt: startedAt.Format(time.RFC3339),
	})
}

// handleCleanup removes expired cache entries on demand.
func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	removed, err := s.store.CleanupExpired()
	if err != nil {
		writeJSON(w, envelope{
			Success:   false,
			Message:   "Cleanup failed",
			RequestID: requestID,
			Error:     err.Error(),
		})
		return
	}

	writeJSON(w, envelope{
		Success:   true,
		Message:   fmt.Sprintf("Removed %d expired entries", removed),
		RequestID: requestID,
	})
}

// handleListRuns returns the most recent refresh runs.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.GetRecentRuns(20)
	if err != nil {
		writeJSON(w, envelope{
			Success:   false,
			Message:   "Failed to list runs",
			RequestID: uuid.NewString(),
			Error:     err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"runs":    runs,
	})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
