package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/core"
	"newsdesk/internal/curator"
	"newsdesk/internal/enhance"
	"newsdesk/internal/locker"
	"newsdesk/internal/pipeline"
	"newsdesk/internal/store"
)

func newTestServer(t *testing.T, cfg config.Server) (*Server, *store.Store) {
	t.Helper()
	st, err := store.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	p := pipeline.New(st, nil, nil, enhance.New(enhance.Options{}), curator.New(nil),
		locker.NewMemory(), pipeline.DefaultOptions())
	return New(p, st, cfg), st
}

func do(s *Server, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthNoAuth(t *testing.T) {
	s, _ := newTestServer(t, config.Server{ServiceRoleKey: "role-key"})

	rec := do(s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	s, _ := newTestServer(t, config.Server{ServiceRoleKey: "role-key"})

	rec := do(s, http.MethodPost, "/refresh_content", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthRejectsWrongToken(t *testing.T) {
	s, _ := newTestServer(t, config.Server{ServiceRoleKey: "role-key"})

	rec := do(s, http.MethodPost, "/refresh_content", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthAcceptsEitherToken(t *testing.T) {
	s, _ := newTestServer(t, config.Server{ServiceRoleKey: "role-key", WorkerToken: "worker-token"})

	for _, token := range []string{"role-key", "worker-token"} {
		rec := do(s, http.MethodPost, "/cleanup", token)
		if rec.Code != http.StatusOK {
			t.Errorf("token %q: status = %d, want 200", token, rec.Code)
		}
	}
}

func TestAuthForbiddenWhenUnconfigured(t *testing.T) {
	s, _ := newTestServer(t, config.Server{})

	rec := do(s, http.MethodPost, "/refresh_content", "anything")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 when no tokens configured", rec.Code)
	}
}

func TestRefreshContentAcknowledgesImmediately(t *testing.T) {
	s, st := newTestServer(t, config.Server{ServiceRoleKey: "role-key"})

	rec := do(s, http.MethodPost, "/refresh_content", "role-key")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.RequestID == "" || body.StartedAt == "" {
		t.Errorf("envelope = %+v", body)
	}
	if body.Message != "Refresh started" {
		t.Errorf("Message = %q", body.Message)
	}

	// The detached run eventually writes its record.
	deadline := time.Now().Add(2 * time.Second)
	for {
		runs, err := st.GetRecentRuns(5)
		if err == nil && len(runs) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("detached run never logged")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCleanupEndpoint(t *testing.T) {
	s, st := newTestServer(t, config.Server{ServiceRoleKey: "role-key"})
	if err := st.CacheContent("news", "stale", "{}", -1); err != nil {
		t.Fatal(err)
	}

	rec := do(s, http.MethodPost, "/cleanup", "role-key")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message != "Removed 1 expired entries" {
		t.Errorf("envelope = %+v", body)
	}
}

func TestListRuns(t *testing.T) {
	s, st := newTestServer(t, config.Server{ServiceRoleKey: "role-key"})
	if err := st.LogRun(core.RefreshRun{RequestID: "r1", StartedAt: time.Now().UTC()}); err != nil {
		t.Fatal(err)
	}

	rec := do(s, http.MethodGet, "/runs", "role-key")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Success bool              `json:"success"`
		Runs    []core.RefreshRun `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || len(body.Runs) != 1 || body.Runs[0].RequestID != "r1" {
		t.Errorf("body = %+v", body)
	}
}

func TestParseDuration(t *testing.T) {
	if got := parseDuration("", 15*time.Second); got != 15*time.Second {
		t.Errorf("empty = %v", got)
	}
	if got := parseDuration("30s", 15*time.Second); got != 30*time.Second {
		t.Errorf("valid = %v", got)
	}
	if got := parseDuration("bogus", 15*time.Second); got != 15*time.Second {
		t.Errorf("invalid = %v", got)
	}
}
