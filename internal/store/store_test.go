package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"newsdesk/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestCacheContentUpsert(t *testing.T) {
	st := newTestStore(t)

	if err := st.CacheContent("news", "newsapi", `{"v":1}`, 1); err != nil {
		t.Fatalf("CacheContent: %v", err)
	}
	if err := st.CacheContent("news", "newsapi", `{"v":2}`, 1); err != nil {
		t.Fatalf("CacheContent overwrite: %v", err)
	}

	entry, err := st.GetEntry("news", "newsapi")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry == nil {
		t.Fatal("GetEntry returned nil for cached key")
	}
	// The second write wins; there is exactly one row for the key.
	if entry.Data != `{"v":2}` {
		t.Errorf("Data = %q, want latest write", entry.Data)
	}

	stats, err := st.GetCacheStats()
	if err != nil {
		t.Fatalf("GetCacheStats: %v", err)
	}
	if stats.EntriesByType["news"] != 1 {
		t.Errorf("news entries = %d, want 1", stats.EntriesByType["news"])
	}
}

func TestGetEntryMissAndExpiry(t *testing.T) {
	st := newTestStore(t)

	entry, err := st.GetEntry("news", "nope")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry != nil {
		t.Error("miss should return nil entry, nil error")
	}

	// Negative TTL creates an already-expired row.
	if err := st.CacheContent("news", "stale", "{}", -1); err != nil {
		t.Fatalf("CacheContent: %v", err)
	}
	entry, err = st.GetEntry("news", "stale")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry != nil {
		t.Error("expired entry should read as a miss")
	}
}

func TestGetFreshContentExcludesExpired(t *testing.T) {
	st := newTestStore(t)

	if err := st.CacheContent("news", "fresh", `{"a":1}`, 1); err != nil {
		t.Fatal(err)
	}
	if err := st.CacheContent("news", "stale", `{"b":2}`, -1); err != nil {
		t.Fatal(err)
	}
	if err := st.CacheContent("sports", "scores", `{"c":3}`, 1); err != nil {
		t.Fatal(err)
	}

	fresh, err := st.GetFreshContent([]string{"news", "sports"})
	if err != nil {
		t.Fatalf("GetFreshContent: %v", err)
	}
	if len(fresh["news"]) != 1 || fresh["news"][0].Source != "fresh" {
		t.Errorf("news = %+v, want only the fresh entry", fresh["news"])
	}
	if len(fresh["sports"]) != 1 {
		t.Errorf("sports = %+v, want one entry", fresh["sports"])
	}
}

func TestCleanupExpired(t *testing.T) {
	st := newTestStore(t)

	if err := st.CacheContent("news", "keep", "{}", 1); err != nil {
		t.Fatal(err)
	}
	if err := st.CacheContent("news", "drop1", "{}", -1); err != nil {
		t.Fatal(err)
	}
	if err := st.CacheContent("news", "drop2", "{}", -2); err != nil {
		t.Fatal(err)
	}

	removed, err := st.CleanupExpired()
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	if entry, _ := st.GetEntry("news", "keep"); entry == nil {
		t.Error("unexpired entry was removed")
	}
}

func TestLogRunRoundtrip(t *testing.T) {
	st := newTestStore(t)

	run := core.RefreshRun{
		RequestID:  "run-1",
		StartedAt:  time.Now().UTC().Add(-time.Minute),
		FinishedAt: time.Now().UTC(),
		Successful: 2,
		Failed:     1,
		Sources: []core.SourceResult{
			{Source: "newsapi", Success: true, Candidates: 12, DurationMs: 340},
			{Source: "gnews", Success: false, Error: "status 500"},
		},
		MissingEnvs: []string{"thenewsapi"},
	}
	if err := st.LogRun(run); err != nil {
		t.Fatalf("LogRun: %v", err)
	}

	runs, err := st.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("GetRecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}

	got := runs[0]
	if got.RequestID != "run-1" || got.Successful != 2 || got.Failed != 1 {
		t.Errorf("run = %+v", got)
	}
	if diff := cmp.Diff(run.Sources, got.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(run.MissingEnvs, got.MissingEnvs); diff != "" {
		t.Errorf("MissingEnvs mismatch (-want +got):\n%s", diff)
	}
}

func TestGetRecentRunsOrderAndLimit(t *testing.T) {
	st := newTestStore(t)

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		run := core.RefreshRun{
			RequestID: string(rune('a' + i)),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.LogRun(run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := st.GetRecentRuns(2)
	if err != nil {
		t.Fatalf("GetRecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].RequestID != "c" || runs[1].RequestID != "b" {
		t.Errorf("order = [%s %s], want newest first", runs[0].RequestID, runs[1].RequestID)
	}
}

func TestTryAcquireLock(t *testing.T) {
	st := newTestStore(t)

	ok, err := st.TryAcquireLock("refresh", "holder-1", 15*time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire = (%v, %v), want (true, nil)", ok, err)
	}

	// A second holder is refused while the lock is held.
	ok, err = st.TryAcquireLock("refresh", "holder-2", 15*time.Minute)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok {
		t.Error("second acquire succeeded while lock held")
	}

	// Releasing with the wrong holder is a no-op.
	if err := st.ReleaseLock("refresh", "holder-2"); err != nil {
		t.Fatalf("ReleaseLock wrong holder: %v", err)
	}
	if ok, _ := st.TryAcquireLock("refresh", "holder-2", 15*time.Minute); ok {
		t.Error("lock acquired after wrong-holder release")
	}

	if err := st.ReleaseLock("refresh", "holder-1"); err != nil {
		t.Fatalf("ReleaseLock: %v", err)
	}
	if ok, _ := st.TryAcquireLock("refresh", "holder-2", 15*time.Minute); !ok {
		t.Error("lock not acquirable after release")
	}
}

func TestTryAcquireLockStealsStale(t *testing.T) {
	st := newTestStore(t)

	if ok, err := st.TryAcquireLock("refresh", "crashed", time.Minute); err != nil || !ok {
		t.Fatalf("seed acquire = (%v, %v)", ok, err)
	}

	// Backdate the lock past the stale threshold.
	_, err := st.db.Exec(`UPDATE advisory_locks SET acquired_at = ? WHERE name = ?`,
		time.Now().UTC().Add(-2*time.Minute), "refresh")
	if err != nil {
		t.Fatalf("backdate: %v", err)
	}

	ok, err := st.TryAcquireLock("refresh", "fresh", time.Minute)
	if err != nil {
		t.Fatalf("steal acquire: %v", err)
	}
	if !ok {
		t.Error("stale lock was not stolen")
	}
}

func TestClearCache(t *testing.T) {
	st := newTestStore(t)

	if err := st.CacheContent("news", "x", "{}", 1); err != nil {
		t.Fatal(err)
	}
	if err := st.LogRun(core.RefreshRun{RequestID: "r", StartedAt: time.Now().UTC()}); err != nil {
		t.Fatal(err)
	}

	if err := st.ClearCache(); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}

	stats, err := st.GetCacheStats()
	if err != nil {
		t.Fatalf("GetCacheStats: %v", err)
	}
	if len(stats.EntriesByType) != 0 || stats.RunCount != 0 {
		t.Errorf("stats after clear = %+v", stats)
	}
}
