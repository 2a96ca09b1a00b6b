// Package locker provides the single-flight advisory lock guarding refresh
// runs. The lock is best-effort: when the lock primitive is unavailable it
// fails open, because its purpose is throughput collision avoidance, not
// correctness.
package locker

import (
	"sync"
	"time"

	"newsdesk/internal/logger"
)

// Lock is a best-effort mutual-exclusion flag.
type Lock interface {
	// TryAcquire returns true when the caller may proceed. Concurrent
	// callers are turned away, never queued.
	TryAcquire() bool
	// Release frees the lock. Safe to call when not held.
	Release()
}

// LockStore is the store surface the advisory lock needs.
type LockStore interface {
	TryAcquireLock(name, holder string, staleAfter time.Duration) (bool, error)
	ReleaseLock(name, holder string) error
}

// Advisory is a Lock backed by the store's advisory_locks table.
type Advisory struct {
	store      LockStore
	name       string
	holder     string
	staleAfter time.Duration
}

// NewAdvisory creates an advisory lock with the given name and holder id.
func NewAdvisory(store LockStore, name, holder string) *Advisory {
	return &Advisory{
		store:      store,
		name:       name,
		holder:     holder,
		staleAfter: 15 * time.Minute,
	}
}

// TryAcquire attempts the lock. A store error fails open: the run proceeds
// and the error is only logged.
func (a *Advisory) TryAcquire() bool {
	acquired, err := a.store.TryAcquireLock(a.name, a.holder, a.staleAfter)
	if err != nil {
		logger.Warn("Advisory lock unavailable, proceeding without it", "lock", a.name, "error", err.Error())
		return true
	}
	return acquired
}

// Release frees the lock; a failure is logged, never propagated.
func (a *Advisory) Release() {
	if err := a.store.ReleaseLock(a.name, a.holder); err != nil {
		logger.Warn("Failed to release advisory lock", "lock", a.name, "error", err.Error())
	}
}

// Memory is an in-process Lock used by tests and the one-shot CLI path.
type Memory struct {
	mu   sync.Mutex
	held bool
}

// NewMemory creates an in-process lock.
func NewMemory() *Memory {
	return &Memory{}
}

// TryAcquire takes the lock if free.
func (m *Memory) TryAcquire() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held {
		return false
	}
	m.held = true
	return true
}

// Release frees the lock.
func (m *Memory) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = false
}
