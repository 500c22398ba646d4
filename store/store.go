/*
Package store persists session state between runs.

PURPOSE:
  The engine is pure; what survives a run is the caller's business. A
  Session carries exactly the fields the next run needs to resume from:
  the entitlement balance, the half-day carry, the cursor date and the
  worked-time surplus.

APPEND-ONLY:
  Sessions are never updated in place. Every save appends a new row;
  loading returns the latest. The history doubles as an audit trail of how
  the balance evolved, and a bad save is corrected by saving again.

IMPLEMENTATIONS:
  - Memory (this file): for tests and one-shot runs
  - store/sqlite:       durable, for the daemon
*/
package store

import (
	"context"
	"sync"
	"time"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the state recovered at the start of a run.
type Session struct {
	Balance        leave.Days
	PendingHalfDay bool

	// Cursor is the last day covered by the previous run; its year seeds
	// the engine's reference year on resume.
	Cursor calendar.Date

	WorkedSurplus time.Duration
	SavedAt       time.Time
}

// SessionStore saves and restores sessions.
type SessionStore interface {
	// Save appends a new session row.
	Save(ctx context.Context, s Session) error

	// Load returns the most recently saved session. ok is false when
	// nothing has been saved yet.
	Load(ctx context.Context) (s Session, ok bool, err error)

	// History returns all saved sessions, oldest first.
	History(ctx context.Context) ([]Session, error)
}

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	sessions []Session
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *Memory) Load(_ context.Context) (Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.sessions) == 0 {
		return Session{}, false, nil
	}
	return m.sessions[len(m.sessions)-1], true, nil
}

func (m *Memory) History(_ context.Context) ([]Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Session, len(m.sessions))
	copy(out, m.sessions)
	return out, nil
}
