/*
Package sqlite provides the SQLite-backed SessionStore.

PURPOSE:
  Durable session persistence for the daemon. Same append-only contract as
  the in-memory store: every save inserts a row, Load reads the newest one,
  nothing is ever updated or deleted.

WAL MODE:
  The database is opened with WAL so the HTTP layer's reads don't block the
  scheduler's saves. A single process owns the file; the RWMutex covers the
  rest.

SCHEMA:
  sessions(id, balance TEXT, pending_half_day, cursor, worked_surplus_ns,
           saved_at)

  balance is stored as its decimal string, not a float - round-tripping
  through REAL would invite drift in a legal entitlement figure.

USAGE:
  st, err := sqlite.New("./leave.db")
  defer st.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store"
)

// Store implements store.SessionStore on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.SessionStore = (*Store)(nil)

// New opens (creating if needed) the database at path and migrates the
// schema. Use ":memory:" for an ephemeral database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			balance           TEXT    NOT NULL,
			pending_half_day  INTEGER NOT NULL,
			cursor            TEXT    NOT NULL,
			worked_surplus_ns INTEGER NOT NULL,
			saved_at          TEXT    NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_saved_at ON sessions(saved_at);
	`)
	if err != nil {
		return fmt.Errorf("migrate sessions schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save appends a session row. Append-only; corrections are new saves.
func (s *Store) Save(ctx context.Context, sess store.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	savedAt := sess.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (balance, pending_half_day, cursor, worked_surplus_ns, saved_at)
		VALUES (?, ?, ?, ?, ?)`,
		sess.Balance.String(),
		boolToInt(sess.PendingHalfDay),
		sess.Cursor.String(),
		int64(sess.WorkedSurplus),
		savedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the latest session, if any.
func (s *Store) Load(ctx context.Context) (store.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT balance, pending_half_day, cursor, worked_surplus_ns, saved_at
		FROM sessions ORDER BY id DESC LIMIT 1`)

	sess, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return store.Session{}, false, nil
	}
	if err != nil {
		return store.Session{}, false, fmt.Errorf("load session: %w", err)
	}
	return sess, true, nil
}

// History returns all sessions, oldest first.
func (s *Store) History(ctx context.Context) ([]store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT balance, pending_half_day, cursor, worked_surplus_ns, saved_at
		FROM sessions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("load session history: %w", err)
	}
	defer rows.Close()

	var sessions []store.Session
	for rows.Next() {
		sess, err := scanSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func scanSession(scan func(...any) error) (store.Session, error) {
	var (
		balanceStr string
		pending    int
		cursorStr  string
		surplusNs  int64
		savedAtStr string
	)
	if err := scan(&balanceStr, &pending, &cursorStr, &surplusNs, &savedAtStr); err != nil {
		return store.Session{}, err
	}

	bal, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return store.Session{}, fmt.Errorf("bad stored balance %q: %w", balanceStr, err)
	}
	cursor, err := calendar.ParseDate(cursorStr)
	if err != nil {
		return store.Session{}, fmt.Errorf("bad stored cursor %q: %w", cursorStr, err)
	}
	savedAt, err := time.Parse(time.RFC3339Nano, savedAtStr)
	if err != nil {
		return store.Session{}, fmt.Errorf("bad stored timestamp %q: %w", savedAtStr, err)
	}

	f, _ := bal.Float64()
	return store.Session{
		Balance:        leave.DaysOf(f),
		PendingHalfDay: pending != 0,
		Cursor:         cursor,
		WorkedSurplus:  time.Duration(surplusNs),
		SavedAt:        savedAt,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
