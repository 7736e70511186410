package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	_ "modernc.org/sqlite"

	"pomodoro/internal/core/timekeeper"
)

const (
	keyPhase     = "phase"
	keyRemaining = "remaining_seconds"
	keyCycles    = "completed_focus_cycles"
)

// SQLiteStore keeps the timer state as key/value rows in SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens the database at dbPath and creates the schema.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS timer_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// Load reads the saved state. Missing or unparseable rows report timekeeper.ErrNoRecord.
func (s *SQLiteStore) Load() (timekeeper.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM timer_state")
	if err != nil {
		return timekeeper.Record{}, fmt.Errorf("query timer state: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, 3)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return timekeeper.Record{}, fmt.Errorf("scan timer state: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return timekeeper.Record{}, fmt.Errorf("iterate timer state: %w", err)
	}
	if len(values) == 0 {
		return timekeeper.Record{}, timekeeper.ErrNoRecord
	}

	phase, ok := values[keyPhase]
	if !ok {
		return timekeeper.Record{}, fmt.Errorf("%w: missing %s", timekeeper.ErrNoRecord, keyPhase)
	}
	remaining, err := parseIntValue(values, keyRemaining)
	if err != nil {
		return timekeeper.Record{}, err
	}
	cycles, err := parseIntValue(values, keyCycles)
	if err != nil {
		return timekeeper.Record{}, err
	}

	return timekeeper.Record{
		Phase:                timekeeper.Phase(phase),
		RemainingSeconds:     remaining,
		CompletedFocusCycles: cycles,
	}, nil
}

// Save writes all three fields in one transaction.
func (s *SQLiteStore) Save(record timekeeper.Record) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	values := [][2]string{
		{keyPhase, string(record.Phase)},
		{keyRemaining, strconv.Itoa(record.RemainingSeconds)},
		{keyCycles, strconv.Itoa(record.CompletedFocusCycles)},
	}
	for _, kv := range values {
		if _, err = tx.Exec(
			"INSERT INTO timer_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			kv[0], kv[1],
		); err != nil {
			return fmt.Errorf("upsert %s: %w", kv[0], err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit timer state: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func parseIntValue(values map[string]string, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", timekeeper.ErrNoRecord, key)
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", timekeeper.ErrNoRecord, key, err)
	}
	return parsed, nil
}
