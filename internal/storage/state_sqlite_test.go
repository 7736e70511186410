package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

func newMemorySQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreEmptyReportsNoRecord(t *testing.T) {
	store := newMemorySQLite(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, timekeeper.ErrNoRecord)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newMemorySQLite(t)

	require.NoError(t, store.Save(timekeeper.Record{Phase: timekeeper.PhaseFocus, RemainingSeconds: 100, CompletedFocusCycles: 1}))
	record := timekeeper.Record{Phase: timekeeper.PhaseLongBreak, RemainingSeconds: 600, CompletedFocusCycles: 4}
	require.NoError(t, store.Save(record))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestSQLiteStoreMalformedRowsReportNoRecord(t *testing.T) {
	tests := []struct {
		name string
		rows map[string]string
	}{
		{name: "missing phase", rows: map[string]string{keyRemaining: "10", keyCycles: "0"}},
		{name: "missing remaining", rows: map[string]string{keyPhase: "focus", keyCycles: "0"}},
		{name: "non numeric cycles", rows: map[string]string{keyPhase: "focus", keyRemaining: "10", keyCycles: "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemorySQLite(t)
			for key, value := range tt.rows {
				_, err := store.db.Exec("INSERT INTO timer_state (key, value) VALUES (?, ?)", key, value)
				require.NoError(t, err)
			}

			_, err := store.Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, timekeeper.ErrNoRecord), "got %v", err)
		})
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), SQLiteFileName)
	durations := model.Durations{FocusSeconds: 3, ShortBreakSeconds: 2, LongBreakSeconds: 5, CyclesPerLongBreak: 2}

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	keeper, err := timekeeper.New(durations, timekeeper.Config{Store: store})
	require.NoError(t, err)
	keeper.Start()
	keeper.Tick()
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	restored, err := timekeeper.New(durations, timekeeper.Config{Store: reopened})
	require.NoError(t, err)
	assert.Equal(t, timekeeper.State{Phase: timekeeper.PhaseFocus, RemainingSeconds: 2}, restored.Snapshot())
}
