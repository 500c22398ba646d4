package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store"
	"github.com/warp/leave-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_LoadEmpty(t *testing.T) {
	st := newTestStore(t)

	_, ok, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RoundTrip(t *testing.T) {
	// GIVEN: A session with a half-day balance and a worked-time surplus
	// WHEN: Saving and loading
	// THEN: Every field round-trips exactly, including the decimal balance

	st := newTestStore(t)
	ctx := context.Background()

	in := store.Session{
		Balance:        leave.DaysOf(19.5),
		PendingHalfDay: true,
		Cursor:         calendar.NewDate(2026, time.February, 28),
		WorkedSurplus:  90 * time.Minute,
		SavedAt:        time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, st.Save(ctx, in))

	out, ok, err := st.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, out.Balance.Equal(in.Balance), "balance %s != %s", out.Balance, in.Balance)
	assert.True(t, out.PendingHalfDay)
	assert.True(t, out.Cursor.Equal(in.Cursor))
	assert.Equal(t, 90*time.Minute, out.WorkedSurplus)
	assert.True(t, out.SavedAt.Equal(in.SavedAt))
}

func TestStore_HistoryOldestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i, bal := range []float64{30, 25, 20} {
		require.NoError(t, st.Save(ctx, store.Session{
			Balance: leave.DaysOf(bal),
			Cursor:  calendar.NewDate(2026, time.January, 1+i),
		}))
	}

	history, err := st.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].Balance.Equal(leave.DaysOf(30)))
	assert.True(t, history[2].Balance.Equal(leave.DaysOf(20)))
}

func TestStore_SaveStampsMissingTime(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, store.Session{
		Balance: leave.DaysOf(1),
		Cursor:  calendar.NewDate(2026, time.January, 1),
	}))

	out, ok, err := st.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, out.SavedAt.IsZero())
}
