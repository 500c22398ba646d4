package loader_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/loader"
)

// =============================================================================
// DATE RANGE PARSING
// =============================================================================

func TestParseDateRange_Formats(t *testing.T) {
	cases := []struct {
		input string
		start string
		end   string
	}{
		{"02.01.2026 - 05.01.2026", "2026-01-02", "2026-01-05"},
		{"2026-01-02 - 2026-01-05", "2026-01-02", "2026-01-05"},
		{"24.12.2025", "2025-12-24", "2025-12-24"},
		{"  02.01.2026 - 05.01.2026  ", "2026-01-02", "2026-01-05"},
	}

	for _, tc := range cases {
		start, end, err := loader.ParseDateRange(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.start, start.String(), "start of %q", tc.input)
		assert.Equal(t, tc.end, end.String(), "end of %q", tc.input)
	}
}

func TestParseDateRange_Invalid(t *testing.T) {
	_, _, err := loader.ParseDateRange("")
	assert.ErrorIs(t, err, loader.ErrEmptyRange)

	_, _, err = loader.ParseDateRange("sometime in March")
	assert.Error(t, err)

	_, _, err = loader.ParseDateRange("02.01.2026 - whenever")
	assert.Error(t, err)
}

// =============================================================================
// REASON CLASSIFICATION
// =============================================================================

func TestClassifyReason(t *testing.T) {
	assert.Equal(t, leave.TypeSick, loader.ClassifyReason("Sick leave"))
	assert.Equal(t, leave.TypeSick, loader.ClassifyReason("Krankheit"))
	assert.Equal(t, leave.TypeSick, loader.ClassifyReason("illness"))
	assert.Equal(t, leave.TypeVacation, loader.ClassifyReason("Weihnachtsurlaub"))
	assert.Equal(t, leave.TypeVacation, loader.ClassifyReason(""))
}

// =============================================================================
// NORMALIZATION
// =============================================================================

func TestLoad_SortsChronologically(t *testing.T) {
	// GIVEN: Rows recorded out of order
	// WHEN: Loading
	// THEN: Intervals come back sorted ascending by start

	rows := []loader.Row{
		{Range: "01.06.2026 - 05.06.2026", Reason: "summer"},
		{Range: "02.01.2026 - 05.01.2026", Reason: "winter"},
	}

	intervals, err := loader.Load(rows)
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	assert.Equal(t, "winter", intervals[0].Reason)
	assert.Equal(t, "summer", intervals[1].Reason)
}

func TestLoad_RejectsSameTypeOverlap(t *testing.T) {
	rows := []loader.Row{
		{Range: "02.03.2026 - 06.03.2026", Reason: "trip"},
		{Range: "05.03.2026 - 09.03.2026", Reason: "second trip"},
	}

	_, err := loader.Load(rows)
	assert.ErrorIs(t, err, leave.ErrOverlappingIntervals)
}

func TestLoad_AllowsCrossTypeOverlap(t *testing.T) {
	// Falling sick during vacation is legal; the engine's shared pool
	// resolves the shared days.
	rows := []loader.Row{
		{Range: "02.03.2026 - 06.03.2026", Reason: "trip"},
		{Range: "05.03.2026 - 09.03.2026", Reason: "krank"},
	}

	intervals, err := loader.Load(rows)
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	assert.Equal(t, leave.TypeVacation, intervals[0].Type)
	assert.Equal(t, leave.TypeSick, intervals[1].Type)
}

func TestLoad_RejectsInvertedRange(t *testing.T) {
	rows := []loader.Row{{Range: "06.03.2026 - 02.03.2026", Reason: "trip"}}

	_, err := loader.Load(rows)
	assert.ErrorIs(t, err, leave.ErrInvalidInterval)
}

// =============================================================================
// FILE INPUT
// =============================================================================

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leave.csv")
	content := `# annual leave ledger
24.12.2025 - 31.12.2025;Weihnachtsurlaub

02.02.2026 - 04.02.2026;krank
2026-04-06 - 2026-04-10;Osterferien
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	intervals, err := loader.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, intervals, 3)

	assert.Equal(t, leave.TypeVacation, intervals[0].Type)
	assert.True(t, intervals[0].Start.Equal(calendar.NewDate(2025, time.December, 24)))
	assert.Equal(t, leave.TypeSick, intervals[1].Type)
	assert.Equal(t, "Osterferien", intervals[2].Reason)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := loader.ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
