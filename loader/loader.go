/*
Package loader normalizes raw tabular leave rows into engine-ready intervals.

PURPOSE:
  The leave ledger arrives as date-range strings with free-text reasons
  ("24.12.2025 - 31.12.2025;Weihnachtsurlaub"). This package parses the
  ranges, classifies the reason into vacation vs sick leave, sorts
  chronologically and enforces the engine's non-overlap precondition.

WHY THE LOADER VALIDATES OVERLAP:
  The engine documents same-type non-overlap as a caller-guaranteed
  precondition and does not re-check it per day. Overlap must therefore be
  rejected here, before the fold ever sees the data. Cross-type overlap is
  legal (falling sick during vacation) and resolved by the shared
  consumed-day pool.

ROW FORMATS ACCEPTED:
  "02.01.2026 - 05.01.2026"   range, German day-first dates
  "2026-01-02 - 2026-01-05"   range, ISO dates
  "02.01.2026"                single day

SEE ALSO:
  - leave/engine.go: consumer of the normalized intervals
*/
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// ROWS
// =============================================================================

// Row is one raw ledger entry before normalization.
type Row struct {
	Range  string
	Reason string
}

var ErrEmptyRange = errors.New("empty date range")

// sick-leave keywords checked against the lowercased reason text.
var sickKeywords = []string{"sick", "krank", "ill"}

// =============================================================================
// PARSING
// =============================================================================

var dateLayouts = []string{"02.01.2006", "2006-01-02"}

func parseDate(s string) (calendar.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.DateOf(t), nil
		}
	}
	return calendar.Date{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseDateRange parses "start - end" or a single date (start == end).
func ParseDateRange(s string) (start, end calendar.Date, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return calendar.Date{}, calendar.Date{}, ErrEmptyRange
	}

	parts := strings.SplitN(s, " - ", 2)
	start, err = parseDate(parts[0])
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	if len(parts) == 1 {
		return start, start, nil
	}
	end, err = parseDate(parts[1])
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	return start, end, nil
}

// ClassifyReason maps free-text reasons to a leave type. Anything not
// recognizably sick leave is vacation; the ledger only records those two.
func ClassifyReason(reason string) leave.Type {
	lower := strings.ToLower(reason)
	for _, kw := range sickKeywords {
		if strings.Contains(lower, kw) {
			return leave.TypeSick
		}
	}
	return leave.TypeVacation
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// Load turns raw rows into sorted, validated intervals.
func Load(rows []Row) ([]leave.Interval, error) {
	intervals := make([]leave.Interval, 0, len(rows))
	for i, row := range rows {
		start, end, err := ParseDateRange(row.Range)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if start.After(end) {
			return nil, &leave.IntervalError{Index: i, Start: start, End: end, Sentinel: leave.ErrInvalidInterval}
		}
		intervals = append(intervals, leave.Interval{
			Reason: strings.TrimSpace(row.Reason),
			Type:   ClassifyReason(row.Reason),
			Start:  start,
			End:    end,
		})
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	if err := validateNoOverlap(intervals); err != nil {
		return nil, err
	}
	return intervals, nil
}

// validateNoOverlap rejects same-type overlap. Intervals are already sorted
// by start, so per type only the previous interval matters.
func validateNoOverlap(intervals []leave.Interval) error {
	last := make(map[leave.Type]leave.Interval)
	for i, iv := range intervals {
		if prev, ok := last[iv.Type]; ok && iv.Overlaps(prev) {
			return &leave.IntervalError{Index: i, Start: iv.Start, End: iv.End, Sentinel: leave.ErrOverlappingIntervals}
		}
		last[iv.Type] = iv
	}
	return nil
}

// =============================================================================
// FILE INPUT
// =============================================================================

// ReadFile reads a semicolon-separated ledger file: "range;reason" per line,
// one interval each. Blank lines and lines starting with '#' are skipped.
func ReadFile(path string) ([]leave.Interval, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open leave ledger: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("read leave ledger %s: %w", path, err)
	}
	return Load(rows)
}

func readRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		row := Row{Range: record[0]}
		if len(record) > 1 {
			row.Reason = record[1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
