package worklog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// FILE INPUT
// =============================================================================

var dateLayouts = []string{"02.01.2006", "2006-01-02"}

// ReadFile reads a semicolon-separated work log: "date;clock-in;clock-out"
// per line. Dates accept day-first German or ISO form. Blank lines and lines
// starting with '#' are skipped.
func ReadFile(path string) ([]Span, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open work log: %w", err)
	}
	defer f.Close()

	spans, err := readSpans(f)
	if err != nil {
		return nil, fmt.Errorf("read work log %s: %w", path, err)
	}
	return spans, nil
}

func readSpans(r io.Reader) ([]Span, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var spans []Span
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("line %d: want date;in;out, got %d fields", line, len(record))
		}

		day, err := parseDay(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sp, err := ParseSpan(day, strings.TrimSpace(record[1]), strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		spans = append(spans, sp)
	}
	return spans, nil
}

func parseDay(s string) (calendar.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.DateOf(t), nil
		}
	}
	return calendar.Date{}, fmt.Errorf("unrecognized date %q", s)
}
