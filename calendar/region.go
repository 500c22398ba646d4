/*
region.go - Regional public-holiday calendars

PURPOSE:
  Implements Calendar for a geographic region. Built-in sets cover the German
  federal holidays plus per-state additions; arbitrary regions can be loaded
  from a YAML file instead.

MOVABLE FEASTS:
  Good Friday, Easter Monday, Ascension, Whit Monday and Corpus Christi float
  with Easter. Easter Sunday is computed with the anonymous Gregorian
  algorithm, so no year table needs shipping or updating.

YEAR CACHE:
  Holiday sets are generated per year on first use and cached. The cache is
  guarded by a mutex because the HTTP layer queries the calendar from
  concurrent requests; the engine itself is single-threaded.

SEE ALSO:
  - calendar.go: Calendar interface
  - blocked.go: consumed-day blocking wrapper
*/
package calendar

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// REGIONAL CALENDAR
// =============================================================================

// Regional is a Calendar for one region: Saturday/Sunday weekends plus the
// region's public holidays.
type Regional struct {
	region string

	mu    sync.Mutex
	years map[int]map[Date]string // year -> date -> holiday name
	extra map[Date]string         // file-provided fixed dates, any year
}

// NewRegional returns a calendar for a built-in region code
// ("DE", "DE-BW", "DE-BY", "DE-BE", "DE-NW"). Unknown codes fall back to the
// nationwide set.
func NewRegional(region string) *Regional {
	return &Regional{
		region: region,
		years:  make(map[int]map[Date]string),
	}
}

func (r *Regional) Region() string { return r.region }

func (r *Regional) IsBusinessDay(d Date) bool {
	return !d.IsWeekend() && !r.IsHoliday(d)
}

func (r *Regional) IsHoliday(d Date) bool {
	_, ok := r.holidayName(d)
	return ok
}

// HolidayName returns the name of the holiday on d, if any.
func (r *Regional) HolidayName(d Date) (string, bool) {
	return r.holidayName(d)
}

func (r *Regional) holidayName(d Date) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.extra[d]; ok {
		return name, true
	}
	set, ok := r.years[d.Year()]
	if !ok {
		set = holidaysFor(r.region, d.Year())
		r.years[d.Year()] = set
	}
	name, ok := set[d]
	return name, ok
}

// =============================================================================
// BUILT-IN GERMAN HOLIDAY SETS
// =============================================================================

func holidaysFor(region string, year int) map[Date]string {
	easter := easterSunday(year)

	set := map[Date]string{
		NewDate(year, time.January, 1):    "New Year's Day",
		easter.AddDays(-2):                "Good Friday",
		easter.AddDays(1):                 "Easter Monday",
		NewDate(year, time.May, 1):        "Labour Day",
		easter.AddDays(39):                "Ascension Day",
		easter.AddDays(50):                "Whit Monday",
		NewDate(year, time.October, 3):    "German Unity Day",
		NewDate(year, time.December, 25):  "Christmas Day",
		NewDate(year, time.December, 26):  "Boxing Day",
	}

	switch region {
	case "DE-BW":
		set[NewDate(year, time.January, 6)] = "Epiphany"
		set[easter.AddDays(60)] = "Corpus Christi"
		set[NewDate(year, time.November, 1)] = "All Saints' Day"
	case "DE-BY":
		set[NewDate(year, time.January, 6)] = "Epiphany"
		set[easter.AddDays(60)] = "Corpus Christi"
		set[NewDate(year, time.August, 15)] = "Assumption Day"
		set[NewDate(year, time.November, 1)] = "All Saints' Day"
	case "DE-NW":
		set[easter.AddDays(60)] = "Corpus Christi"
		set[NewDate(year, time.November, 1)] = "All Saints' Day"
	case "DE-BE":
		set[NewDate(year, time.March, 8)] = "International Women's Day"
	}

	return set
}

// easterSunday computes Easter Sunday for a year using the anonymous
// Gregorian computus.
func easterSunday(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return NewDate(year, time.Month(month), day)
}

// =============================================================================
// YAML REGION FILES
// =============================================================================

// regionFile is the on-disk shape of a custom region definition:
//
//	region: "DE-HH"
//	holidays:
//	  - date: "2026-01-01"
//	    name: "New Year's Day"
type regionFile struct {
	Region   string `yaml:"region"`
	Holidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"holidays"`
}

// LoadRegionFile builds a Regional from a YAML file. The file's dates fully
// replace the built-in sets only when the region code is unknown; for known
// codes they are applied on top.
func LoadRegionFile(path string) (*Regional, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region file: %w", err)
	}

	var rf regionFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("parse region file %s: %w", path, err)
	}
	if rf.Region == "" {
		return nil, fmt.Errorf("region file %s: missing region code", path)
	}

	cal := NewRegional(rf.Region)
	cal.extra = make(map[Date]string, len(rf.Holidays))
	for _, h := range rf.Holidays {
		d, err := ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("region file %s: bad date %q: %w", path, h.Date, err)
		}
		cal.extra[d] = h.Name
	}
	return cal, nil
}
