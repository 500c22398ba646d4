/*
Package factory assembles engine components from configuration.

PURPOSE:
  One place that turns a config.Config into live collaborators: the
  regional calendar, the accrual engine, the session store and the parsed
  leave ledger. Both the CLI and the API daemon compose through here, so
  the two entry points cannot drift apart.

USAGE:
  cal, err := factory.Calendar(cfg)
  engine, notify, err := factory.Engine(cfg)
  sessions, err := factory.SessionStore(cfg)
*/
package factory

import (
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/config"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/loader"
	"github.com/warp/leave-engine/store"
	"github.com/warp/leave-engine/store/sqlite"
	"github.com/warp/leave-engine/worklog"
)

// Calendar builds the regional calendar: a YAML region file when
// configured, the built-in region set otherwise.
func Calendar(cfg *config.Config) (*calendar.Regional, error) {
	if cfg.RegionFile != "" {
		return calendar.LoadRegionFile(cfg.RegionFile)
	}
	return calendar.NewRegional(cfg.Region), nil
}

// Engine builds the accrual engine and its notification policy.
func Engine(cfg *config.Config) (*leave.Engine, leave.NotificationPolicy, error) {
	cal, err := Calendar(cfg)
	if err != nil {
		return nil, leave.NotificationPolicy{}, err
	}
	policy, err := cfg.AccrualPolicy()
	if err != nil {
		return nil, leave.NotificationPolicy{}, err
	}
	notify := cfg.NotificationPolicy()

	engine, err := leave.NewEngine(cal, policy, notify)
	if err != nil {
		return nil, leave.NotificationPolicy{}, err
	}
	return engine, notify, nil
}

// SessionStore opens the configured SQLite store. The caller owns Close.
func SessionStore(cfg *config.Config) (*sqlite.Store, error) {
	return sqlite.New(cfg.Session.DBPath)
}

// Intervals loads the configured leave ledger; an unset path yields an
// empty ledger rather than an error.
func Intervals(cfg *config.Config) ([]leave.Interval, error) {
	if cfg.Ledger.LeaveFile == "" {
		return nil, nil
	}
	return loader.ReadFile(cfg.Ledger.LeaveFile)
}

// WorkTracker builds the worked-time tracker with the configured daily
// target.
func WorkTracker(cfg *config.Config) (*worklog.Tracker, error) {
	cal, err := Calendar(cfg)
	if err != nil {
		return nil, err
	}
	return worklog.NewTracker(cal, cfg.HoursPerDay()), nil
}

// WorkSpans loads the configured work log; an unset path yields an empty
// log rather than an error.
func WorkSpans(cfg *config.Config) ([]worklog.Span, error) {
	if cfg.Work.LogFile == "" {
		return nil, nil
	}
	return worklog.ReadFile(cfg.Work.LogFile)
}

// MemorySessions is a convenience for tests and one-shot runs that should
// not touch disk.
func MemorySessions() store.SessionStore { return store.NewMemory() }
