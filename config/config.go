/*
Package config loads and validates the tool's configuration.

PURPOSE:
  Merges file-provided values, environment variables and flag overrides via
  viper into one Config, then converts the raw shapes into the engine's
  fixed-shape value objects (AccrualPolicy, NotificationPolicy).

PRECEDENCE (lowest to highest):
  built-in defaults < config file < LEAVED_* environment < explicit Set()
  (flags are applied by the CLI through Overrides)

THRESHOLDS:
  Raw threshold values may be a single number or a [info, warn] pair. A
  scalar sets the Info tier and the Warning tier keeps its built-in
  default. More than two values is a configuration error: reported as a
  Warning, extras ignored, never fatal. Malformed values fall back to the
  defaults the same way. The engine only ever sees the fixed
  Thresholds{Info, Warn} struct.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// CONFIG
// =============================================================================

type Config struct {
	Region     string `mapstructure:"region"`
	RegionFile string `mapstructure:"region_file"`

	Policy   PolicyConfig   `mapstructure:"policy"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Work     WorkConfig     `mapstructure:"work"`
	Session  SessionConfig  `mapstructure:"session"`
	Server   ServerConfig   `mapstructure:"server"`
	LogLevel string         `mapstructure:"log_level"`

	// Raw threshold shapes; resolved via NotificationPolicy().
	rawLowBalance any
	rawExpiring   any

	warnings []string
}

type PolicyConfig struct {
	AnnualGrant int    `mapstructure:"annual_grant"`
	Deadline    string `mapstructure:"deadline"` // "03-31"
	CarryFactor int    `mapstructure:"carry_factor"`
	HalfDayRule bool   `mapstructure:"half_day_rule"`
}

type LedgerConfig struct {
	LeaveFile string `mapstructure:"leave_file"`
}

type WorkConfig struct {
	HoursPerDay float64 `mapstructure:"hours_per_day"`
	LogFile     string  `mapstructure:"log_file"`
}

type SessionConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	CronSpec string `mapstructure:"cron_spec"` // daily notification evaluation
}

// Overrides are the CLI flag values that beat everything else. Zero values
// mean "not set".
type Overrides struct {
	StartingBalance *float64
	ReferenceYear   int
	LeaveFile       string
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file at path (optional; defaults apply when empty
// or missing) plus the LEAVED_* environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("region", "DE")
	v.SetDefault("policy.annual_grant", 30)
	v.SetDefault("policy.deadline", "03-31")
	v.SetDefault("policy.carry_factor", 1)
	v.SetDefault("policy.half_day_rule", true)
	v.SetDefault("work.hours_per_day", 8.0)
	v.SetDefault("session.db_path", "leave.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cron_spec", "0 9 * * *")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("LEAVED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// A missing file means "defaults apply"; anything else
			// (unreadable, malformed YAML) is fatal.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.rawLowBalance = v.Get("notifications.low_balance")
	cfg.rawExpiring = v.Get("notifications.expiring")
	return &cfg, nil
}

// Warnings returns the non-fatal configuration problems found so far.
// NotificationPolicy() may add to them.
func (c *Config) Warnings() []string { return c.warnings }

// =============================================================================
// CONVERSIONS TO ENGINE VALUE OBJECTS
// =============================================================================

// AccrualPolicy converts the raw policy section; invalid deadlines are an
// error, not a fallback, since forfeiture timing is a legal rule.
func (c *Config) AccrualPolicy() (leave.AccrualPolicy, error) {
	p := leave.DefaultPolicy()
	p.AnnualGrant = c.Policy.AnnualGrant
	p.CarryFactor = c.Policy.CarryFactor
	p.HalfDayRule = c.Policy.HalfDayRule

	if c.Policy.Deadline != "" {
		md, err := parseMonthDay(c.Policy.Deadline)
		if err != nil {
			return leave.AccrualPolicy{}, fmt.Errorf("policy deadline: %w", err)
		}
		p.Deadline = md
	}
	if err := p.Validate(); err != nil {
		return leave.AccrualPolicy{}, err
	}
	return p, nil
}

// NotificationPolicy resolves the raw threshold shapes. Problems are
// recorded as warnings and the built-in defaults fill in.
func (c *Config) NotificationPolicy() leave.NotificationPolicy {
	p := leave.DefaultNotificationPolicy()
	p.LowBalance = c.resolveThresholds("notifications.low_balance", c.rawLowBalance, p.LowBalance)
	p.Expiring = c.resolveThresholds("notifications.expiring", c.rawExpiring, p.Expiring)
	return p
}

// resolveThresholds applies the scalar-vs-pair rule to one raw value.
func (c *Config) resolveThresholds(key string, raw any, def leave.Thresholds) leave.Thresholds {
	if raw == nil {
		return def
	}

	// Scalar: Info tier only, Warn keeps its default.
	if n, err := cast.ToIntE(raw); err == nil {
		return leave.Thresholds{Info: n, Warn: def.Warn}.Normalize()
	}

	values, err := cast.ToIntSliceE(raw)
	if err != nil || len(values) == 0 {
		c.warnings = append(c.warnings, fmt.Sprintf("%s: malformed threshold %v, using defaults", key, raw))
		return def
	}
	if len(values) > 2 {
		c.warnings = append(c.warnings, fmt.Sprintf("%s: %d threshold values given, only [info warn] used", key, len(values)))
	}

	t := leave.Thresholds{Info: values[0], Warn: def.Warn}
	if len(values) >= 2 {
		t.Warn = values[1]
	}
	return t.Normalize()
}

func parseMonthDay(s string) (calendar.MonthDay, error) {
	md, err := calendar.ParseMonthDay(s)
	if err != nil {
		return calendar.MonthDay{}, fmt.Errorf("want MM-DD, got %q: %w", s, err)
	}
	return md, nil
}

// HoursPerDay returns the daily work target as a duration.
func (c *Config) HoursPerDay() time.Duration {
	return time.Duration(c.Work.HoursPerDay * float64(time.Hour))
}
