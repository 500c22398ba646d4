/*
main.go - Application entry point

PURPOSE:
  The leaved CLI: one-shot accrual reports and the API daemon.

COMMANDS:
  leaved report    Compute the report once, print JSON, optionally save
  leaved worktime  Summarize the work log against the business-day target
  leaved serve     Run the HTTP API with the scheduled daily evaluation

STARTUP SEQUENCE (serve):
  1. godotenv + config file + LEAVED_* env
  2. zap logger at the configured level
  3. factory: calendar, engine, session store, ledger
  4. chi router + cron scheduler
  5. graceful shutdown on SIGINT/SIGTERM

EXAMPLES:
  leaved report -c leaved.yaml
  leaved report --starting-balance 27.5 --year 2026   # what-if
  leaved serve -c leaved.yaml
*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/warp/leave-engine/api"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/config"
	"github.com/warp/leave-engine/factory"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	// Optional .env; absence is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "leaved",
		Short: "Leave balance accrual engine",
		Long:  "Tracks a worked-time surplus and an annual leave entitlement balance under grant, carry-over and forfeiture rules.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err = newLogger(cfg.LogLevel)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "leaved.yaml", "config file path")
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(worktimeCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// REPORT - one-shot computation
// =============================================================================

func reportCmd() *cobra.Command {
	var (
		save            bool
		startingBalance float64
		referenceYear   int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the accrual report and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logConfigWarnings(cfg)

			engine, _, err := factory.Engine(cfg)
			if err != nil {
				return err
			}
			intervals, err := factory.Intervals(cfg)
			if err != nil {
				return err
			}
			sessions, err := factory.SessionStore(cfg)
			if err != nil {
				return err
			}
			defer sessions.Close()

			ctx := cmd.Context()
			in := leave.RunInput{
				Intervals:       intervals,
				StartingBalance: leave.ZeroDays(),
				ReferenceYear:   calendar.Today().Year(),
				Today:           calendar.Today(),
			}
			if len(intervals) > 0 {
				in.ReferenceYear = intervals[0].Start.Year()
			}
			if sess, ok, err := sessions.Load(ctx); err != nil {
				return err
			} else if ok {
				in.StartingBalance = sess.Balance
				in.PendingHalfDay = sess.PendingHalfDay
				in.ReferenceYear = sess.Cursor.Year()
			}

			// Flag overrides beat file and session values.
			if cmd.Flags().Changed("starting-balance") {
				in.StartingBalance = leave.DaysOf(startingBalance)
			}
			if cmd.Flags().Changed("year") {
				in.ReferenceYear = referenceYear
			}

			out, err := engine.Run(in)
			if err != nil {
				return err
			}

			if save {
				err := sessions.Save(ctx, store.Session{
					Balance:        out.FinalBalance,
					PendingHalfDay: out.PendingHalfDay,
					Cursor:         in.Today,
				})
				if err != nil {
					return err
				}
				logger.Info("session saved", zap.String("balance", out.FinalBalance.String()))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(api.NewReportResponse(out, in.ReferenceYear))
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "persist the resulting session state")
	cmd.Flags().Float64Var(&startingBalance, "starting-balance", 0, "override the starting balance (what-if)")
	cmd.Flags().IntVar(&referenceYear, "year", 0, "override the reference year (what-if)")
	return cmd
}

// =============================================================================
// WORKTIME - worked-time surplus
// =============================================================================

func worktimeCmd() *cobra.Command {
	var (
		fromFlag string
		toFlag   string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "worktime",
		Short: "Summarize clocked work time against the business-day target",
		Long:  "Totals the work log over a window, credits recorded leave days at the daily target and prints the surplus. Defaults to the current year to date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logConfigWarnings(cfg)

			tracker, err := factory.WorkTracker(cfg)
			if err != nil {
				return err
			}
			spans, err := factory.WorkSpans(cfg)
			if err != nil {
				return err
			}
			intervals, err := factory.Intervals(cfg)
			if err != nil {
				return err
			}

			today := calendar.Today()
			from := calendar.StartOfYear(today.Year())
			to := today
			if fromFlag != "" {
				if from, err = calendar.ParseDate(fromFlag); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}
			if toFlag != "" {
				if to, err = calendar.ParseDate(toFlag); err != nil {
					return fmt.Errorf("--to: %w", err)
				}
			}

			credited, err := creditedLeaveDays(cfg, intervals, from, to)
			if err != nil {
				return err
			}

			sum, err := tracker.Summarize(spans, from, to, credited)
			if err != nil {
				return err
			}

			if save {
				sessions, err := factory.SessionStore(cfg)
				if err != nil {
					return err
				}
				defer sessions.Close()

				next := store.Session{Cursor: to, WorkedSurplus: sum.Surplus()}
				if sess, ok, err := sessions.Load(cmd.Context()); err != nil {
					return err
				} else if ok {
					next.Balance = sess.Balance
					next.PendingHalfDay = sess.PendingHalfDay
				}
				if err := sessions.Save(cmd.Context(), next); err != nil {
					return err
				}
				logger.Info("session saved", zap.Duration("worked_surplus", sum.Surplus()))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"from":           from.String(),
				"to":             to.String(),
				"worked_hours":   sum.Worked.Hours(),
				"credited_days":  credited,
				"credited_hours": sum.Credited.Hours(),
				"target_hours":   sum.Target.Hours(),
				"surplus_hours":  sum.Surplus().Hours(),
			})
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "window start (YYYY-MM-DD, default: start of year)")
	cmd.Flags().StringVar(&toFlag, "to", "", "window end (YYYY-MM-DD, default: today)")
	cmd.Flags().BoolVar(&save, "save", false, "persist the surplus into the session")
	return cmd
}

// creditedLeaveDays counts the chargeable leave days inside the window. Sick
// leave credits worked time the same as vacation: the day is excused either
// way.
func creditedLeaveDays(cfg *config.Config, intervals []leave.Interval, from, to calendar.Date) (float64, error) {
	cal, err := factory.Calendar(cfg)
	if err != nil {
		return 0, err
	}
	policy, err := cfg.AccrualPolicy()
	if err != nil {
		return 0, err
	}

	counter := leave.NewDayCounter(cal, policy.HalfDayRule)
	credited := 0.0
	for _, iv := range intervals {
		start, end := iv.Start, iv.End
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		if start.After(end) {
			continue
		}
		credited += counter.Count(start, end, iv.Type).Float64()
		counter.Commit(start, end, iv.Type)
	}
	return credited, nil
}

// =============================================================================
// SERVE - API daemon
// =============================================================================

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled notification evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logConfigWarnings(cfg)

			engine, _, err := factory.Engine(cfg)
			if err != nil {
				return err
			}
			intervals, err := factory.Intervals(cfg)
			if err != nil {
				return err
			}
			sessions, err := factory.SessionStore(cfg)
			if err != nil {
				return err
			}
			defer sessions.Close()

			handler := api.NewHandler(logger, engine, sessions, intervals)
			router := api.NewRouter(handler)

			scheduler := api.NewNotificationScheduler(handler, logger, cfg.Server.CronSpec)
			if err := scheduler.Start(); err != nil {
				return fmt.Errorf("start scheduler: %w", err)
			}
			defer scheduler.Stop()

			server := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				logger.Info("server starting", zap.Int("port", cfg.Server.Port))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("server failed", zap.Error(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
}

// =============================================================================
// LOGGING
// =============================================================================

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// logConfigWarnings surfaces non-fatal configuration problems, per the
// error taxonomy: recovered with defaults, reported, never fatal.
func logConfigWarnings(cfg *config.Config) {
	cfg.NotificationPolicy() // resolve thresholds so shape problems surface
	for _, w := range cfg.Warnings() {
		logger.Warn("configuration", zap.String("problem", w))
	}
}
