/*
scheduler.go - Scheduled notification evaluation

PURPOSE:
  Runs the accrual report on a cron spec (default: daily at 09:00) and
  pushes the resulting notification events into the structured log. This is
  how "your leave expires in 30 days" reaches anyone without them asking.

DESIGN:
  - robfig/cron drives the schedule; the job itself is just runReport
  - events are logged at their own severity, nothing is persisted
  - Start/Stop bracket the daemon lifecycle

SEE ALSO:
  - handlers.go: runReport
  - cmd/leaved:  wires the cron spec from config
*/
package api

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/warp/leave-engine/leave"
)

// NotificationScheduler periodically evaluates notifications.
type NotificationScheduler struct {
	handler  *Handler
	log      *zap.Logger
	cronSpec string
	engine   *cron.Cron
}

// NewNotificationScheduler creates a scheduler; spec is a standard 5-field
// cron expression evaluated in local time.
func NewNotificationScheduler(handler *Handler, log *zap.Logger, spec string) *NotificationScheduler {
	return &NotificationScheduler{
		handler:  handler,
		log:      log,
		cronSpec: spec,
		engine:   cron.New(cron.WithLocation(time.Local)),
	}
}

// Start registers the job and starts the cron engine.
func (s *NotificationScheduler) Start() error {
	if _, err := s.engine.AddFunc(s.cronSpec, s.evaluate); err != nil {
		return err
	}
	s.engine.Start()
	s.log.Info("notification scheduler started", zap.String("cron", s.cronSpec))
	return nil
}

// Stop stops the cron engine and waits for a running job to finish.
func (s *NotificationScheduler) Stop() {
	ctx := s.engine.Stop()
	<-ctx.Done()
	s.log.Info("notification scheduler stopped")
}

func (s *NotificationScheduler) evaluate() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out, _, _, err := s.handler.runReport(ctx, nil)
	if err != nil {
		s.log.Error("scheduled evaluation failed", zap.Error(err))
		return
	}

	for _, ev := range out.Events {
		fields := []zap.Field{
			zap.String("kind", string(ev.Kind)),
			zap.String("date", ev.Date.String()),
			zap.String("amount", ev.Amount.String()),
		}
		if ev.Severity == leave.SeverityWarning {
			s.log.Warn(ev.Message, fields...)
		} else {
			s.log.Info(ev.Message, fields...)
		}
	}
	s.log.Info("scheduled evaluation complete",
		zap.String("balance", out.FinalBalance.String()),
		zap.Int("events", len(out.Events)))
}
