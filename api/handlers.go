/*
handlers.go - HTTP API handlers for the leave balance engine

PURPOSE:
  Exposes the accrual engine over REST. Handles HTTP request/response and
  JSON shapes; all balance math stays in the leave package.

ENDPOINTS:
  GET  /healthz            Liveness check
  GET  /api/report         Accrual report from the recovered session state
  POST /api/report/save    Run the report and persist the resulting session
  POST /api/scenarios      What-if re-run with overridden starting state
  GET  /api/notifications  Current notification events only
  GET  /api/sessions       Saved session history

ERROR HANDLING:
  Errors return JSON {"error": ...}:
  - 400: malformed request body or ledger precondition violations
  - 500: storage failures

  Data-consistency findings (overdraft, forfeiture) are NOT errors; they
  travel inside the report as events.

SEE ALSO:
  - dto.go:      request/response shapes
  - server.go:   router setup and middleware
  - scheduler.go: the cron evaluation reuses runReport
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers. The interval ledger is
// loaded once at startup; the engine re-runs over it per request, which is
// cheap (single pass, a few hundred intervals at most).
type Handler struct {
	Log       *zap.Logger
	Engine    *leave.Engine
	Sessions  store.SessionStore
	Intervals []leave.Interval

	// FallbackYear seeds the reference year when no session exists and the
	// ledger is empty.
	FallbackYear int

	// Now is injectable for tests; defaults to calendar.Today.
	Now func() calendar.Date
}

// NewHandler creates a handler with sane defaults.
func NewHandler(log *zap.Logger, engine *leave.Engine, sessions store.SessionStore, intervals []leave.Interval) *Handler {
	return &Handler{
		Log:          log,
		Engine:       engine,
		Sessions:     sessions,
		Intervals:    intervals,
		FallbackYear: calendar.Today().Year(),
		Now:          calendar.Today,
	}
}

// runReport resolves the starting state (session, then fallbacks) and runs
// the engine. Also used by the scheduler. The recovered session, if any,
// comes back so callers can carry its worked-time surplus along.
func (h *Handler) runReport(ctx context.Context, override *ScenarioRequest) (*leave.RunOutput, leave.RunInput, *store.Session, error) {
	in := leave.RunInput{
		Intervals:       h.Intervals,
		StartingBalance: leave.ZeroDays(),
		ReferenceYear:   h.referenceYear(),
		Today:           h.Now(),
	}

	var recovered *store.Session
	if sess, ok, err := h.Sessions.Load(ctx); err != nil {
		return nil, in, nil, err
	} else if ok {
		recovered = &sess
		in.StartingBalance = sess.Balance
		in.PendingHalfDay = sess.PendingHalfDay
		in.ReferenceYear = sess.Cursor.Year()
	}

	if override != nil {
		if override.StartingBalance != nil {
			in.StartingBalance = leave.DaysOf(*override.StartingBalance)
		}
		if override.ReferenceYear != nil {
			in.ReferenceYear = *override.ReferenceYear
		}
		if override.PendingHalfDay != nil {
			in.PendingHalfDay = *override.PendingHalfDay
		}
	}

	out, err := h.Engine.Run(in)
	return out, in, recovered, err
}

// referenceYear falls back to the year of the first ledger entry.
func (h *Handler) referenceYear() int {
	if len(h.Intervals) > 0 {
		return h.Intervals[0].Start.Year()
	}
	return h.FallbackYear
}

// =============================================================================
// REPORT
// =============================================================================

// GetReport computes the accrual report from the recovered session state.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	out, in, sess, err := h.runReport(r.Context(), nil)
	if err != nil {
		h.renderRunError(w, err)
		return
	}
	h.renderJSON(w, http.StatusOK, h.reportResponse(out, in, sess))
}

// SaveReport runs the report and persists the resulting session state.
func (h *Handler) SaveReport(w http.ResponseWriter, r *http.Request) {
	out, in, prev, err := h.runReport(r.Context(), nil)
	if err != nil {
		h.renderRunError(w, err)
		return
	}

	sess := store.Session{
		Balance:        out.FinalBalance,
		PendingHalfDay: out.PendingHalfDay,
		Cursor:         in.Today,
	}
	if prev != nil {
		sess.WorkedSurplus = prev.WorkedSurplus
	}
	if err := h.Sessions.Save(r.Context(), sess); err != nil {
		h.renderError(w, http.StatusInternalServerError, err)
		return
	}
	h.Log.Info("session saved",
		zap.String("balance", out.FinalBalance.String()),
		zap.Bool("pending_half_day", out.PendingHalfDay))
	h.renderJSON(w, http.StatusOK, h.reportResponse(out, in, prev))
}

// reportResponse attaches the session's worked-time surplus to the wire
// shape when one is known.
func (h *Handler) reportResponse(out *leave.RunOutput, in leave.RunInput, sess *store.Session) ReportResponse {
	resp := NewReportResponse(out, in.ReferenceYear)
	if sess != nil && sess.WorkedSurplus != 0 {
		hours := sess.WorkedSurplus.Hours()
		resp.WorkedSurplusHours = &hours
	}
	return resp
}

// =============================================================================
// SCENARIOS - what-if re-runs, no persisted side effects
// =============================================================================

// RunScenario re-runs the engine with an overridden starting state.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	var req ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, http.StatusBadRequest, err)
		return
	}

	out, in, _, err := h.runReport(r.Context(), &req)
	if err != nil {
		h.renderRunError(w, err)
		return
	}
	h.renderJSON(w, http.StatusOK, NewReportResponse(out, in.ReferenceYear))
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// GetNotifications returns only the events of a fresh run.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	out, _, _, err := h.runReport(r.Context(), nil)
	if err != nil {
		h.renderRunError(w, err)
		return
	}
	events := make([]EventDTO, 0, len(out.Events))
	for _, ev := range out.Events {
		events = append(events, toEventDTO(ev))
	}
	h.renderJSON(w, http.StatusOK, events)
}

// =============================================================================
// SESSIONS
// =============================================================================

// ListSessions returns the saved session history, oldest first.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	history, err := h.Sessions.History(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]SessionDTO, 0, len(history))
	for _, s := range history {
		dtos = append(dtos, toSessionDTO(s))
	}
	h.renderJSON(w, http.StatusOK, dtos)
}

// Healthz is the liveness check.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	h.renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RENDERING
// =============================================================================

func (h *Handler) renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) renderError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.Log.Error("request failed", zap.Error(err))
	}
	h.renderJSON(w, status, map[string]string{"error": err.Error()})
}

// renderRunError maps engine precondition violations to 400, everything
// else to 500.
func (h *Handler) renderRunError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, leave.ErrInvalidInterval) ||
		errors.Is(err, leave.ErrUnsortedIntervals) ||
		errors.Is(err, leave.ErrOverlappingIntervals) {
		status = http.StatusBadRequest
	}
	h.renderError(w, status, err)
}
