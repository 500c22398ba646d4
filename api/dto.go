/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON shapes for the HTTP surface, decoupled from the domain types. Days
  amounts cross the wire as numbers at 0.5 granularity; dates as
  "2006-01-02" strings.

TYPES:
  Report:        ReportResponse, RecordDTO, EventDTO
  Scenarios:     ScenarioRequest
  Sessions:      SessionDTO

SEE ALSO:
  - handlers.go: produces/consumes these types
*/
package api

import (
	"time"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store"
)

// =============================================================================
// REPORT
// =============================================================================

// RecordDTO is one per-interval balance row.
type RecordDTO struct {
	Reason  string  `json:"reason"`
	Type    string  `json:"type"`
	Start   string  `json:"start"`
	End     string  `json:"end"`
	Days    float64 `json:"days"`
	Balance float64 `json:"balance"`
}

// EventDTO is one notification event.
type EventDTO struct {
	Severity string  `json:"severity"`
	Kind     string  `json:"kind"`
	Message  string  `json:"message"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
}

// ReportResponse is the full accrual report.
type ReportResponse struct {
	Records        []RecordDTO `json:"records"`
	Events         []EventDTO  `json:"events"`
	FinalBalance   float64     `json:"final_balance"`
	PendingHalfDay bool        `json:"pending_half_day"`
	Deadline       string      `json:"deadline"`
	ReferenceYear  int         `json:"reference_year"`

	// Worked-time surplus in hours, when a work ledger is configured.
	WorkedSurplusHours *float64 `json:"worked_surplus_hours,omitempty"`
}

// =============================================================================
// SCENARIOS (what-if re-runs)
// =============================================================================

// ScenarioRequest re-runs the engine over the same ledger with a different
// starting point. Omitted fields keep the recovered session values.
type ScenarioRequest struct {
	StartingBalance *float64 `json:"starting_balance"`
	ReferenceYear   *int     `json:"reference_year"`
	PendingHalfDay  *bool    `json:"pending_half_day"`
}

// =============================================================================
// SESSIONS
// =============================================================================

type SessionDTO struct {
	Balance            float64   `json:"balance"`
	PendingHalfDay     bool      `json:"pending_half_day"`
	Cursor             string    `json:"cursor"`
	WorkedSurplusHours float64   `json:"worked_surplus_hours"`
	SavedAt            time.Time `json:"saved_at"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toRecordDTO(r leave.Record) RecordDTO {
	return RecordDTO{
		Reason:  r.Reason,
		Type:    string(r.Type),
		Start:   r.Start.String(),
		End:     r.End.String(),
		Days:    r.Days.Float64(),
		Balance: r.Balance.Float64(),
	}
}

func toEventDTO(ev leave.NotificationEvent) EventDTO {
	return EventDTO{
		Severity: string(ev.Severity),
		Kind:     string(ev.Kind),
		Message:  ev.Message,
		Date:     ev.Date.String(),
		Amount:   ev.Amount.Float64(),
	}
}

// NewReportResponse converts a run's output into its wire shape. Exported
// because the CLI prints the same JSON the API serves.
func NewReportResponse(out *leave.RunOutput, referenceYear int) ReportResponse {
	resp := ReportResponse{
		Records:        make([]RecordDTO, 0, len(out.Records)),
		Events:         make([]EventDTO, 0, len(out.Events)),
		FinalBalance:   out.FinalBalance.Float64(),
		PendingHalfDay: out.PendingHalfDay,
		Deadline:       out.Deadline.String(),
		ReferenceYear:  referenceYear,
	}
	for _, r := range out.Records {
		resp.Records = append(resp.Records, toRecordDTO(r))
	}
	for _, ev := range out.Events {
		resp.Events = append(resp.Events, toEventDTO(ev))
	}
	return resp
}

func toSessionDTO(s store.Session) SessionDTO {
	return SessionDTO{
		Balance:            s.Balance.Float64(),
		PendingHalfDay:     s.PendingHalfDay,
		Cursor:             s.Cursor.String(),
		WorkedSurplusHours: s.WorkedSurplus.Hours(),
		SavedAt:            s.SavedAt,
	}
}
