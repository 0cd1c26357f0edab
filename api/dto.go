/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's internal model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine: The shapes these serialize
*/
package api

import (
	"github.com/leap/balance-engine/engine"
)

// =============================================================================
// SCHEDULE
// =============================================================================

// ScheduleDTO maps weekday names (Monday-first when rendered) to
// expected hours.
type ScheduleDTO struct {
	Hours map[string]float64 `json:"hours"`
}

// =============================================================================
// LEAVE
// =============================================================================

// AddLeaveRequest adds one contiguous leave range.
type AddLeaveRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

// AddLeaveResponse reports how many day-records were added.
type AddLeaveResponse struct {
	Added int `json:"added"`
}

// ImportLeaveRequest carries the pasted bulk export text.
type ImportLeaveRequest struct {
	Text string `json:"text"`
}

// RemoveLeaveRequest removes one displayed (reason, range) row.
type RemoveLeaveRequest struct {
	Reason string `json:"reason"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// RemoveLeaveResponse reports how many records were removed.
type RemoveLeaveResponse struct {
	Removed int `json:"removed"`
}

// LeaveRangeDTO is one coalesced sub-range of consecutive leave days.
type LeaveRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// LeaveGroupDTO is one display group: a reason with its sub-ranges.
type LeaveGroupDTO struct {
	Reason string          `json:"reason"`
	Ranges []LeaveRangeDTO `json:"ranges"`
}

// =============================================================================
// BALANCE & SERIES
// =============================================================================

// BalanceDTO is the balance with its calculation details.
type BalanceDTO struct {
	Start          string  `json:"start"`
	End            string  `json:"end"`
	LoggedHours    float64 `json:"logged_hours"`
	ExpectedHours  float64 `json:"expected_hours"`
	LeaveReduction float64 `json:"leave_reduction"`
	Balance        float64 `json:"balance"`
}

// DayStatDTO is one date's expected vs. actual hours.
type DayStatDTO struct {
	Date     string  `json:"date"`
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
}

// BarSegmentDTO is one stacked-bar segment.
type BarSegmentDTO struct {
	Date  string  `json:"date"`
	Kind  string  `json:"kind"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// CumulativePointDTO is one running-total point.
type CumulativePointDTO struct {
	Date     string  `json:"date"`
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
}

// WindowDTO is the default query window pre-populated from the
// provider's earliest/latest entries.
type WindowDTO struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Source string `json:"source"` // "provider" or "default"
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toScheduleDTO(schedule *engine.Schedule) ScheduleDTO {
	hours := make(map[string]float64, len(engine.Weekdays))
	for _, wd := range engine.Weekdays {
		hours[wd.String()] = schedule.ExpectedHours(wd).Float64()
	}
	return ScheduleDTO{Hours: hours}
}

func toLeaveGroupDTOs(groups []engine.LeaveGroup) []LeaveGroupDTO {
	dtos := make([]LeaveGroupDTO, len(groups))
	for i, g := range groups {
		ranges := make([]LeaveRangeDTO, len(g.Ranges))
		for j, r := range g.Ranges {
			ranges[j] = LeaveRangeDTO{
				Start: r.Start.String(),
				End:   r.End.String(),
				Label: r.DisplayLabel(),
			}
		}
		dtos[i] = LeaveGroupDTO{Reason: g.Reason, Ranges: ranges}
	}
	return dtos
}

func toDayStatDTOs(series []engine.DayStat) []DayStatDTO {
	dtos := make([]DayStatDTO, len(series))
	for i, s := range series {
		dtos[i] = DayStatDTO{
			Date:     s.Date.String(),
			Expected: s.Expected.Float64(),
			Actual:   s.Actual.Float64(),
		}
	}
	return dtos
}

func toBarSegmentDTOs(segments []engine.BarSegment) []BarSegmentDTO {
	dtos := make([]BarSegmentDTO, len(segments))
	for i, s := range segments {
		dtos[i] = BarSegmentDTO{
			Date:  s.Date.String(),
			Kind:  string(s.Kind),
			Lower: s.Lower.Float64(),
			Upper: s.Upper.Float64(),
		}
	}
	return dtos
}

func toCumulativePointDTOs(points []engine.CumulativePoint) []CumulativePointDTO {
	dtos := make([]CumulativePointDTO, len(points))
	for i, p := range points {
		dtos[i] = CumulativePointDTO{
			Date:     p.Date.String(),
			Expected: p.Expected.Float64(),
			Actual:   p.Actual.Float64(),
		}
	}
	return dtos
}
