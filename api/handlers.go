/*
handlers.go - HTTP API handlers for the time-balance tracker

PURPOSE:
  Exposes the balance engine via REST. Handlers own the HTTP
  request/response cycle, JSON serialization, and input validation;
  the computation is delegated to the engine over state loaded from
  the session store.

ENDPOINTS:
  Schedule:
    GET    /api/schedule            Current expected-hours schedule
    PUT    /api/schedule            Replace the schedule wholesale

  Leave:
    GET    /api/leave               Grouped leave display
    POST   /api/leave               Add one leave range
    POST   /api/leave/import        Bulk import from pasted export text
    DELETE /api/leave               Remove one (reason, range) row

  Reporting:
    GET    /api/balance             Balance with calculation details
    GET    /api/series/daily        Expected vs. actual per date
    GET    /api/series/bars         Contractual/overtime/shortfall bars
    GET    /api/series/cumulative   Running totals
    GET    /api/window              Default query window

REQUEST FLOW:
  1. Parse and validate input (ranges rejected before any work)
  2. Load session state from the store
  3. Call engine functions over explicit inputs
  4. Serialize response

ERROR HANDLING:
  - 400: invalid range, bad dates, unknown weekday names
  - 502: provider transport/auth failures
  - 503: reporting endpoints without a configured provider
  - 500: everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/leap/balance-engine/engine"
	"github.com/leap/balance-engine/provider/harvest"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Provider is the time-tracking collaborator the reporting endpoints
// depend on. harvest.Client implements it.
type Provider interface {
	FetchLoggedHours(ctx context.Context, userID string, start, end engine.Day) ([]engine.LoggedHoursEntry, error)
	EarliestEntryDate(ctx context.Context, userID string) (engine.Day, bool, error)
	LatestEntryDate(ctx context.Context, userID string) (engine.Day, bool, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    engine.Store
	Provider Provider
	UserID   string

	// now is swappable for tests; defaults to engine.Today.
	now func() engine.Day
}

// NewHandler creates a handler over the given session store. provider
// may be nil when no credentials are configured; reporting endpoints
// then answer 503.
func NewHandler(store engine.Store, provider Provider, userID string) *Handler {
	return &Handler{
		Store:    store,
		Provider: provider,
		UserID:   userID,
		now:      engine.Today,
	}
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// GetSchedule returns the session's expected-hours schedule.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.Store.LoadSchedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(schedule))
}

// SaveSchedule replaces the schedule wholesale. Unknown weekday names
// are rejected; hours are clamped to [0, 24] here — this is the edit
// surface the engine trusts to do the clamping.
func (h *Handler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	hours := make(map[string]float64, len(req.Hours))
	for name, value := range req.Hours {
		if _, ok := engine.ParseWeekday(name); !ok {
			writeError(w, http.StatusBadRequest, "Unknown weekday: "+name, nil)
			return
		}
		hours[name] = clampHours(value)
	}

	mapping := engine.DefaultSchedule().Hours()
	for name, value := range hours {
		wd, _ := engine.ParseWeekday(name)
		mapping[wd] = engine.NewHours(value)
	}

	if err := h.Store.SaveSchedule(r.Context(), engine.NewSchedule(mapping)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleDTO{Hours: hours})
}

func clampHours(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 24 {
		return 24
	}
	return v
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// ListLeave returns the grouped leave display.
func (h *Handler) ListLeave(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.loadLedger(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveGroupDTOs(ledger.Grouped()))
}

// AddLeave adds one contiguous leave range.
func (h *Handler) AddLeave(w http.ResponseWriter, r *http.Request) {
	var req AddLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, end, ok := parseDates(w, req.Start, req.End)
	if !ok {
		return
	}

	pending := engine.NewLedger()
	added, err := pending.AddRange(start, end, req.Reason)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Start date must be before end date", err)
		return
	}

	if err := h.Store.AddLeave(r.Context(), pending.Records()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to add leave", err)
		return
	}
	writeJSON(w, http.StatusCreated, AddLeaveResponse{Added: added})
}

// ImportLeave bulk-imports leave from pasted export text. Best effort:
// unparseable lines are skipped and the response only counts what was
// added.
func (h *Handler) ImportLeave(w http.ResponseWriter, r *http.Request) {
	var req ImportLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pending := engine.NewLedger()
	added := pending.ImportBulk(req.Text)

	if added > 0 {
		if err := h.Store.AddLeave(r.Context(), pending.Records()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to import leave", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, AddLeaveResponse{Added: added})
}

// RemoveLeave removes one displayed (reason, range) row.
func (h *Handler) RemoveLeave(w http.ResponseWriter, r *http.Request) {
	var req RemoveLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, end, ok := parseDates(w, req.Start, req.End)
	if !ok {
		return
	}
	rng, err := engine.NewDateRange(start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Start date must be before end date", err)
		return
	}

	removed, err := h.Store.RemoveLeave(r.Context(), req.Reason, rng)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove leave", err)
		return
	}
	writeJSON(w, http.StatusOK, RemoveLeaveResponse{Removed: removed})
}

// =============================================================================
// REPORTING HANDLERS
// =============================================================================

// GetBalance computes the balance for the query range.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	entries, schedule, ledger, ok := h.gatherInputs(w, r, rng)
	if !ok {
		return
	}

	breakdown, err := engine.ComputeBalance(rng.Start, rng.End, entries, schedule, ledger)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceDTO{
		Start:          rng.Start.String(),
		End:            rng.End.String(),
		LoggedHours:    breakdown.Logged.Float64(),
		ExpectedHours:  breakdown.Expected.Float64(),
		LeaveReduction: breakdown.Reduction.Float64(),
		Balance:        breakdown.Balance.Float64(),
	})
}

// GetDailySeries returns expected vs. actual hours per date.
func (h *Handler) GetDailySeries(w http.ResponseWriter, r *http.Request) {
	series, ok := h.buildDailySeries(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toDayStatDTOs(series))
}

// GetBarSeries returns the stacked-bar decomposition.
func (h *Handler) GetBarSeries(w http.ResponseWriter, r *http.Request) {
	series, ok := h.buildDailySeries(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toBarSegmentDTOs(engine.DecomposeBars(series)))
}

// GetCumulativeSeries returns running totals of expected and actual.
func (h *Handler) GetCumulativeSeries(w http.ResponseWriter, r *http.Request) {
	series, ok := h.buildDailySeries(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCumulativePointDTOs(engine.CumulativeSeries(series)))
}

// GetWindow returns the default query window: the provider's earliest
// through latest entry dates, or first-of-month through today when the
// provider has no entries (or none is configured).
func (h *Handler) GetWindow(w http.ResponseWriter, r *http.Request) {
	fallback := engine.DefaultWindow(h.now())
	if h.Provider == nil {
		writeJSON(w, http.StatusOK, WindowDTO{
			Start:  fallback.Start.String(),
			End:    fallback.End.String(),
			Source: "default",
		})
		return
	}

	ctx := r.Context()
	earliest, okEarliest, err := h.Provider.EarliestEntryDate(ctx, h.UserID)
	if err != nil {
		writeProviderError(w, err)
		return
	}
	latest, okLatest, err := h.Provider.LatestEntryDate(ctx, h.UserID)
	if err != nil {
		writeProviderError(w, err)
		return
	}

	if !okEarliest || !okLatest {
		writeJSON(w, http.StatusOK, WindowDTO{
			Start:  fallback.Start.String(),
			End:    fallback.End.String(),
			Source: "default",
		})
		return
	}

	writeJSON(w, http.StatusOK, WindowDTO{
		Start:  earliest.String(),
		End:    latest.String(),
		Source: "provider",
	})
}

// =============================================================================
// SHARED PLUMBING
// =============================================================================

func (h *Handler) loadLedger(ctx context.Context) (*engine.Ledger, error) {
	records, err := h.Store.ListLeave(ctx)
	if err != nil {
		return nil, err
	}
	return engine.NewLedgerFromRecords(records), nil
}

// parseRange reads and validates the start/end query parameters.
func (h *Handler) parseRange(w http.ResponseWriter, r *http.Request) (engine.DateRange, bool) {
	start, end, ok := parseDates(w, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if !ok {
		return engine.DateRange{}, false
	}
	rng, err := engine.NewDateRange(start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Start date must be before end date", err)
		return engine.DateRange{}, false
	}
	return rng, true
}

// gatherInputs fetches logged hours and loads session state for a
// reporting request.
func (h *Handler) gatherInputs(w http.ResponseWriter, r *http.Request, rng engine.DateRange) ([]engine.LoggedHoursEntry, *engine.Schedule, *engine.Ledger, bool) {
	if h.Provider == nil {
		writeError(w, http.StatusServiceUnavailable, "No time-tracking provider configured", nil)
		return nil, nil, nil, false
	}

	ctx := r.Context()
	entries, err := h.Provider.FetchLoggedHours(ctx, h.UserID, rng.Start, rng.End)
	if err != nil {
		writeProviderError(w, err)
		return nil, nil, nil, false
	}

	schedule, err := h.Store.LoadSchedule(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule", err)
		return nil, nil, nil, false
	}
	ledger, err := h.loadLedger(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leave", err)
		return nil, nil, nil, false
	}
	return entries, schedule, ledger, true
}

func (h *Handler) buildDailySeries(w http.ResponseWriter, r *http.Request) ([]engine.DayStat, bool) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return nil, false
	}
	entries, schedule, ledger, ok := h.gatherInputs(w, r, rng)
	if !ok {
		return nil, false
	}
	series, err := engine.DailySeries(rng.Start, rng.End, schedule, ledger, entries)
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}
	return series, true
}

func parseDates(w http.ResponseWriter, startStr, endStr string) (engine.Day, engine.Day, bool) {
	start, err := engine.ParseDay(startStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return engine.Day{}, engine.Day{}, false
	}
	end, err := engine.ParseDay(endStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD)", err)
		return engine.Day{}, engine.Day{}, false
	}
	return start, end, true
}

func writeEngineError(w http.ResponseWriter, err error) {
	if engine.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Start date must be before end date", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Computation failed", err)
}

func writeProviderError(w http.ResponseWriter, err error) {
	if errors.Is(err, harvest.ErrProvider) {
		writeError(w, http.StatusBadGateway, "Time-tracking provider request failed", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Provider request failed", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Code = http.StatusText(status)
		log.Printf("%s: %v", message, err)
	}
	writeJSON(w, status, resp)
}
