/*
handlers.go - HTTP API handlers for the shift pay calculator

PURPOSE:
  Exposes the payroll service via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the payroll service.

ENDPOINTS:
  Calculation:
    POST   /api/breakdown               Price one shift
    POST   /api/breakdowns              Price many shifts (worker pool)
    GET    /api/policy                  Active rates, bands, break tiers

  Shifts:
    GET    /api/shifts?from=&to=        List stored shifts, newest first
    POST   /api/shifts                  Record a shift
    GET    /api/shifts/{id}             Get one shift
    DELETE /api/shifts/{id}             Delete a shift
    GET    /api/shifts/{id}/breakdown   Price a stored shift

  Analytics:
    GET    /api/summary?year=&month=    Monthly totals

  Holidays:
    GET    /api/holidays                List registered holidays
    POST   /api/holidays                Register a holiday
    DELETE /api/holidays/{id}           Remove a holiday

  Demo:
    GET    /api/scenarios               List demo scenarios
    POST   /api/scenarios/load          Reset and load a scenario (scenarios.go)

REQUEST FLOW:
  1. Parse HTTP request
  2. Call the payroll service
  3. Serialize response
  4. Map errors to status codes

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed time or date, invalid input, duplicate holiday
  - 404: Shift, holiday or scenario not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/warp/shift-pay/pay"
	"github.com/warp/shift-pay/payroll"
)

const (
	// maxBatchSize caps POST /api/breakdowns.
	maxBatchSize = 1000

	maxBodyBytes = 1 << 20
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *payroll.Service
	Log     *zap.Logger
}

// NewHandler creates a new handler. A nil logger discards output.
func NewHandler(svc *payroll.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Service: svc, Log: log}
}

// =============================================================================
// CALCULATION ENDPOINTS
// =============================================================================

// CalculateBreakdown prices one shift.
// POST /api/breakdown
func (h *Handler) CalculateBreakdown(w http.ResponseWriter, r *http.Request) {
	var req BreakdownRequest
	if !h.decode(w, r, &req) {
		return
	}

	in, err := h.toPayShift(r, req)
	if err != nil {
		h.writeServiceError(w, r, "Invalid shift", err)
		return
	}

	b, err := h.Service.Calculate(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, "Failed to calculate breakdown", err)
		return
	}

	writeJSON(w, http.StatusOK, toBreakdownDTO(b))
}

// CalculateBreakdowns prices a list of shifts. Each slot carries either a
// breakdown or the error for that shift.
// POST /api/breakdowns
func (h *Handler) CalculateBreakdowns(w http.ResponseWriter, r *http.Request) {
	var reqs []BreakdownRequest
	if !h.decode(w, r, &reqs) {
		return
	}
	if len(reqs) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("At most %d shifts per batch", maxBatchSize), nil)
		return
	}

	items := make([]BatchItemDTO, len(reqs))
	inputs := make([]pay.Shift, 0, len(reqs))
	slots := make([]int, 0, len(reqs))
	for i, req := range reqs {
		in, err := h.toPayShift(r, req)
		if err != nil {
			items[i].Error = err.Error()
			continue
		}
		inputs = append(inputs, in)
		slots = append(slots, i)
	}

	results, err := h.Service.Breakdowns(r.Context(), inputs)
	if err != nil {
		h.writeServiceError(w, r, "Failed to calculate breakdowns", err)
		return
	}
	for j, res := range results {
		i := slots[j]
		if res.Err != nil {
			items[i].Error = res.Err.Error()
			continue
		}
		dto := toBreakdownDTO(res.Breakdown)
		items[i].Breakdown = &dto
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

// GetPolicy returns the active pay policy.
// GET /api/policy
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toPolicyDTO(h.Service.Calculator().Policy()))
}

// toPayShift fills in any flag the client left out from the date.
func (h *Handler) toPayShift(r *http.Request, req BreakdownRequest) (pay.Shift, error) {
	in := pay.Shift{Date: req.Date, Start: req.Start, End: req.End}
	if req.IsHoliday != nil {
		in.IsHoliday = *req.IsHoliday
	}
	if req.IsSunday != nil {
		in.IsSunday = *req.IsSunday
	}
	if req.Date == "" || (req.IsHoliday != nil && req.IsSunday != nil) {
		return in, nil
	}

	holiday, sunday, err := h.Service.Flags(r.Context(), req.Date)
	if err != nil {
		return pay.Shift{}, err
	}
	if req.IsHoliday == nil {
		in.IsHoliday = holiday
	}
	if req.IsSunday == nil {
		in.IsSunday = sunday
	}
	return in, nil
}

// =============================================================================
// SHIFT ENDPOINTS
// =============================================================================

// ListShifts returns stored shifts, optionally bounded by date.
// GET /api/shifts?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shifts, err := h.Service.ListShifts(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.writeServiceError(w, r, "Failed to list shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"shifts": toShiftDTOs(shifts)})
}

// CreateShift records a shift.
// POST /api/shifts
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if !h.decode(w, r, &req) {
		return
	}

	sh, err := h.Service.AddShift(r.Context(), req.Date, req.Start, req.End, req.Notes)
	if err != nil {
		h.writeServiceError(w, r, "Failed to create shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(sh))
}

// GetShift returns one shift.
// GET /api/shifts/{id}
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	sh, err := h.Service.GetShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "Failed to get shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(*sh))
}

// DeleteShift removes a shift.
// DELETE /api/shifts/{id}
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "Failed to delete shift", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// GetShiftBreakdown prices a stored shift with flags from its date.
// GET /api/shifts/{id}/breakdown
func (h *Handler) GetShiftBreakdown(w http.ResponseWriter, r *http.Request) {
	sb, err := h.Service.ShiftBreakdown(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "Failed to price shift", err)
		return
	}
	writeJSON(w, http.StatusOK, ShiftBreakdownDTO{
		Shift:     toShiftDTO(sb.Shift),
		IsHoliday: sb.IsHoliday,
		IsSunday:  sb.IsSunday,
		Breakdown: toBreakdownDTO(sb.Breakdown),
	})
}

// =============================================================================
// ANALYTICS
// =============================================================================

// GetSummary returns the monthly totals. Year and month default to the
// current month.
// GET /api/summary?year=2025&month=4
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = n
	}
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month", err)
			return
		}
		month = n
	}

	sum, err := h.Service.MonthlySummary(r.Context(), year, time.Month(month))
	if err != nil {
		h.writeServiceError(w, r, "Failed to build summary", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(sum))
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns all holidays.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Service.ListHolidays(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "Failed to get holidays", err)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}
	writeJSON(w, http.StatusOK, map[string]any{"holidays": dtos})
}

// CreateHoliday registers a holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if !h.decode(w, r, &req) {
		return
	}

	hol, err := h.Service.AddHoliday(r.Context(), req.Date, req.Name, req.Recurring)
	if err != nil {
		h.writeServiceError(w, r, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(hol))
}

// DeleteHoliday deletes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "Failed to delete holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// writeServiceError maps payroll errors to a status code.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case payroll.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case payroll.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Log.Error(message,
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
