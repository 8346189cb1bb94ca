/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Decimal amounts are
  rendered as plain JSON numbers; the browser front-end formats them.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Breakdown:
    BreakdownRequest, BreakdownDTO, BatchItemDTO

  Shifts:
    CreateShiftRequest, ShiftDTO, ShiftBreakdownDTO

  Summary:
    SummaryDTO, CategoryTotalDTO

  Policy / Holidays:
    PolicyDTO, HolidayDTO, CreateHolidayRequest

VALIDATION:
  Validation is done in the payroll service, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/shift-pay/calendar"
	"github.com/warp/shift-pay/pay"
	"github.com/warp/shift-pay/payroll"
)

// =============================================================================
// BREAKDOWN
// =============================================================================

// BreakdownRequest is one shift to price. When a flag is omitted it is
// derived from the date and the registered holidays.
type BreakdownRequest struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Date      string `json:"date"`
	IsHoliday *bool  `json:"isHoliday,omitempty"`
	IsSunday  *bool  `json:"isSunday,omitempty"`
}

// BreakdownDTO is the itemized pay for one shift.
type BreakdownDTO struct {
	BaseHours     float64 `json:"baseHours"`
	BaseRate      float64 `json:"baseRate"`
	BasePay       float64 `json:"basePay"`
	UnsocialHours float64 `json:"unsocialHours"`
	UnsocialRate  float64 `json:"unsocialRate"`
	UnsocialPay   float64 `json:"unsocialPay"`
	SundayHours   float64 `json:"sundayHours"`
	SundayRate    float64 `json:"sundayRate"`
	SundayPay     float64 `json:"sundayPay"`
	HolidayHours  float64 `json:"holidayHours"`
	HolidayRate   float64 `json:"holidayRate"`
	HolidayPay    float64 `json:"holidayPay"`
	BreakHours    float64 `json:"breakHours"`
	Total         float64 `json:"total"`
	TotalHours    float64 `json:"totalHours"`
}

// BatchItemDTO is one slot of a batch response: a breakdown or an error.
type BatchItemDTO struct {
	Breakdown *BreakdownDTO `json:"breakdown,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// =============================================================================
// SHIFTS
// =============================================================================

type CreateShiftRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
	Notes string `json:"notes,omitempty"`
}

type ShiftDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type ShiftBreakdownDTO struct {
	Shift     ShiftDTO     `json:"shift"`
	IsHoliday bool         `json:"isHoliday"`
	IsSunday  bool         `json:"isSunday"`
	Breakdown BreakdownDTO `json:"breakdown"`
}

// =============================================================================
// SUMMARY
// =============================================================================

type CategoryTotalDTO struct {
	Hours float64 `json:"hours"`
	Pay   float64 `json:"pay"`
}

type SummaryDTO struct {
	Year       int                         `json:"year"`
	Month      int                         `json:"month"`
	Shifts     int                         `json:"shifts"`
	Skipped    int                         `json:"skipped"`
	TotalHours float64                     `json:"totalHours"`
	BreakHours float64                     `json:"breakHours"`
	Total      float64                     `json:"total"`
	Categories map[string]CategoryTotalDTO `json:"categories"`
}

// =============================================================================
// POLICY AND HOLIDAYS
// =============================================================================

type PolicyDTO struct {
	Rates       map[string]float64 `json:"rates"`
	SundayLabel string             `json:"sundayLabel"`
	Bands       []BandDTO          `json:"bands"`
	Breaks      []BreakTierDTO     `json:"breaks"`
}

type BandDTO struct {
	Label string `json:"label"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type BreakTierDTO struct {
	MinHours     float64 `json:"minHours"`
	BreakMinutes float64 `json:"breakMinutes"`
}

type HolidayDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

type CreateHolidayRequest struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toBreakdownDTO(b pay.PayBreakdown) BreakdownDTO {
	return BreakdownDTO{
		BaseHours:     b.Base.Hours.InexactFloat64(),
		BaseRate:      b.Base.Rate.InexactFloat64(),
		BasePay:       b.Base.Pay.InexactFloat64(),
		UnsocialHours: b.Unsocial.Hours.InexactFloat64(),
		UnsocialRate:  b.Unsocial.Rate.InexactFloat64(),
		UnsocialPay:   b.Unsocial.Pay.InexactFloat64(),
		SundayHours:   b.Sunday.Hours.InexactFloat64(),
		SundayRate:    b.Sunday.Rate.InexactFloat64(),
		SundayPay:     b.Sunday.Pay.InexactFloat64(),
		HolidayHours:  b.Holiday.Hours.InexactFloat64(),
		HolidayRate:   b.Holiday.Rate.InexactFloat64(),
		HolidayPay:    b.Holiday.Pay.InexactFloat64(),
		BreakHours:    b.BreakHours.InexactFloat64(),
		Total:         b.Total.InexactFloat64(),
		TotalHours:    b.TotalHours.InexactFloat64(),
	}
}

func toShiftDTO(s payroll.Shift) ShiftDTO {
	dto := ShiftDTO{
		ID:    s.ID,
		Date:  s.Date.String(),
		Start: s.Start,
		End:   s.End,
		Notes: s.Notes,
	}
	if !s.CreatedAt.IsZero() {
		dto.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toShiftDTOs(shifts []payroll.Shift) []ShiftDTO {
	dtos := make([]ShiftDTO, 0, len(shifts))
	for _, s := range shifts {
		dtos = append(dtos, toShiftDTO(s))
	}
	return dtos
}

func toSummaryDTO(s payroll.Summary) SummaryDTO {
	cats := make(map[string]CategoryTotalDTO, len(pay.Categories))
	for _, c := range pay.Categories {
		t := s.For(c)
		cats[string(c)] = CategoryTotalDTO{Hours: t.Hours.InexactFloat64(), Pay: t.Pay.InexactFloat64()}
	}
	return SummaryDTO{
		Year:       s.Year,
		Month:      int(s.Month),
		Shifts:     s.Shifts,
		Skipped:    s.Skipped,
		TotalHours: s.TotalHours.InexactFloat64(),
		BreakHours: s.BreakHours.InexactFloat64(),
		Total:      s.Total.InexactFloat64(),
		Categories: cats,
	}
}

func toPolicyDTO(p pay.Policy) PolicyDTO {
	rates := make(map[string]float64, len(pay.Categories))
	for _, c := range pay.Categories {
		rates[string(c)] = p.Rates.For(c).InexactFloat64()
	}

	dto := PolicyDTO{
		Rates:       rates,
		SundayLabel: p.SundayLabel,
		Bands:       make([]BandDTO, 0, len(p.Bands)),
		Breaks:      make([]BreakTierDTO, 0, len(p.Breaks)),
	}
	for _, b := range p.Bands {
		dto.Bands = append(dto.Bands, BandDTO{Label: b.Label, From: b.From.String(), To: b.To.String()})
	}
	for _, b := range p.Breaks {
		dto.Breaks = append(dto.Breaks, BreakTierDTO{MinHours: b.Min.Hours(), BreakMinutes: b.Break.Minutes()})
	}
	return dto
}

func toHolidayDTO(h calendar.Holiday) HolidayDTO {
	return HolidayDTO{ID: h.ID, Date: h.Date.String(), Name: h.Name, Recurring: h.Recurring}
}
