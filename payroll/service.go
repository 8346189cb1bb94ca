/*
Package payroll connects stored shifts and holidays to the pay engine.

PURPOSE:
  The pay package computes one breakdown from explicit flags. This
  package owns everything around it: validating new entries, persisting
  shifts and holidays, deriving the holiday and Sunday flags from a date,
  batching many calculations onto a worker pool, and monthly totals.

HOLIDAY FLOW:
  Every operation that needs flags loads the holiday list once, builds an
  immutable calendar.HolidaySet and passes it down. There is no global
  holiday state; a holiday added mid-request is seen by the next request.

CONCURRENCY:
  Service is safe for concurrent use. The Calculator is immutable and the
  store guards itself.

SEE ALSO:
  - pay/calculator.go: the pure calculation
  - store/sqlite: production Store
  - store/memory: Store for tests and one-off CLI runs
*/
package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/warp/shift-pay/calendar"
	"github.com/warp/shift-pay/pay"
	"github.com/warp/shift-pay/workerpool"
)

// Service is the payroll use-case layer.
type Service struct {
	store Store
	calc  *pay.Calculator
	pool  *workerpool.WorkerPool
	log   *zap.Logger
}

// NewService wires a service. A nil pool runs batches inline; a nil logger
// discards output.
func NewService(store Store, calc *pay.Calculator, pool *workerpool.WorkerPool, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, calc: calc, pool: pool, log: log}
}

// Calculator exposes the active calculator (for policy display).
func (s *Service) Calculator() *pay.Calculator { return s.calc }

// =============================================================================
// SINGLE CALCULATION
// =============================================================================

// Calculate prices one shift exactly as given; the flags are trusted.
func (s *Service) Calculate(ctx context.Context, in pay.Shift) (pay.PayBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return pay.PayBreakdown{}, err
	}
	return s.calc.Calculate(in)
}

// Flags derives the holiday and Sunday flags for a date from the stored
// holidays.
func (s *Service) Flags(ctx context.Context, date string) (holiday, sunday bool, err error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return false, false, err
	}
	set, err := s.Holidays(ctx)
	if err != nil {
		return false, false, err
	}
	holiday, sunday = set.Flags(d)
	return holiday, sunday, nil
}

// ShiftBreakdown is a stored shift together with its computed pay.
type ShiftBreakdown struct {
	Shift     Shift
	IsHoliday bool
	IsSunday  bool
	Breakdown pay.PayBreakdown
}

// ShiftBreakdown loads a stored shift and prices it.
func (s *Service) ShiftBreakdown(ctx context.Context, id string) (ShiftBreakdown, error) {
	sh, err := s.store.GetShift(ctx, id)
	if err != nil {
		return ShiftBreakdown{}, err
	}
	set, err := s.Holidays(ctx)
	if err != nil {
		return ShiftBreakdown{}, err
	}

	in := sh.PayShift(set)
	b, err := s.calc.Calculate(in)
	if err != nil {
		return ShiftBreakdown{}, fmt.Errorf("shift %s: %w", id, err)
	}
	return ShiftBreakdown{Shift: *sh, IsHoliday: in.IsHoliday, IsSunday: in.IsSunday, Breakdown: b}, nil
}

// =============================================================================
// BATCH CALCULATION
// =============================================================================

// BatchResult is the outcome for one input of a batch.
type BatchResult struct {
	Breakdown pay.PayBreakdown
	Err       error
}

// Breakdowns prices many shifts on the worker pool. Results come back in
// input order; a malformed shift fails only its own slot. The returned
// error is non-nil only if the batch as a whole could not finish.
func (s *Service) Breakdowns(ctx context.Context, shifts []pay.Shift) ([]BatchResult, error) {
	results := make([]BatchResult, len(shifts))
	if len(shifts) == 0 {
		return results, nil
	}

	if s.pool == nil {
		for i, in := range shifts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			b, err := s.calc.Calculate(in)
			results[i] = BatchResult{Breakdown: b, Err: err}
		}
		return results, nil
	}

	// Each task writes only its own slot; completion is signalled on done.
	done := make(chan workerpool.Result, len(shifts))
	for i, in := range shifts {
		i, in := i, in
		task := workerpool.Task{
			Fn: func() (any, error) {
				b, err := s.calc.Calculate(in)
				results[i] = BatchResult{Breakdown: b, Err: err}
				return i, nil
			},
			ResultC: done,
		}
		if err := s.pool.Submit(ctx, task); err != nil {
			return nil, fmt.Errorf("submit shift %d: %w", i, err)
		}
	}

	for n := 0; n < len(shifts); n++ {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.pool.Done():
			return nil, workerpool.ErrClosed
		}
	}
	return results, nil
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// MonthlySummary totals the pay for every stored shift in a month. Shifts
// whose stored times no longer parse are skipped and counted.
func (s *Service) MonthlySummary(ctx context.Context, year int, month time.Month) (Summary, error) {
	if month < time.January || month > time.December {
		return Summary{}, &ValidationError{Field: "month", Message: "must be 1-12"}
	}
	if year < 1 || year > 9999 {
		return Summary{}, &ValidationError{Field: "year", Message: "must be 1-9999"}
	}

	from, to := calendar.MonthRange(year, month)
	shifts, err := s.store.ListShifts(ctx, from, to)
	if err != nil {
		return Summary{}, fmt.Errorf("list shifts: %w", err)
	}
	set, err := s.Holidays(ctx)
	if err != nil {
		return Summary{}, err
	}

	inputs := make([]pay.Shift, len(shifts))
	for i, sh := range shifts {
		inputs[i] = sh.PayShift(set)
	}
	results, err := s.Breakdowns(ctx, inputs)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Year: year, Month: month}
	for i, r := range results {
		if r.Err != nil {
			sum.Skipped++
			s.log.Warn("skipping shift with malformed times",
				zap.String("shift_id", shifts[i].ID),
				zap.String("date", shifts[i].Date.String()),
				zap.Error(r.Err))
			continue
		}
		s.log.Debug("shift priced",
			zap.String("shift_id", shifts[i].ID),
			zap.String("total", r.Breakdown.Total.String()))
		sum.Shifts++
		sum.Add(r.Breakdown)
	}
	return sum, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

// AddShift validates and stores a new shift.
func (s *Service) AddShift(ctx context.Context, date, start, end, notes string) (Shift, error) {
	sh, err := NewShift(date, start, end, notes)
	if err != nil {
		return Shift{}, err
	}
	if err := s.store.SaveShift(ctx, sh); err != nil {
		return Shift{}, fmt.Errorf("save shift: %w", err)
	}
	s.log.Info("shift added", zap.String("shift_id", sh.ID), zap.String("date", sh.Date.String()))
	return sh, nil
}

func (s *Service) GetShift(ctx context.Context, id string) (*Shift, error) {
	return s.store.GetShift(ctx, id)
}

func (s *Service) DeleteShift(ctx context.Context, id string) error {
	if err := s.store.DeleteShift(ctx, id); err != nil {
		return err
	}
	s.log.Info("shift deleted", zap.String("shift_id", id))
	return nil
}

// ListShifts lists shifts between two optional "YYYY-MM-DD" bounds.
func (s *Service) ListShifts(ctx context.Context, from, to string) ([]Shift, error) {
	var lo, hi calendar.Date
	var err error
	if from != "" {
		if lo, err = calendar.ParseDate(from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if hi, err = calendar.ParseDate(to); err != nil {
			return nil, err
		}
	}
	if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
		return nil, &ValidationError{Field: "to", Message: "must not be before from"}
	}
	return s.store.ListShifts(ctx, lo, hi)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// Holidays loads the registered holidays as an immutable set.
func (s *Service) Holidays(ctx context.Context) (calendar.HolidaySet, error) {
	list, err := s.store.ListHolidays(ctx)
	if err != nil {
		return calendar.HolidaySet{}, fmt.Errorf("list holidays: %w", err)
	}
	return calendar.NewHolidaySet(list), nil
}

func (s *Service) ListHolidays(ctx context.Context) ([]calendar.Holiday, error) {
	return s.store.ListHolidays(ctx)
}

// AddHoliday registers a holiday.
func (s *Service) AddHoliday(ctx context.Context, date, name string, recurring bool) (calendar.Holiday, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return calendar.Holiday{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return calendar.Holiday{}, &ValidationError{Field: "name", Message: "is required"}
	}

	h := calendar.Holiday{ID: uuid.NewString(), Date: d, Name: name, Recurring: recurring}
	if err := s.store.SaveHoliday(ctx, h); err != nil {
		return calendar.Holiday{}, fmt.Errorf("save holiday: %w", err)
	}
	s.log.Info("holiday added", zap.String("holiday_id", h.ID), zap.String("date", d.String()), zap.String("name", name))
	return h, nil
}

func (s *Service) DeleteHoliday(ctx context.Context, id string) error {
	if err := s.store.DeleteHoliday(ctx, id); err != nil {
		return err
	}
	s.log.Info("holiday deleted", zap.String("holiday_id", id))
	return nil
}
