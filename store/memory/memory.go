// Package memory provides an in-memory payroll.Store for tests and
// one-off CLI runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/shift-pay/calendar"
	"github.com/warp/shift-pay/payroll"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Store struct {
	mu       sync.RWMutex
	shifts   map[string]payroll.Shift
	holidays map[string]calendar.Holiday
}

var (
	_ payroll.Store    = (*Store)(nil)
	_ payroll.Resetter = (*Store)(nil)
)

func New() *Store {
	return &Store{
		shifts:   make(map[string]payroll.Shift),
		holidays: make(map[string]calendar.Holiday),
	}
}

// =============================================================================
// SHIFTS
// =============================================================================

// SaveShift inserts or replaces a shift by ID.
func (m *Store) SaveShift(_ context.Context, s payroll.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[s.ID] = s
	return nil
}

func (m *Store) GetShift(_ context.Context, id string) (*payroll.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.shifts[id]
	if !ok {
		return nil, payroll.ErrShiftNotFound
	}
	return &s, nil
}

func (m *Store) DeleteShift(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.shifts[id]; !ok {
		return payroll.ErrShiftNotFound
	}
	delete(m.shifts, id)
	return nil
}

// ListShifts returns shifts in [from, to], newest first. Zero bounds are open.
func (m *Store) ListShifts(_ context.Context, from, to calendar.Date) ([]payroll.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []payroll.Shift
	for _, s := range m.shifts {
		if !from.IsZero() && s.Date.Before(from) {
			continue
		}
		if !to.IsZero() && s.Date.After(to) {
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Start != b.Start {
			return a.Start > b.Start
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out, nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// SaveHoliday inserts or replaces a holiday by ID. A different holiday with
// the same date and name is rejected.
func (m *Store) SaveHoliday(_ context.Context, h calendar.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.holidays {
		if id != h.ID && existing.Date.Equal(h.Date) && existing.Name == h.Name {
			return payroll.ErrDuplicateHoliday
		}
	}
	m.holidays[h.ID] = h
	return nil
}

func (m *Store) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.holidays[id]; !ok {
		return payroll.ErrHolidayNotFound
	}
	delete(m.holidays, id)
	return nil
}

// ListHolidays returns every holiday ordered by date, then name.
func (m *Store) ListHolidays(_ context.Context) ([]calendar.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]calendar.Holiday, 0, len(m.holidays))
	for _, h := range m.holidays {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Reset drops every record.
func (m *Store) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts = make(map[string]payroll.Shift)
	m.holidays = make(map[string]calendar.Holiday)
	return nil
}
