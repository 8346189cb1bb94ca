/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Pre-built data sets that exercise every pay category: early and late
  unsocial bands, break tiers, Sundays, one-off and recurring holidays.

AVAILABLE SCENARIOS:
  weekday-basics:  Four weekday shifts across both unsocial bands
  easter-weekend:  Good Friday, Easter Sunday and Easter Monday 2025
  christmas-rota:  Recurring Christmas and Boxing Day with a Sunday

HOW SCENARIOS WORK:
  1. Reset the store (requires Resetter)
  2. Register the scenario's holidays
  3. Record the scenario's shifts

NOTE:
  Loading a scenario wipes every shift and holiday. Only use in
  development/demo environments.
*/
package payroll

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Scenario is a named demo data set.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Holidays    []ScenarioHoliday
	Shifts      []ScenarioShift
}

type ScenarioHoliday struct {
	Date      string
	Name      string
	Recurring bool
}

type ScenarioShift struct {
	Date, Start, End, Notes string
}

var scenarios = []Scenario{
	{
		ID:          "weekday-basics",
		Name:        "Weekday Basics",
		Description: "Standard, early and late weekday shifts with every break tier",
		Shifts: []ScenarioShift{
			{Date: "2025-04-14", Start: "09:00", End: "17:00", Notes: "day"},
			{Date: "2025-04-15", Start: "05:00", End: "09:00", Notes: "early"},
			{Date: "2025-04-16", Start: "16:00", End: "24:00", Notes: "late"},
			{Date: "2025-04-17", Start: "06:00", End: "12:30", Notes: "morning"},
		},
	},
	{
		ID:          "easter-weekend",
		Name:        "Easter Weekend",
		Description: "Bank holidays either side of a Sunday shift",
		Holidays: []ScenarioHoliday{
			{Date: "2025-04-18", Name: "Good Friday"},
			{Date: "2025-04-21", Name: "Easter Monday"},
		},
		Shifts: []ScenarioShift{
			{Date: "2025-04-18", Start: "10:00", End: "18:00"},
			{Date: "2025-04-20", Start: "06:00", End: "14:00"},
			{Date: "2025-04-21", Start: "07:00", End: "15:00"},
			{Date: "2025-04-22", Start: "09:00", End: "17:00"},
		},
	},
	{
		ID:          "christmas-rota",
		Name:        "Christmas Rota",
		Description: "Recurring Christmas holidays registered once, worked a year later",
		Holidays: []ScenarioHoliday{
			{Date: "2024-12-25", Name: "Christmas Day", Recurring: true},
			{Date: "2024-12-26", Name: "Boxing Day", Recurring: true},
		},
		Shifts: []ScenarioShift{
			{Date: "2025-12-24", Start: "14:00", End: "22:00", Notes: "christmas eve"},
			{Date: "2025-12-25", Start: "08:00", End: "16:00"},
			{Date: "2025-12-26", Start: "08:00", End: "12:00"},
			{Date: "2025-12-28", Start: "10:00", End: "14:00"},
		},
	},
}

// Scenarios lists the available demo scenarios.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// LoadScenario wipes the store and loads the named scenario.
func (s *Service) LoadScenario(ctx context.Context, id string) (Scenario, error) {
	var sc *Scenario
	for i := range scenarios {
		if scenarios[i].ID == id {
			sc = &scenarios[i]
			break
		}
	}
	if sc == nil {
		return Scenario{}, fmt.Errorf("%w: %q", ErrScenarioNotFound, id)
	}

	r, ok := s.store.(Resetter)
	if !ok {
		return Scenario{}, ErrResetUnsupported
	}
	if err := r.Reset(ctx); err != nil {
		return Scenario{}, fmt.Errorf("reset store: %w", err)
	}

	for _, h := range sc.Holidays {
		if _, err := s.AddHoliday(ctx, h.Date, h.Name, h.Recurring); err != nil {
			return Scenario{}, fmt.Errorf("scenario %s: %w", id, err)
		}
	}
	for _, sh := range sc.Shifts {
		if _, err := s.AddShift(ctx, sh.Date, sh.Start, sh.End, sh.Notes); err != nil {
			return Scenario{}, fmt.Errorf("scenario %s: %w", id, err)
		}
	}

	s.log.Info("scenario loaded",
		zap.String("scenario", id),
		zap.Int("holidays", len(sc.Holidays)),
		zap.Int("shifts", len(sc.Shifts)))
	return *sc, nil
}
