/*
scenarios.go - Demo scenario endpoints

PURPOSE:
  Lets the browser front-end fill an empty database with realistic shifts
  and holidays. The data sets themselves live in payroll/scenarios.go.

USAGE VIA API:
  GET  /api/scenarios
  POST /api/scenarios/load
  {"scenarioId": "easter-weekend"}

NOTE:
  Loading a scenario resets the database. Only use in development/demo
  environments.
*/
package api

import (
	"net/http"

	"github.com/warp/shift-pay/payroll"
)

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Shifts      int    `json:"shifts"`
	Holidays    int    `json:"holidays"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenarioId"`
}

func toScenarioDTO(sc payroll.Scenario) ScenarioDTO {
	return ScenarioDTO{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		Shifts:      len(sc.Shifts),
		Holidays:    len(sc.Holidays),
	}
}

// ListScenarios returns available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	list := payroll.Scenarios()
	dtos := make([]ScenarioDTO, 0, len(list))
	for _, sc := range list {
		dtos = append(dtos, toScenarioDTO(sc))
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": dtos})
}

// LoadScenario resets the database and loads a scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}

	sc, err := h.Service.LoadScenario(r.Context(), req.ScenarioID)
	if err != nil {
		h.writeServiceError(w, r, "Failed to load scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, toScenarioDTO(sc))
}
