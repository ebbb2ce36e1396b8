// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vehicle

import (
	"encoding/json"
	"strings"
	"time"
)

// Vehicle is a single listing as returned by the search function. Only ID is
// guaranteed; every other field may be absent.
type Vehicle struct {
	ID int64 `json:"id"`

	Brand   string `json:"brand,omitempty"`
	Model   string `json:"model,omitempty"`
	Version string `json:"version,omitempty"`

	FuelType            string  `json:"fuel_type,omitempty"`
	PublicPrice         *Number `json:"public_price,omitempty"`
	Mileage             *Number `json:"mileage,omitempty"`
	InitialRegistration string  `json:"initial_registration,omitempty"`
	SearchScore         *Number `json:"searchScore,omitempty"`
	Location            string  `json:"ubicazione_descrizione,omitempty"`

	Body     string  `json:"body,omitempty"`
	GearType string  `json:"gear_type,omitempty"`
	Doors    *Number `json:"doors,omitempty"`
	Seats    *Number `json:"seats,omitempty"`

	Kilowatt   *Number `json:"kilowatt,omitempty"`
	Capacity   *Number `json:"capacity,omitempty"`
	KerbWeight *Number `json:"kerb_weight,omitempty"`

	ConsumptionUrban      *Number `json:"consumption_urban,omitempty"`
	ConsumptionExtraUrban *Number `json:"consumption_extra_urban,omitempty"`
	ConsumptionCombined   *Number `json:"consumption_combined,omitempty"`
	CO2                   *Number `json:"co2_liquid,omitempty"`

	Equipments []string `json:"equipments,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// Title joins brand, model and version, skipping blanks.
func (v *Vehicle) Title() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{v.Brand, v.Model, v.Version} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// registrationLayouts are tried in order by Year.
var registrationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"01/2006",
	"2006",
}

// Year returns the calendar year of the first registration.
func (v *Vehicle) Year() (int, bool) {
	s := strings.TrimSpace(v.InitialRegistration)
	if s == "" {
		return 0, false
	}
	for _, layout := range registrationLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// HasConsumption reports whether any consumption or emission figure is set.
func (v *Vehicle) HasConsumption() bool {
	return set(v.ConsumptionUrban) || set(v.ConsumptionExtraUrban) ||
		set(v.ConsumptionCombined) || set(v.CO2)
}

// HasEquipment reports whether the equipment list is non-empty.
func (v *Vehicle) HasEquipment() bool {
	return len(v.Equipments) > 0
}

// IDs returns the ids of vehicles in order.
func IDs(vehicles []Vehicle) []int64 {
	if len(vehicles) == 0 {
		return nil
	}
	ids := make([]int64, len(vehicles))
	for i := range vehicles {
		ids[i] = vehicles[i].ID
	}
	return ids
}

// Action tells the client how to render a SearchResult.
type Action string

const (
	ActionSearch  Action = "search"
	ActionDetails Action = "details"
)

// SearchResult is the response envelope of the search function.
type SearchResult struct {
	Action     Action          `json:"action"`
	Vehicles   []Vehicle       `json:"vehicles,omitempty"`
	Vehicle    *Vehicle        `json:"vehicle,omitempty"`
	AIResponse string          `json:"ai_response,omitempty"`
	Params     json.RawMessage `json:"search_params,omitempty"`
	VehicleIDs []int64         `json:"vehicle_ids,omitempty"`
	Success    bool            `json:"success"`
	Error      string          `json:"error,omitempty"`
}

// IsDetails reports whether the result should open a detail card.
func (r *SearchResult) IsDetails() bool {
	return r.Action == ActionDetails && r.Vehicle != nil
}

// Context is sent along with a follow-up message so the backend can resolve
// references such as "the second one".
type Context struct {
	LastSearchResults []int64 `json:"last_search_results"`
}

// NewContext returns a Context for the results of the last search. A nil
// slice means no search yet and yields nil so the field is omitted; an
// empty slice yields an empty last_search_results list.
func NewContext(vehicles []Vehicle) *Context {
	if vehicles == nil {
		return nil
	}
	ids := IDs(vehicles)
	if ids == nil {
		ids = []int64{}
	}
	return &Context{LastSearchResults: ids}
}
