// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vehicle

import (
	"strconv"
	"strings"

	"github.com/jeranaias/carchat/internal/locale"
)

// =============================================================================
// DISPLAY FORMATTING
// =============================================================================

// NotAvailable returns the placeholder for a missing value in lang.
func NotAvailable(lang locale.Language) string {
	return locale.T(lang, "common.na")
}

// Grouped formats n with the digit grouping of lang (25.000 / 25,000).
func Grouped(lang locale.Language, n Number) string {
	if n.IsWhole() {
		return locale.Printer(lang).Sprintf("%d", n.Int())
	}
	return locale.Printer(lang).Sprintf("%.2f", n.Float())
}

// Plain formats n without grouping and without trailing zeros.
func Plain(n Number) string {
	return strconv.FormatFloat(n.Float(), 'f', -1, 64)
}

// PriceText renders the public price as €<grouped>.
func (v *Vehicle) PriceText(lang locale.Language) string {
	if !set(v.PublicPrice) {
		return NotAvailable(lang)
	}
	return "€" + Grouped(lang, *v.PublicPrice)
}

// MileageText renders the mileage as <grouped> km.
func (v *Vehicle) MileageText(lang locale.Language) string {
	if !set(v.Mileage) {
		return NotAvailable(lang)
	}
	return Grouped(lang, *v.Mileage) + " km"
}

// YearText renders the registration year.
func (v *Vehicle) YearText(lang locale.Language) string {
	y, ok := v.Year()
	if !ok {
		return NotAvailable(lang)
	}
	return strconv.Itoa(y)
}

// ScoreText renders the search score as sent by the backend.
func (v *Vehicle) ScoreText() (string, bool) {
	if !set(v.SearchScore) {
		return "", false
	}
	return Plain(*v.SearchScore), true
}

func unit(lang locale.Language, n *Number, suffix string) string {
	if !set(n) {
		return NotAvailable(lang)
	}
	return Plain(*n) + suffix
}

// PowerText renders kilowatts.
func (v *Vehicle) PowerText(lang locale.Language) string {
	return unit(lang, v.Kilowatt, " kW")
}

// EngineText renders the engine capacity in cc.
func (v *Vehicle) EngineText(lang locale.Language) string {
	return unit(lang, v.Capacity, " cc")
}

// WeightText renders the kerb weight in kg.
func (v *Vehicle) WeightText(lang locale.Language) string {
	return unit(lang, v.KerbWeight, " kg")
}

// UrbanText renders urban consumption.
func (v *Vehicle) UrbanText(lang locale.Language) string {
	return unit(lang, v.ConsumptionUrban, " L/100km")
}

// ExtraUrbanText renders extra-urban consumption.
func (v *Vehicle) ExtraUrbanText(lang locale.Language) string {
	return unit(lang, v.ConsumptionExtraUrban, " L/100km")
}

// CombinedText renders combined consumption.
func (v *Vehicle) CombinedText(lang locale.Language) string {
	return unit(lang, v.ConsumptionCombined, " L/100km")
}

// EmissionsText renders CO2 emissions in g/km.
func (v *Vehicle) EmissionsText(lang locale.Language) string {
	return unit(lang, v.CO2, " g/km")
}

// DoorsText renders the door count.
func (v *Vehicle) DoorsText(lang locale.Language) string {
	if !set(v.Doors) {
		return NotAvailable(lang)
	}
	return strconv.Itoa(v.Doors.Int())
}

// SeatsText renders the seat count.
func (v *Vehicle) SeatsText(lang locale.Language) string {
	if !set(v.Seats) {
		return NotAvailable(lang)
	}
	return strconv.Itoa(v.Seats.Int())
}

// Text returns s, or the localized N/A when s is blank.
func Text(lang locale.Language, s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable(lang)
	}
	return s
}

// Badges returns the short tags shown under a result card: body, gearbox,
// door count and combined consumption, each only when present.
func (v *Vehicle) Badges(lang locale.Language) []string {
	var badges []string
	if v.Body != "" {
		badges = append(badges, v.Body)
	}
	if v.GearType != "" {
		badges = append(badges, v.GearType)
	}
	if set(v.Doors) {
		badges = append(badges, locale.T(lang, "results.doors", v.Doors.Int()))
	}
	if set(v.ConsumptionCombined) {
		badges = append(badges, Plain(*v.ConsumptionCombined)+"L/100km")
	}
	return badges
}
