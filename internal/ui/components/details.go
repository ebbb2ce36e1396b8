// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/ui/styles"
	"github.com/jeranaias/carchat/internal/util"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// =============================================================================
// DETAILS OVERLAY COMPONENT
// =============================================================================

// DetailsView renders the detail card of one vehicle. Body returns the
// scrollable part; the chat model places it in a viewport.
type DetailsView struct {
	Vehicle  *vehicle.Vehicle
	Language locale.Language
	Width    int
	theme    *styles.Theme
}

// NewDetailsView creates a details card for v.
func NewDetailsView(v *vehicle.Vehicle, theme *styles.Theme) *DetailsView {
	return &DetailsView{
		Vehicle:  v,
		Language: locale.Default,
		Width:    80,
		theme:    theme,
	}
}

type field struct {
	label string
	value string
}

// Header renders the localized card title and the vehicle name.
func (d *DetailsView) Header() string {
	title := d.theme.DetailsTitle.Render(locale.T(d.Language, "details.title"))
	name := d.theme.DetailsSubline.Render(util.Truncate(vehicle.Text(d.Language, d.Vehicle.Title()), d.innerWidth()))
	return lipgloss.JoinVertical(lipgloss.Left, title, name)
}

// Body renders price, location and every section that has data.
func (d *DetailsView) Body() string {
	v := d.Vehicle
	lang := d.Language
	t := func(key string) string { return locale.T(lang, key) }

	var sections []string

	price := d.theme.FieldLabel.Render(t("details.price")) + "\n" +
		d.theme.DetailsPrice.Render(v.PriceText(lang))
	if v.Location != "" {
		price += "\n" + d.theme.DetailsSubline.Render("📍 "+v.Location)
	}
	sections = append(sections, price)

	sections = append(sections, d.section(t("details.general"), []field{
		{t("details.year"), v.YearText(lang)},
		{t("details.mileage"), v.MileageText(lang)},
		{t("details.fuel"), vehicle.Text(lang, v.FuelType)},
	}))

	technical := []field{
		{t("details.body"), vehicle.Text(lang, v.Body)},
		{t("details.transmission"), vehicle.Text(lang, v.GearType)},
		{t("details.doors"), v.DoorsText(lang)},
		{t("details.seats"), v.SeatsText(lang)},
	}
	if v.Kilowatt != nil && v.Kilowatt.Float() != 0 {
		technical = append(technical, field{t("details.power"), v.PowerText(lang)})
	}
	if v.Capacity != nil && v.Capacity.Float() != 0 {
		technical = append(technical, field{t("details.engine"), v.EngineText(lang)})
	}
	if v.KerbWeight != nil && v.KerbWeight.Float() != 0 {
		technical = append(technical, field{t("details.weight"), v.WeightText(lang)})
	}
	sections = append(sections, d.section(t("details.technical"), technical))

	if v.HasConsumption() {
		var consumption []field
		na := vehicle.NotAvailable(lang)
		for _, f := range []field{
			{t("details.urban"), v.UrbanText(lang)},
			{t("details.extra_urban"), v.ExtraUrbanText(lang)},
			{t("details.combined"), v.CombinedText(lang)},
			{t("details.emissions"), v.EmissionsText(lang)},
		} {
			if f.value != na {
				consumption = append(consumption, f)
			}
		}
		sections = append(sections, d.section(t("details.consumption"), consumption))
	}

	if v.HasEquipment() {
		var sb strings.Builder
		sb.WriteString(d.theme.SectionTitle.Render(t("details.equipment")))
		for _, item := range v.Equipments {
			sb.WriteString("\n")
			sb.WriteString(d.theme.EquipmentItem.Render(wordWrap("• "+item, d.innerWidth())))
		}
		sections = append(sections, sb.String())
	}

	if strings.TrimSpace(v.Notes) != "" {
		sections = append(sections, d.theme.SectionTitle.Render(t("details.notes"))+"\n"+
			wordWrap(v.Notes, d.innerWidth()))
	}

	return strings.Join(sections, "\n")
}

// View renders the full card in its frame.
func (d *DetailsView) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left, d.Header(), "", d.Body())
	return d.theme.DetailsBox.Width(d.innerWidth() + 4).Render(content)
}

func (d *DetailsView) section(title string, fields []field) string {
	labelWidth := 0
	for _, f := range fields {
		labelWidth = maxInt(labelWidth, lipgloss.Width(f.label))
	}

	lines := []string{d.theme.SectionTitle.Render(title)}
	for _, f := range fields {
		label := d.theme.FieldLabel.Render(util.PadRight(f.label, labelWidth))
		lines = append(lines, label+"  "+d.theme.FieldValue.Render(f.value))
	}
	return strings.Join(lines, "\n")
}

// innerWidth is the content width inside the box border and padding.
func (d *DetailsView) innerWidth() int {
	return maxInt(minInt(d.Width, 100)-6, 20)
}
