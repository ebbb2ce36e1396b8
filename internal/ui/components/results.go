// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/ui/styles"
	"github.com/jeranaias/carchat/internal/util"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// =============================================================================
// RESULT LIST COMPONENT
// =============================================================================

// ResultList renders the vehicles of one search as numbered cards.
// Selected is the highlighted card, or -1.
type ResultList struct {
	Vehicles   []vehicle.Vehicle
	Language   locale.Language
	Width      int
	Selected   int
	ShowScores bool
	theme      *styles.Theme
}

// NewResultList creates a list with no selection.
func NewResultList(vehicles []vehicle.Vehicle, theme *styles.Theme) *ResultList {
	return &ResultList{
		Vehicles:   vehicles,
		Language:   locale.Default,
		Width:      80,
		Selected:   -1,
		ShowScores: true,
		theme:      theme,
	}
}

// View renders the "Found N vehicles" line followed by the cards.
func (r *ResultList) View() string {
	if len(r.Vehicles) == 0 {
		return ""
	}
	lines := []string{r.theme.ResultsTitle.Render(locale.T(r.Language, "results.found", len(r.Vehicles)))}
	for i := range r.Vehicles {
		lines = append(lines, r.Card(i))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Card renders the card at index i.
func (r *ResultList) Card(i int) string {
	v := &r.Vehicles[i]
	lang := r.Language

	// Border and padding take four cells.
	inner := maxInt(minInt(r.Width, 100)-4, 20)

	top := r.theme.CardIndex.Render(fmt.Sprintf("#%d", i+1))
	if score, ok := v.ScoreText(); ok && r.ShowScores {
		top += " " + r.theme.ScoreBadge.Render(locale.T(lang, "results.score", score))
	}
	price := r.theme.Price.Render(v.PriceText(lang))
	top = spread(top, price, inner)

	title := r.theme.CardTitle.Render(util.Truncate(vehicle.Text(lang, v.Title()), inner))

	meta := strings.Join([]string{
		v.YearText(lang),
		vehicle.Text(lang, v.FuelType),
		v.MileageText(lang),
	}, " • ")
	metaLine := r.theme.Meta.Render(util.Truncate(meta, inner))

	lines := []string{top, title, metaLine}

	if badges := v.Badges(lang); len(badges) > 0 {
		lines = append(lines, r.renderBadges(badges, inner))
	}
	if v.Location != "" {
		lines = append(lines, r.theme.Location.Render(util.Truncate("📍 "+v.Location, inner)))
	}
	if i == r.Selected {
		lines = append(lines, r.theme.ShortcutKey.Render("↵ "+locale.T(lang, "results.view_details")))
	}

	style := r.theme.Card
	if i == r.Selected {
		style = r.theme.CardSelected
	}
	return style.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// renderBadges lays badges out on as many lines as width needs.
func (r *ResultList) renderBadges(badges []string, width int) string {
	var (
		rows    []string
		current string
	)
	for _, b := range badges {
		badge := r.theme.Badge.Render(util.Truncate(b, maxInt(width-2, 1)))
		switch {
		case current == "":
			current = badge
		case lipgloss.Width(current)+1+lipgloss.Width(badge) <= width:
			current += " " + badge
		default:
			rows = append(rows, current)
			current = badge
		}
	}
	if current != "" {
		rows = append(rows, current)
	}
	return strings.Join(rows, "\n")
}

// spread places left and right on one line of width cells.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// =============================================================================
// SELECTION
// =============================================================================

// Next moves the selection down, stopping at the last card.
func (r *ResultList) Next() {
	if len(r.Vehicles) == 0 {
		return
	}
	if r.Selected < len(r.Vehicles)-1 {
		r.Selected++
	}
}

// Prev moves the selection up, stopping at the first card.
func (r *ResultList) Prev() {
	if r.Selected > 0 {
		r.Selected--
	} else if len(r.Vehicles) > 0 {
		r.Selected = 0
	}
}

// Current returns the selected vehicle, or nil.
func (r *ResultList) Current() *vehicle.Vehicle {
	if r.Selected < 0 || r.Selected >= len(r.Vehicles) {
		return nil
	}
	return &r.Vehicles[r.Selected]
}
