// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/ui/styles"
	"github.com/jeranaias/carchat/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: localized title and subtitle on the left,
// the active language on the right.
type Header struct {
	Language locale.Language
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Language: locale.Default,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetLanguage updates the language of the labels and badge.
func (h *Header) SetLanguage(lang locale.Language) {
	h.Language = lang
}

// Badge renders the language flag and native name.
func (h *Header) Badge() string {
	info := h.Language.Info()
	return h.theme.LanguageBadge.Render(info.Flag + " " + info.Name)
}

// View renders the header.
func (h *Header) View() string {
	width := maxInt(h.Width, 30)
	badge := h.Badge()

	// Border padding takes two cells.
	textWidth := maxInt(width-2-lipgloss.Width(badge)-1, 10)

	title := h.theme.HeaderTitle.Render(util.Truncate(locale.T(h.Language, "app.title"), textWidth))
	subtitle := h.theme.HeaderSubtitle.Render(util.Truncate(locale.T(h.Language, "app.subtitle"), textWidth))
	left := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)

	gap := maxInt(width-2-lipgloss.Width(left)-lipgloss.Width(badge), 1)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), badge)

	return h.theme.Header.Width(width).Render(row)
}

// Height returns the rendered height in lines.
func (h *Header) Height() int {
	return lipgloss.Height(h.View())
}
