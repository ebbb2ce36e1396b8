// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/ui/styles"
	"github.com/jeranaias/carchat/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status selects the color of the flash message.
type Status int

const (
	StatusInfo Status = iota
	StatusSuccess
	StatusError
)

// StatusBar shows key hints for the current mode and a one-line flash
// message.
type StatusBar struct {
	Language locale.Language
	Width    int
	Hints    []string
	Message  string
	Status   Status
	theme    *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Language: locale.Default,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetHints sets the catalog keys of the hints to show, e.g. "keys.send".
func (s *StatusBar) SetHints(keys ...string) {
	s.Hints = keys
}

// Flash sets the message shown on the left.
func (s *StatusBar) Flash(msg string, status Status) {
	s.Message = msg
	s.Status = status
}

// ClearFlash removes the message.
func (s *StatusBar) ClearFlash() {
	s.Message = ""
}

// View renders the bar.
func (s *StatusBar) View() string {
	hints := s.renderShortcuts()

	if s.Message == "" {
		return s.theme.StatusBar.Width(s.Width).Render(hints)
	}

	msgStyle := s.theme.ShortcutDesc
	switch s.Status {
	case StatusSuccess:
		msgStyle = s.theme.SuccessStyle
	case StatusError:
		msgStyle = s.theme.ErrorStyle
	}

	room := maxInt(s.Width-2-lipgloss.Width(hints)-2, 10)
	msg := msgStyle.Render(util.Truncate(s.Message, room))
	return s.theme.StatusBar.Width(s.Width).Render(spread(msg, hints, maxInt(s.Width-2, 1)))
}

// renderShortcuts renders hints as "key desc" pairs. Catalog entries read
// "<key> <description>".
func (s *StatusBar) renderShortcuts() string {
	parts := make([]string, 0, len(s.Hints))
	for _, key := range s.Hints {
		text := locale.T(s.Language, key)
		k, desc, _ := strings.Cut(text, " ")
		parts = append(parts, s.theme.ShortcutKey.Render(k)+" "+s.theme.ShortcutDesc.Render(desc))
	}
	return strings.Join(parts, s.theme.ShortcutDesc.Render(" · "))
}
