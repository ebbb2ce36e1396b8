// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/ui/styles"
)

// =============================================================================
// LANGUAGE PICKER COMPONENT
// =============================================================================

// LanguagePicker lists the supported languages with the current one
// marked. Cursor is the highlighted row.
type LanguagePicker struct {
	Current locale.Language
	Cursor  int
	items   []locale.Info
	theme   *styles.Theme
}

// NewLanguagePicker opens the picker with the cursor on current.
func NewLanguagePicker(current locale.Language, theme *styles.Theme) *LanguagePicker {
	p := &LanguagePicker{
		Current: current,
		items:   locale.All(),
		theme:   theme,
	}
	for i, info := range p.items {
		if info.Code == current {
			p.Cursor = i
		}
	}
	return p
}

// Up moves the cursor up, wrapping around.
func (p *LanguagePicker) Up() {
	p.Cursor = (p.Cursor - 1 + len(p.items)) % len(p.items)
}

// Down moves the cursor down, wrapping around.
func (p *LanguagePicker) Down() {
	p.Cursor = (p.Cursor + 1) % len(p.items)
}

// Selected returns the language under the cursor.
func (p *LanguagePicker) Selected() locale.Language {
	return p.items[p.Cursor].Code
}

// View renders the picker box.
func (p *LanguagePicker) View() string {
	lines := []string{p.theme.SectionTitle.UnsetMarginTop().Render(locale.T(p.Current, "language.title")), ""}
	for i, info := range p.items {
		mark := "  "
		if info.Code == p.Current {
			mark = "✓ "
		}
		row := mark + info.Flag + " " + info.Name
		if i == p.Cursor {
			lines = append(lines, p.theme.PickerItemSelected.Render(row))
		} else {
			lines = append(lines, p.theme.PickerItem.Render(row))
		}
	}
	return p.theme.PickerBox.Render(strings.Join(lines, "\n"))
}
