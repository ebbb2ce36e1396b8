// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/ui/components"
)

// =============================================================================
// LAYOUT
// =============================================================================

// render stacks header, body, input and status bar.
func (m Model) render() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.renderBody(),
		m.renderInput(),
		m.status.View(),
	)
}

func (m Model) renderBody() string {
	height := m.bodyHeight()

	switch m.mode {
	case modePicker:
		if m.picker != nil {
			return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, m.picker.View())
		}
	case modeDetails:
		if v := m.ctrl.OpenedVehicle(); v != nil {
			d := m.detailsView()
			box := lipgloss.JoinVertical(lipgloss.Left, d.Header(), "", m.detailsVP.View())
			framed := m.theme.DetailsBox.Width(m.detailsWidth()).Render(box)
			return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Top, framed)
		}
	}

	if len(m.ctrl.Messages()) == 0 {
		return components.EmptyState(m.theme, m.ctrl.Language(), m.width, height)
	}
	return m.viewport.View()
}

func (m Model) renderInput() string {
	lang := m.ctrl.Language()
	var line string
	if m.loading || m.ctrl.Busy() {
		line = m.spinner.View() + " " + m.theme.SearchingText.Render(locale.T(lang, "chat.searching"))
	} else {
		line = m.input.View()
	}
	return m.theme.InputContainer.Width(maxInt(m.width, 1)).Render(line)
}

// =============================================================================
// CONTENT
// =============================================================================

// refreshViewport re-renders the message list. bottom scrolls to the end.
func (m *Model) refreshViewport(bottom bool) {
	m.viewport.SetContent(m.renderMessages())
	if bottom {
		m.viewport.GotoBottom()
	} else if m.mode == modeResults {
		m.scrollToSelection()
	}
}

// renderMessages renders every bubble. The latest result list carries the
// selection while results are focused.
func (m *Model) renderMessages() string {
	msgs := m.ctrl.Messages()
	lang := m.ctrl.Language()

	focus := -1
	for i := len(msgs) - 1; i >= 0; i-- {
		if !msgs[i].IsUser() && msgs[i].HasVehicles() {
			focus = i
			break
		}
	}

	parts := make([]string, 0, len(msgs))
	for i, msg := range msgs {
		b := components.NewMessageBubble(msg, m.theme).WithMarkdown(m.markdown)
		b.Language = lang
		b.SetWidth(maxInt(m.width-1, 20))
		if msg.HasVehicles() {
			r := components.NewResultList(msg.Vehicles, m.theme)
			r.Language = lang
			r.Width = b.Width
			r.ShowScores = m.showScores
			if i == focus && m.mode == modeResults {
				r.Selected = m.selected
			}
			b.WithResults(r)
		}
		parts = append(parts, b.View())
	}
	return strings.Join(parts, "\n\n")
}

// scrollToSelection keeps the selected card in view.
func (m *Model) scrollToSelection() {
	content := m.renderMessages()
	marker := "↵ " + locale.T(m.ctrl.Language(), "results.view_details")
	idx := strings.LastIndex(content, marker)
	if idx < 0 {
		return
	}
	line := strings.Count(content[:idx], "\n")
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(maxInt(line-m.viewport.Height/2, 0))
	}
}

func (m *Model) detailsView() *components.DetailsView {
	d := components.NewDetailsView(m.ctrl.OpenedVehicle(), m.theme)
	d.Language = m.ctrl.Language()
	d.Width = m.detailsWidth()
	return d
}

func (m *Model) detailsWidth() int {
	return maxInt(minInt(m.width-2, 100), 30)
}

// refreshDetails renders the open card into its viewport.
func (m *Model) refreshDetails() {
	if m.ctrl.OpenedVehicle() == nil {
		return
	}
	d := m.detailsView()
	// Border, padding, title, name and a blank line.
	m.detailsVP.Width = d.Width
	m.detailsVP.Height = maxInt(m.bodyHeight()-2-2-3, 3)
	m.detailsVP.SetContent(d.Body())
	m.detailsVP.GotoTop()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
