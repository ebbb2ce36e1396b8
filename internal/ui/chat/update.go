// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/carchat/internal/chat"
	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/ui/components"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case detailsResultMsg:
		return m.handleDetailsResult(msg)

	case sessionSavedMsg:
		return m.handleSessionSaved(msg)

	case LanguageChangedMsg:
		return m.handleLanguageChanged(msg)

	case clearFlashMsg:
		if msg.seq == m.flashSeq {
			m.status.ClearFlash()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.ctrl.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.mode == modeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// RESIZE
// =============================================================================

// statusHeight and inputHeight are the fixed rows under the body.
const (
	statusHeight = 1
	inputHeight  = 2
)

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.theme.SetSize(m.width, m.height)
	m.header.SetWidth(m.width)
	m.status.SetWidth(m.width)

	m.viewport.Width = maxInt(m.width, 1)
	m.viewport.Height = m.bodyHeight()

	// Prompt "> " and the container padding.
	m.input.Width = maxInt(m.width-6, 10)

	m.refreshViewport(true)
	m.refreshDetails()
	return m, nil
}

// bodyHeight is the space left for messages or overlays.
func (m Model) bodyHeight() int {
	return maxInt(m.height-m.header.Height()-inputHeight-statusHeight, 1)
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case modePicker:
		return m.handlePickerKey(msg)
	case modeDetails:
		return m.handleDetailsKey(msg)
	case modeResults:
		return m.handleResultsKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Results):
		if len(m.ctrl.LastVehicles()) == 0 {
			return m, nil
		}
		m.selected = 0
		m.setMode(modeResults)
		m.refreshViewport(true)
		return m, nil

	case key.Matches(msg, m.keyMap.Language):
		m.picker = components.NewLanguagePicker(m.ctrl.Language(), m.theme)
		m.setMode(modePicker)
		return m, nil

	case key.Matches(msg, m.keyMap.Save):
		return m.save()

	case key.Matches(msg, m.keyMap.New):
		if err := m.ctrl.Clear(); err != nil {
			return m, m.flash(locale.T(m.ctrl.Language(), "session.busy"), components.StatusError)
		}
		m.selected = -1
		m.refreshViewport(true)
		return m, m.flash(locale.T(m.ctrl.Language(), "session.cleared"), components.StatusInfo)

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vehicles := m.ctrl.LastVehicles()

	switch {
	case key.Matches(msg, m.keyMap.Up):
		if m.selected > 0 {
			m.selected--
		}
		m.refreshViewport(false)

	case key.Matches(msg, m.keyMap.Down):
		if m.selected < len(vehicles)-1 {
			m.selected++
		}
		m.refreshViewport(false)

	case key.Matches(msg, m.keyMap.Submit):
		if m.selected < 0 || m.selected >= len(vehicles) {
			return m, nil
		}
		if m.ctrl.Busy() {
			return m, m.flash(locale.T(m.ctrl.Language(), "session.busy"), components.StatusError)
		}
		m.loading = true
		return m, tea.Batch(m.openCmd(vehicles[m.selected].ID), m.spinner.Tick)

	case key.Matches(msg, m.keyMap.Back), key.Matches(msg, m.keyMap.Results):
		m.selected = -1
		m.setMode(modeInput)
		m.refreshViewport(true)

	case key.Matches(msg, m.keyMap.Language):
		m.picker = components.NewLanguagePicker(m.ctrl.Language(), m.theme)
		m.setMode(modePicker)
	}
	return m, nil
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		m.ctrl.CloseVehicle()
		if m.selected >= 0 && len(m.ctrl.LastVehicles()) > 0 {
			m.setMode(modeResults)
		} else {
			m.setMode(modeInput)
		}
		m.refreshViewport(false)
		return m, nil
	case key.Matches(msg, m.keyMap.Up):
		m.detailsVP.LineUp(1)
	case key.Matches(msg, m.keyMap.Down):
		m.detailsVP.LineDown(1)
	case key.Matches(msg, m.keyMap.PageUp):
		m.detailsVP.HalfViewUp()
	case key.Matches(msg, m.keyMap.PageDown):
		m.detailsVP.HalfViewDown()
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.picker.Up()
	case key.Matches(msg, m.keyMap.Down):
		m.picker.Down()
	case key.Matches(msg, m.keyMap.Back):
		m.picker = nil
		m.setMode(modeInput)
	case key.Matches(msg, m.keyMap.Submit):
		lang := m.picker.Selected()
		m.picker = nil
		m.setMode(modeInput)
		return m.switchLanguage(lang)
	}
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

// submit starts a search for the input text.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.ctrl.Begin(m.input.Value())
	switch {
	case errors.Is(err, chat.ErrEmptyInput):
		return m, nil
	case errors.Is(err, chat.ErrBusy):
		return m, m.flash(locale.T(m.ctrl.Language(), "session.busy"), components.StatusError)
	case err != nil:
		return m, m.flash(err.Error(), components.StatusError)
	}

	m.input.Reset()
	m.input.Blur()
	m.selected = -1
	m.refreshViewport(true)

	ctrl, ctx := m.ctrl, m.ctx
	search := func() tea.Msg {
		res, err := ctrl.Search(ctx, req)
		return searchResultMsg{result: res, err: err}
	}
	return m, tea.Batch(search, m.spinner.Tick)
}

// openCmd fetches the detail card for id.
func (m Model) openCmd(id int64) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		v, err := ctrl.OpenVehicle(ctx, id)
		return detailsResultMsg{vehicle: v, err: err}
	}
}

// save stores the conversation.
func (m Model) save() (tea.Model, tea.Cmd) {
	lang := m.ctrl.Language()
	if m.store == nil {
		return m, m.flash(locale.T(lang, "session.save_failed", "storage disabled"), components.StatusError)
	}
	conv := m.ctrl.Conversation()
	if conv.IsEmpty() {
		return m, nil
	}
	store, ctx := m.store, m.ctx
	return m, func() tea.Msg {
		err := store.Save(ctx, conv)
		return sessionSavedMsg{id: conv.ID, title: conv.GetTitle(), err: err}
	}
}

func (m Model) switchLanguage(lang locale.Language) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SetLanguage(lang); err != nil {
		return m, nil
	}
	m.applyLanguage(lang)
	m.viewport.Height = m.bodyHeight()
	m.refreshViewport(false)
	m.refreshDetails()
	return m, m.flash(locale.T(lang, "session.language", lang.Info().Name), components.StatusInfo)
}

// =============================================================================
// RESULTS
// =============================================================================

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	reply, err := m.ctrl.Complete(msg.result, msg.err)
	if err != nil {
		m.logger.Warn("unexpected search result", zap.Error(err))
		return m, nil
	}

	if m.mode == modeInput {
		m.input.Focus()
	}
	m.refreshViewport(true)

	if reply.IsError {
		return m, nil
	}
	if msg.result != nil && msg.result.IsDetails() && m.ctrl.OpenedVehicle() != nil {
		m.setMode(modeDetails)
		m.refreshDetails()
	}
	return m, nil
}

func (m Model) handleDetailsResult(msg detailsResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		return m, m.flash(locale.T(m.ctrl.Language(), "chat.details_error"), components.StatusError)
	}
	m.setMode(modeDetails)
	m.refreshDetails()
	return m, nil
}

func (m Model) handleSessionSaved(msg sessionSavedMsg) (tea.Model, tea.Cmd) {
	lang := m.ctrl.Language()
	if msg.err != nil {
		m.logger.Warn("save session", zap.String("id", msg.id), zap.Error(msg.err))
		return m, m.flash(locale.T(lang, "session.save_failed", msg.err.Error()), components.StatusError)
	}
	m.ctrl.MarkSaved()
	return m, m.flash(locale.T(lang, "session.saved", msg.title), components.StatusSuccess)
}

func (m Model) handleLanguageChanged(msg LanguageChangedMsg) (tea.Model, tea.Cmd) {
	if msg.Language == m.ctrl.Language() || !msg.Language.Valid() {
		return m, nil
	}
	return m.switchLanguage(msg.Language)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
