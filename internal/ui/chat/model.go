// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/carchat/internal/chat"
	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/ui/components"
	"github.com/jeranaias/carchat/internal/ui/styles"
)

// flashDuration is how long status messages stay visible.
const flashDuration = 4 * time.Second

// =============================================================================
// CHAT MODE
// =============================================================================

// mode selects which part of the screen receives keys.
type mode int

const (
	modeInput   mode = iota // Typing a request
	modeResults             // Moving through the latest result cards
	modeDetails             // Detail card open
	modePicker              // Language picker open
)

// SessionStore persists conversations for ctrl+s.
type SessionStore interface {
	Save(ctx context.Context, conv *model.Conversation) error
}

// Options configures the chat model.
type Options struct {
	Theme      *styles.Theme
	Markdown   bool
	ShowScores bool
	Store      SessionStore
	Logger     *zap.Logger
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctx    context.Context
	ctrl   *chat.Controller
	store  SessionStore
	logger *zap.Logger

	// Styling
	theme    *styles.Theme
	markdown *components.Markdown

	// Dimensions
	width  int
	height int

	// State
	mode       mode
	selected   int
	loading    bool
	showScores bool
	flashSeq   int

	// UI Components
	header    *components.Header
	status    *components.StatusBar
	picker    *components.LanguagePicker
	viewport  viewport.Model
	detailsVP viewport.Model
	input     textinput.Model
	spinner   spinner.Model

	// Key bindings
	keyMap KeyMap
}

// New creates the chat model around ctrl. ctx bounds every backend call.
func New(ctx context.Context, ctrl *chat.Controller, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.CharLimit = 1000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = styles.LineSpinner.Spinner()
	sp.Style = theme.Spinner

	m := Model{
		ctx:        ctx,
		ctrl:       ctrl,
		store:      opts.Store,
		logger:     logger.Named("tui"),
		theme:      theme,
		markdown:   components.NewMarkdown(theme.GlamourStyle(), opts.Markdown),
		width:      80,
		height:     24,
		mode:       modeInput,
		selected:   -1,
		showScores: opts.ShowScores,
		header:     components.NewHeader(theme),
		status:     components.NewStatusBar(theme),
		viewport:   viewport.New(80, 20),
		detailsVP:  viewport.New(80, 10),
		input:      ti,
		spinner:    sp,
		keyMap:     DefaultKeyMap(),
	}
	m.applyLanguage(ctrl.Language())
	m.status.SetHints(hintsFor(m.mode)...)
	return m
}

// Controller returns the conversation controller.
func (m Model) Controller() *chat.Controller {
	return m.ctrl
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// View renders the screen.
func (m Model) View() string {
	return m.render()
}

// =============================================================================
// HELPERS
// =============================================================================

// applyLanguage pushes lang into every localized component.
func (m *Model) applyLanguage(lang locale.Language) {
	m.header.SetLanguage(lang)
	m.status.Language = lang
	m.input.Placeholder = locale.T(lang, "chat.placeholder")
}

// setMode switches the key focus and the status bar hints.
func (m *Model) setMode(md mode) {
	m.mode = md
	m.status.SetHints(hintsFor(md)...)
	if md == modeInput && !m.ctrl.Busy() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// flash shows msg in the status bar and schedules its removal.
func (m *Model) flash(msg string, status components.Status) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.status.Flash(msg, status)
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{seq: seq}
	})
}
