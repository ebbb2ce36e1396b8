// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one chat message: user text right-aligned,
// assistant text left-aligned with Markdown, followed by any results.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	Language      locale.Language
	ShowTimestamp bool

	// Results is drawn under assistant messages that carry vehicles.
	Results *ResultList

	markdown *Markdown
	theme    *styles.Theme
}

// NewMessageBubble creates a new MessageBubble
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleAssistant}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		Language:      locale.Default,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// WithMarkdown sets the renderer for assistant text.
func (b *MessageBubble) WithMarkdown(md *Markdown) *MessageBubble {
	b.markdown = md
	return b
}

// WithResults attaches the result list drawn under the bubble.
func (b *MessageBubble) WithResults(r *ResultList) *MessageBubble {
	b.Results = r
	return b
}

// SetWidth sets the bubble width
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble
func (b *MessageBubble) View() string {
	if b.Message.IsUser() {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

// ==========================================================================
// USER BUBBLE
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := strings.TrimSpace(b.Message.Content)
	if content == "" {
		content = "..."
	}

	// Bubbles take at most 80% of the row.
	maxContent := maxInt(b.Width*4/5-4, 20)
	wrapped := wordWrap(content, maxContent)
	bubble := b.theme.UserBubble.Render(wrapped)

	header := b.theme.Timestamp.Render(locale.T(b.Language, "chat.you"))
	if b.ShowTimestamp {
		header += " " + b.theme.Timestamp.Render(b.Message.FormattedTime())
	}

	block := lipgloss.JoinVertical(lipgloss.Right, header, bubble)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

// ==========================================================================
// ASSISTANT BUBBLE
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	content := strings.TrimSpace(b.Message.Content)
	if content == "" {
		content = "..."
	}

	maxContent := maxInt(b.Width*4/5-4, 20)

	var bubble string
	if b.Message.IsError {
		bubble = b.theme.ErrorBubble.Render(wordWrap(content, maxContent))
	} else {
		var body string
		if b.markdown.Enabled() {
			body = b.markdown.Render(content, maxContent)
		} else {
			body = wordWrap(content, maxContent)
		}
		bubble = b.theme.AssistantBubble.Render(body)
	}

	header := b.theme.Timestamp.Render(locale.T(b.Language, "chat.assistant"))
	if b.ShowTimestamp {
		header += " " + b.theme.Timestamp.Render(b.Message.FormattedTime())
	}

	parts := []string{header, bubble}
	if b.Results != nil && len(b.Results.Vehicles) > 0 {
		parts = append(parts, b.Results.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// =============================================================================
// EMPTY STATE
// =============================================================================

// EmptyState renders the greeting shown before the first message.
func EmptyState(theme *styles.Theme, lang locale.Language, width, height int) string {
	greeting := theme.Greeting.Render(locale.T(lang, "chat.greeting"))
	hint := theme.Hint.Render(locale.T(lang, "chat.start_hint"))
	block := lipgloss.JoinVertical(lipgloss.Center, greeting, "", hint)
	return lipgloss.Place(maxInt(width, 1), maxInt(height, 1), lipgloss.Center, lipgloss.Center, block)
}
