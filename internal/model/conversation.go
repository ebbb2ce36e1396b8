// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// MaxMessages bounds the in-memory history. Older messages are pruned.
const MaxMessages = 1000

// titleWidth is the width of auto-generated titles.
const titleWidth = 50

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a chat session with its messages and metadata.
type Conversation struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Language  locale.Language `json:"language"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Messages []*Message `json:"messages"`
}

// NewConversation creates an empty conversation in lang.
func NewConversation(lang locale.Language) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		Language:  lang,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends msg and refreshes title and timestamps.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTitle()
	c.pruneOldMessages()
}

// LastVehicles returns the vehicles of the most recent search reply, in
// display order. The result is empty but non-nil when that search matched
// nothing, and nil when no search has been answered yet.
func (c *Conversation) LastVehicles() []vehicle.Vehicle {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		msg := c.Messages[i]
		if msg.AnsweredSearch() {
			return msg.Vehicles
		}
	}
	return nil
}

// GetLastMessage returns the newest message, or nil.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// GetLastUserMessage returns the newest user message, or nil.
func (c *Conversation) GetLastUserMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i]
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty reports whether there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle uses the first user message as title if none is set.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			c.Title = msg.Preview(titleWidth)
			return
		}
	}
}

// SetTitle sets the conversation title.
func (c *Conversation) SetTitle(title string) {
	c.Title = title
	c.UpdatedAt = time.Now()
}

// GetTitle returns the title, or a localized default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return locale.T(c.Language, "session.cleared")
}

// =============================================================================
// SERIALIZATION HELPERS
// =============================================================================

// Preview returns a short preview of the latest user request.
func (c *Conversation) Preview() string {
	if len(c.Messages) == 0 {
		return ""
	}
	msg := c.GetLastUserMessage()
	if msg == nil {
		msg = c.Messages[0]
	}
	return msg.Preview(100)
}

// GetMeta returns metadata about the conversation.
func (c *Conversation) GetMeta() ConversationMeta {
	return ConversationMeta{
		ID:           c.ID,
		Title:        c.GetTitle(),
		Language:     c.Language,
		MessageCount: len(c.Messages),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Preview:      c.Preview(),
	}
}

// ConversationMeta holds lightweight metadata for listing.
type ConversationMeta struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Language     locale.Language `json:"language"`
	MessageCount int             `json:"message_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Preview      string          `json:"preview"`
}

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:        c.ID,
		Title:     c.Title,
		Language:  c.Language,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		clone.Messages[i] = msg.Clone()
	}
	return clone
}

// pruneOldMessages keeps the most recent MaxMessages messages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	kept := make([]*Message, MaxMessages)
	copy(kept, c.Messages[len(c.Messages)-MaxMessages:])
	c.Messages = kept
}
