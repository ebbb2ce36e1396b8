// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/carchat/internal/util"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry of the chat log.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Vehicles is set on assistant messages that answered a search. An
	// empty non-nil slice is a search that matched nothing, and is kept
	// distinct from nil so it still resets the follow-up context.
	Vehicles []vehicle.Vehicle `json:"vehicles"`

	// AIResponse keeps the raw backend text, which may be empty when
	// Content fell back to the default sentence.
	AIResponse string `json:"ai_response,omitempty"`

	IsError bool `json:"is_error,omitempty"`
}

// NewMessage creates a message with a fresh id and the current time.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewErrorMessage creates an assistant message flagged as an error.
func NewErrorMessage(content string) *Message {
	msg := NewAssistantMessage(content)
	msg.IsError = true
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsUser reports whether the user wrote the message.
func (m *Message) IsUser() bool {
	return m.Role == RoleUser
}

// HasVehicles reports whether the message carries search results.
func (m *Message) HasVehicles() bool {
	return len(m.Vehicles) > 0
}

// AnsweredSearch reports whether m is an assistant reply to a search,
// including one that found no vehicles.
func (m *Message) AnsweredSearch() bool {
	return m.Role == RoleAssistant && m.Vehicles != nil
}

// Preview returns the content on one line, cut to maxWidth cells.
func (m *Message) Preview(maxWidth int) string {
	return util.Preview(m.Content, maxWidth)
}

// FormattedTime returns the timestamp as HH:MM.
func (m *Message) FormattedTime() string {
	return m.Timestamp.Format("15:04")
}

// Clone returns a copy that shares no slices with m.
func (m *Message) Clone() *Message {
	c := *m
	if m.Vehicles != nil {
		c.Vehicles = make([]vehicle.Vehicle, len(m.Vehicles))
		copy(c.Vehicles, m.Vehicles)
	}
	return &c
}
