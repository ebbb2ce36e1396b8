// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: ordered messages plus id, title, language and timestamps
//   - Message: one chat bubble; assistant messages may carry vehicles
//   - Role: user or assistant
//   - ConversationMeta: lightweight listing entry
//
// # Usage
//
//	conv := model.NewConversation(locale.Italian)
//	conv.AddMessage(model.NewUserMessage("SUV diesel"))
//	ctx := vehicle.NewContext(conv.LastVehicles())
package model
