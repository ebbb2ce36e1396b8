// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat holds the conversation state shared by every front end.
//
// A Controller owns the ordered message list, the current language, the
// single in-flight request and the vehicle whose detail card is open. The
// network call itself is delegated to a Searcher so the TUI can run it as a
// Bubble Tea command between Begin and Complete, while the REPL and CLI just
// call Submit.
//
// # Key Types
//
//   - Controller: conversation state machine
//   - Searcher: the remote search function (implemented by search.Client)
//   - Request: what Begin decided to send
//
// # Usage
//
//	c := chat.New(client, locale.Italian).WithLogger(logger)
//	msg, err := c.Submit(ctx, "SUV diesel automatico")
//	if v := c.OpenedVehicle(); v != nil {
//		// render the detail card
//	}
package chat
