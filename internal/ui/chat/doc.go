// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea model of the carchat terminal UI.

The model is a thin view over chat.Controller: key presses become
controller calls run as tea.Cmds, and their outcomes come back as
messages that refresh the screen.

# Key Types

  - Model: the Bubble Tea model (model.go, update.go, view.go)
  - Options: theme, Markdown, score badges and the session store
  - KeyMap: key bindings (keys.go)
  - LanguageChangedMsg: switch language from outside the program

# Modes

  - input: type a request, enter sends it
  - results (tab): up/down select a card, enter opens its details
  - details: the detail card, esc closes it
  - picker (ctrl+l): choose the UI language

# Usage

	ctrl := chat.New(client, locale.Detect())
	m := uichat.New(ctx, ctrl, uichat.Options{Theme: theme, Markdown: true, Store: store})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
*/
package chat
