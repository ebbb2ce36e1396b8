// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual pieces of the carchat TUI.

Components are plain structs with a View method; the chat model owns
their state and forwards size and language changes.

# Core Components

  - Header (header.go): localized title, subtitle and language badge
  - MessageBubble (message.go): user and assistant bubbles, Markdown via
    glamour, with the result list of a search attached
  - ResultList (results.go): numbered vehicle cards with score, price,
    badges and location
  - DetailsView (details.go): the vehicle detail card
  - LanguagePicker (picker.go): the five supported languages
  - StatusBar (statusbar.go): key hints and flash messages
  - Highlight (codeblock.go): chroma highlighting for raw JSON output

# Usage

	theme := styles.NewTheme(styles.ModeAuto)
	list := components.NewResultList(msg.Vehicles, theme)
	list.Language = locale.English
	fmt.Println(list.View())
*/
package components
