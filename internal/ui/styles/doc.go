// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the carchat TUI.

All colors use Lip Gloss AdaptiveColor so the palette follows the
terminal background.

# Key Types

  - Theme: every lipgloss style used by the components
  - Mode: "auto", "dark" or "light", from the ui.theme setting
  - SpinnerConfig: frames for the bubbles spinner

# Usage

	theme := styles.NewTheme(styles.ModeAuto)
	out := theme.UserBubble.Render("Family SUV under 30k")
*/
package styles
