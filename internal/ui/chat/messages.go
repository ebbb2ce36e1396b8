// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// searchResultMsg carries the outcome of a search started by Begin.
type searchResultMsg struct {
	result *vehicle.SearchResult
	err    error
}

// detailsResultMsg carries the outcome of OpenVehicle.
type detailsResultMsg struct {
	vehicle *vehicle.Vehicle
	err     error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// sessionSavedMsg reports the outcome of ctrl+s.
type sessionSavedMsg struct {
	id    string
	title string
	err   error
}

// clearFlashMsg hides the flash message it was scheduled for.
type clearFlashMsg struct {
	seq int
}

// =============================================================================
// EXTERNAL MESSAGES
// =============================================================================

// LanguageChangedMsg switches the UI language, e.g. after the config file
// changed on disk. Send it with tea.Program.Send.
type LanguageChangedMsg struct {
	Language locale.Language
}
