// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across carchat.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - Truncate: display-width aware truncation for terminal cards
//   - OneLine: collapses whitespace so previews stay on a single row
//
// # Usage
//
//	title := util.Truncate(v.Title(), 40)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
