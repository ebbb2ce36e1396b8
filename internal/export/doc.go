// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to disk.
//
// # Key Types
//
//   - Exporter: renders a model.Conversation in one format
//   - MarkdownExporter: readable transcript with a YAML frontmatter and a
//     table of the vehicles attached to each reply
//   - JSONExporter: the full conversation as indented JSON
//   - Options: output directory and Markdown toggles
//
// # Usage
//
//	path, err := export.ExportConversation(conv, export.FormatMarkdown, export.DefaultOptions())
//
// Files are named conversation_<title>_<timestamp>.<ext> and written
// atomically.
package export
