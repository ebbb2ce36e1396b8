// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists saved sessions in a local sqlite database.
//
// Each conversation is stored with its messages, including the vehicle
// payloads of search replies, so a reopened session can resume follow-up
// questions. A separate viewed_vehicles table logs every detail card the
// user opened.
//
// # Key Types
//
//   - ConversationStore: sqlite-backed store
//   - ViewedVehicle: one entry of the viewing log
//
// # Usage
//
//	store, err := storage.Open(path, 100)
//	defer store.Close()
//	err = store.Save(ctx, conv)
//	metas, err := store.List(ctx)
//	conv, err := store.Load(ctx, metas[0].ID)
//
// # Storage Location
//
// The database defaults to ~/.carchat/carchat.db.
package storage
