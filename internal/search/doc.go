// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search is the network wrapper around the hosted aicarsearch
// function.
//
// The function lives behind a Supabase-style edge gateway: every call is a
// JSON POST to <base_url>/functions/v1/<function> authenticated with the
// project's anonymous key. Natural-language interpretation, matching and
// ranking all happen server side; this package only ships the request and
// turns every failure into an error.
//
// # Key Types
//
//   - Client: configured endpoint with retry, pacing and size limits
//   - FunctionError: non-2xx reply from the gateway
//
// # Usage
//
//	c := search.New(cfg.Backend.URL, cfg.Backend.AnonKey).
//		WithLogger(logger).
//		WithMaxRetries(3)
//	res, err := c.Search(ctx, "ibrida familiare sotto i 25000", locale.Italian, nil)
//	v, err := c.Details(ctx, res.Vehicles[0].ID)
package search
