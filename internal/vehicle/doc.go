// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vehicle defines the records exchanged with the aicarsearch function
// and their localized display formatting.
//
// # Key Types
//
//   - Vehicle: flat record with an id and optional scalar fields
//   - SearchResult: response envelope (action, vehicles or vehicle, ai_response)
//   - Context: ids of the previous search, sent with follow-up questions
//   - Number: numeric field that also accepts numeric strings on the wire
//
// # Usage
//
//	fmt.Println(v.Title())
//	fmt.Println(v.PriceText(locale.English))   // €25,000
//	fmt.Println(v.MileageText(locale.Italian)) // 42.000 km
package vehicle
