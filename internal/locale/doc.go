// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package locale holds the five supported UI languages and their message
// catalogs.
//
// # Key Types
//
//   - Language: one of it, en, es, fr, de (Italian is the default)
//   - Info: native name and flag used by the language selector
//
// # Usage
//
//	lang := locale.Detect()
//	fmt.Println(locale.T(lang, "app.title"))
//	fmt.Println(locale.T(lang, "results.found", len(vehicles)))
//
// Formatting goes through golang.org/x/text/message, so digit grouping and
// decimal separators follow the selected language.
package locale
