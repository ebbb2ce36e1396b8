// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

import (
	"sort"

	"golang.org/x/text/message"
)

var catalogs = map[Language]map[string]string{
	Italian: itMessages,
	English: enMessages,
	Spanish: esMessages,
	French:  frMessages,
	German:  deMessages,
}

// T returns the message for key in lang, formatted with args.
// Missing keys fall back to the Italian catalog, then to the key itself.
func T(lang Language, key string, args ...any) string {
	format, ok := lookup(lang, key)
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return Printer(lang).Sprintf(format, args...)
}

// Has reports whether lang's own catalog defines key.
func Has(lang Language, key string) bool {
	_, ok := catalogs[lang][key]
	return ok
}

// Keys returns the sorted key set of lang's catalog.
func Keys(lang Language) []string {
	cat := catalogs[lang]
	keys := make([]string, 0, len(cat))
	for k := range cat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Printer returns a message printer that formats numbers for lang.
func Printer(lang Language) *message.Printer {
	return message.NewPrinter(lang.Tag())
}

func lookup(lang Language, key string) (string, bool) {
	if cat, ok := catalogs[lang]; ok {
		if s, ok := cat[key]; ok {
			return s, true
		}
	}
	s, ok := catalogs[Default][key]
	return s, ok
}
