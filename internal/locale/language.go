// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported UI language code.
type Language string

const (
	Italian Language = "it"
	English Language = "en"
	Spanish Language = "es"
	French  Language = "fr"
	German  Language = "de"
)

// Default is used when nothing else matches.
const Default = Italian

// ErrUnsupported is returned by Parse for languages outside the supported set.
var ErrUnsupported = errors.New("unsupported language")

// Info describes a language for display in the selector.
type Info struct {
	Code Language
	Name string
	Flag string
}

// languages is ordered as the selector shows them.
var languages = []Info{
	{Code: Italian, Name: "Italiano", Flag: "🇮🇹"},
	{Code: English, Name: "English", Flag: "🇺🇸"},
	{Code: Spanish, Name: "Español", Flag: "🇪🇸"},
	{Code: French, Name: "Français", Flag: "🇫🇷"},
	{Code: German, Name: "Deutsch", Flag: "🇩🇪"},
}

var (
	supportedTags = []language.Tag{
		language.Italian,
		language.English,
		language.Spanish,
		language.French,
		language.German,
	}
	matcher = language.NewMatcher(supportedTags)
)

// All returns the supported languages in selector order.
func All() []Info {
	out := make([]Info, len(languages))
	copy(out, languages)
	return out
}

// Codes returns the supported language codes in selector order.
func Codes() []Language {
	out := make([]Language, len(languages))
	for i, l := range languages {
		out[i] = l.Code
	}
	return out
}

// String returns the language code.
func (l Language) String() string {
	return string(l)
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	for _, info := range languages {
		if info.Code == l {
			return true
		}
	}
	return false
}

// Info returns the display information for l, or the default language's
// information if l is not supported.
func (l Language) Info() Info {
	for _, info := range languages {
		if info.Code == l {
			return info
		}
	}
	return languages[0]
}

// Tag returns the x/text language tag for l.
func (l Language) Tag() language.Tag {
	for i, info := range languages {
		if info.Code == l {
			return supportedTags[i]
		}
	}
	return supportedTags[0]
}

// Next returns the language after l in selector order, wrapping around.
func (l Language) Next() Language {
	for i, info := range languages {
		if info.Code == l {
			return languages[(i+1)%len(languages)].Code
		}
	}
	return Default
}

// Parse resolves a language code or locale string such as "de", "fr-CA" or
// "de_DE.UTF-8" to a supported Language.
func Parse(s string) (Language, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrUnsupported)
	}

	// POSIX locale strings: strip encoding and modifier, use BCP-47 separators.
	tagStr := raw
	if i := strings.IndexAny(tagStr, ".@"); i >= 0 {
		tagStr = tagStr[:i]
	}
	tagStr = strings.ReplaceAll(tagStr, "_", "-")

	tag, err := language.Parse(tagStr)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
	}
	return languages[idx].Code, nil
}

// MustParse is like Parse but returns Default for unsupported input.
func MustParse(s string) Language {
	l, err := Parse(s)
	if err != nil {
		return Default
	}
	return l
}

// Detect picks a language from the process environment ($LC_ALL,
// $LC_MESSAGES, $LANG in that order), falling back to Default.
func Detect() Language {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			if l, err := Parse(v); err == nil {
				return l
			}
		}
	}
	return Default
}
