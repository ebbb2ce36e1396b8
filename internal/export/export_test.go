// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/vehicle"
)

func sampleConversation(lang locale.Language) *model.Conversation {
	conv := model.NewConversation(lang)
	conv.AddMessage(model.NewUserMessage("SUV ibrido sotto i 30.000 euro"))
	reply := model.NewAssistantMessage("Ecco cosa ho trovato.")
	reply.Vehicles = []vehicle.Vehicle{{
		ID:          42,
		Brand:       "Toyota",
		Model:       "C-HR",
		Version:     "1.8 Hybrid",
		FuelType:    "Ibrida",
		PublicPrice: vehicle.NewNumber(27500),
		Mileage:     vehicle.NewNumber(18000),
	}}
	conv.AddMessage(reply)
	return conv
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownExport(t *testing.T) {
	exp := NewMarkdownExporter(nil)
	exp.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	out, err := exp.Export(sampleConversation(locale.Italian))
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\n"))
	assert.Contains(t, md, "# SUV ibrido sotto i 30.000 euro\n")
	assert.Contains(t, md, "### "+locale.T(locale.Italian, "chat.you"))
	assert.Contains(t, md, "Ecco cosa ho trovato.")
	assert.Contains(t, md, locale.T(locale.Italian, "results.found", 1))
	assert.Contains(t, md, "| 1 | 42 | Toyota C-HR 1.8 Hybrid | €27.500 |")
	assert.Contains(t, md, "18.000 km")
	assert.Contains(t, md, "Italiano")
}

func TestMarkdownExport_Frontmatter(t *testing.T) {
	conv := sampleConversation(locale.English)
	conv.SetTitle("Test\nInjection: malicious")

	out, err := NewMarkdownExporter(nil).Export(conv)
	require.NoError(t, err)

	parts := strings.SplitN(string(out), "---\n", 3)
	require.Len(t, parts, 3)

	var fm frontmatter
	require.NoError(t, yaml.Unmarshal([]byte(parts[1]), &fm))
	assert.Equal(t, "Test\nInjection: malicious", fm.Title)
	assert.Equal(t, "en", fm.Language)
	assert.Equal(t, 2, fm.Messages)
	assert.Equal(t, 1, fm.Vehicles)
	assert.Equal(t, "carchat", fm.Generator)

	for _, line := range strings.Split(parts[1], "\n") {
		assert.False(t, strings.HasPrefix(line, "Injection:"), "title leaked into frontmatter keys")
	}
}

func TestMarkdownExport_Options(t *testing.T) {
	opts := &Options{}
	out, err := NewMarkdownExporter(opts).Export(sampleConversation(locale.English))
	require.NoError(t, err)
	md := string(out)

	assert.False(t, strings.HasPrefix(md, "---"))
	assert.NotContains(t, md, "<sub>")
	assert.NotContains(t, md, "| # |")
}

func TestMarkdownExport_ErrorMessage(t *testing.T) {
	conv := model.NewConversation(locale.English)
	conv.AddMessage(model.NewUserMessage("hello"))
	conv.AddMessage(model.NewErrorMessage(locale.T(locale.English, "chat.error")))

	out, err := NewMarkdownExporter(nil).Export(conv)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Assistant (error)")
}

func TestMarkdownExport_Invalid(t *testing.T) {
	_, err := NewMarkdownExporter(nil).Export(nil)
	assert.Error(t, err)

	_, err = NewMarkdownExporter(nil).Export(model.NewConversation(locale.English))
	assert.ErrorIs(t, err, ErrEmptyConversation)
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONExport(t *testing.T) {
	conv := sampleConversation(locale.German)
	out, err := NewJSONExporter(nil).Export(conv)
	require.NoError(t, err)

	var decoded model.Conversation
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, conv.ID, decoded.ID)
	assert.Equal(t, locale.German, decoded.Language)
	require.Len(t, decoded.Messages, 2)
	assert.Equal(t, []int64{42}, vehicle.IDs(decoded.Messages[1].Vehicles))
}

// =============================================================================
// FILES
// =============================================================================

func TestExportConversation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	opts := DefaultOptions()
	opts.OutputDir = dir

	for _, format := range []Format{FormatMarkdown, FormatJSON} {
		path, err := ExportConversation(sampleConversation(locale.English), format, opts)
		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(path))
		assert.True(t, strings.HasPrefix(filepath.Base(path), "conversation_SUV_ibrido"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"md", FormatMarkdown, false},
		{"Markdown", FormatMarkdown, false},
		{"", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"html", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a-b-c_d", sanitizeFilename("a/b:c d"))
	assert.Equal(t, "conversation", sanitizeFilename("   "))
	assert.Len(t, []rune(sanitizeFilename(strings.Repeat("x", 80))), 50)
}

func TestFilename(t *testing.T) {
	conv := model.NewConversation(locale.English)
	conv.SetTitle("Diesel wagon")
	got := Filename(conv, ".md", time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC))
	assert.Equal(t, "conversation_Diesel_wagon_20250607_080910.md", got)
}
