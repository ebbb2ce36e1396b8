// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to Markdown format.
type MarkdownExporter struct {
	options *Options

	// now is stubbed in tests.
	now func() time.Time
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts, now: time.Now}
}

type frontmatter struct {
	Title     string `yaml:"title"`
	ID        string `yaml:"id"`
	Language  string `yaml:"language"`
	Date      string `yaml:"date"`
	Updated   string `yaml:"updated"`
	Messages  int    `yaml:"messages"`
	Vehicles  int    `yaml:"vehicles,omitempty"`
	Exported  string `yaml:"exported"`
	Generator string `yaml:"generator"`
}

// Export converts a conversation to Markdown. Labels follow the
// conversation language.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return nil, ErrEmptyConversation
	}
	if conv.CreatedAt.IsZero() {
		return nil, fmt.Errorf("conversation has invalid creation timestamp")
	}

	lang := conv.Language
	if !lang.Valid() {
		lang = locale.Default
	}
	title := conv.GetTitle()

	var sb strings.Builder

	if e.options.IncludeMetadata {
		fm, err := yaml.Marshal(frontmatter{
			Title:     title,
			ID:        conv.ID,
			Language:  lang.String(),
			Date:      conv.CreatedAt.Format(time.RFC3339),
			Updated:   conv.UpdatedAt.Format(time.RFC3339),
			Messages:  len(conv.Messages),
			Vehicles:  countVehicles(conv),
			Exported:  e.now().Format(time.RFC3339),
			Generator: "carchat",
		})
		if err != nil {
			return nil, fmt.Errorf("encode frontmatter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(fm)
		sb.WriteString("---\n\n")
	}

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(title))

	if e.options.IncludeMetadata {
		fmt.Fprintf(&sb, "- **%s**: %s\n", locale.T(lang, "language.title"), lang.Info().Name)
		fmt.Fprintf(&sb, "- **Created**: %s\n", formatTimestamp(conv.CreatedAt))
		fmt.Fprintf(&sb, "- **Last Updated**: %s\n", formatTimestamp(conv.UpdatedAt))
		fmt.Fprintf(&sb, "- **Messages**: %d\n", len(conv.Messages))
		sb.WriteString("\n---\n\n")
	}

	for i, msg := range conv.Messages {
		label := e.formatRoleLabel(lang, msg)
		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, formatShortTimestamp(msg.Timestamp))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}

		sb.WriteString(strings.TrimSpace(msg.Content))
		sb.WriteString("\n\n")

		if e.options.IncludeVehicles && msg.HasVehicles() {
			sb.WriteString(formatVehicles(lang, msg.Vehicles))
			sb.WriteString("\n")
		}

		if i < len(conv.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func (e *MarkdownExporter) formatRoleLabel(lang locale.Language, msg *model.Message) string {
	switch {
	case msg.Role == model.RoleUser:
		return locale.T(lang, "chat.you")
	case msg.IsError:
		return locale.T(lang, "chat.assistant") + " (error)"
	default:
		return locale.T(lang, "chat.assistant")
	}
}

// formatVehicles renders the result list as a table.
func formatVehicles(lang locale.Language, vehicles []vehicle.Vehicle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", locale.T(lang, "results.found", len(vehicles)))
	fmt.Fprintf(&sb, "| # | ID | %s | %s | %s | %s | %s |\n",
		locale.T(lang, "details.title"),
		locale.T(lang, "details.price"),
		locale.T(lang, "details.year"),
		locale.T(lang, "details.fuel"),
		locale.T(lang, "details.mileage"),
	)
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	for i := range vehicles {
		v := &vehicles[i]
		fmt.Fprintf(&sb, "| %d | %d | %s | %s | %s | %s | %s |\n",
			i+1, v.ID,
			escapeTableCell(v.Title()),
			v.PriceText(lang),
			v.YearText(lang),
			escapeTableCell(vehicle.Text(lang, v.FuelType)),
			v.MileageText(lang),
		)
	}
	return sb.String()
}

func countVehicles(conv *model.Conversation) int {
	n := 0
	for _, msg := range conv.Messages {
		n += len(msg.Vehicles)
	}
	return n
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	r := strings.NewReplacer(
		"#", "\\#",
		"*", "\\*",
		"_", "\\_",
		"[", "\\[",
		"]", "\\]",
		"\n", " ",
	)
	return r.Replace(s)
}

func escapeTableCell(s string) string {
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(s)
}
