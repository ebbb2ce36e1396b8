// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/ui/components"
	"github.com/jeranaias/carchat/internal/ui/styles"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// printer writes chat output for the line-oriented commands.
type printer struct {
	out        io.Writer
	lang       locale.Language
	width      int
	showScores bool
	theme      *styles.Theme
	markdown   *components.Markdown
}

// newPrinter creates a printer for out. Markdown is only rendered when out
// is a terminal.
func (a *app) newPrinter(out io.Writer) *printer {
	theme := a.theme()
	width := terminalWidth(out)
	theme.SetSize(width, 0)
	return &printer{
		out:        out,
		lang:       a.lang,
		width:      width,
		showScores: a.cfg.UI.ShowScores,
		theme:      theme,
		markdown:   components.NewMarkdown(theme.GlamourStyle(), a.cfg.UI.Markdown && isTerminal(out)),
	}
}

// reply prints an assistant message and, when present, its result cards.
func (p *printer) reply(msg *model.Message) {
	switch {
	case msg.IsError:
		fmt.Fprintln(p.out, p.theme.ErrorStyle.Render(msg.Content))
	case p.markdown.Enabled():
		fmt.Fprintln(p.out, strings.TrimRight(p.markdown.Render(msg.Content, p.width), "\n"))
	default:
		fmt.Fprintln(p.out, msg.Content)
	}
	if msg.HasVehicles() {
		fmt.Fprintln(p.out)
		p.results(msg.Vehicles)
	}
}

// results prints numbered result cards.
func (p *printer) results(vehicles []vehicle.Vehicle) {
	list := components.NewResultList(vehicles, p.theme)
	list.Language = p.lang
	list.Width = p.width
	list.ShowScores = p.showScores
	fmt.Fprintln(p.out, list.View())
}

// details prints the detail card of v.
func (p *printer) details(v *vehicle.Vehicle) {
	d := components.NewDetailsView(v, p.theme)
	d.Language = p.lang
	d.Width = p.width
	fmt.Fprintln(p.out, d.View())
}

// json prints v as indented JSON, highlighted when colors are on.
func (p *printer) json(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	text := string(data)
	if colorsEnabled(p.out) {
		text = components.HighlightJSON(text)
	}
	fmt.Fprintln(p.out, text)
	return nil
}

// info prints a dimmed line.
func (p *printer) info(format string, args ...any) {
	fmt.Fprintln(p.out, p.theme.Hint.Render(fmt.Sprintf(format, args...)))
}
