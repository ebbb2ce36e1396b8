// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-oriented chat for terminals without full-screen support.
//
// Interactive commands:
//   /help, /h           Show available commands
//   /open N             Open the detail card of result N
//   /lang [code]        Show or switch the language
//   /new                Start a new conversation
//   /save               Save the conversation
//   /export [md|json]   Export the conversation to a file
//   /quit, /q           Exit (Ctrl+D also works)

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/carchat/internal/chat"
	"github.com/jeranaias/carchat/internal/config"
	"github.com/jeranaias/carchat/internal/export"
	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// historyFileName is the REPL input history file in the config directory.
const historyFileName = "chat_history"

// errQuit ends the REPL loop.
var errQuit = errors.New("quit")

// replCommands lists the slash commands for help and completion.
var replCommands = map[string]string{
	"/help":   "show this help",
	"/open":   "/open N - show the detail card of result N",
	"/lang":   "/lang [code] - show or switch the language",
	"/new":    "start a new conversation",
	"/save":   "save the conversation",
	"/export": "/export [md|json] - export the conversation to a file",
	"/quit":   "exit",
}

// =============================================================================
// COMMAND
// =============================================================================

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-oriented chat session",
		Long: `Starts an interactive chat in the current terminal without taking over
the screen. Type a request, or a slash command such as /open 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			r := a.newRepl(client, cmd.OutOrStdout())
			defer r.close()
			return r.run(cmd.Context())
		},
	}
}

// =============================================================================
// REPL STATE
// =============================================================================

// repl is one chat session on a plain terminal.
type repl struct {
	ctrl   *chat.Controller
	store  sessionStore
	out    io.Writer
	p      *printer
	logger *zap.Logger

	exportDir string
}

// sessionStore is the part of the session database the REPL uses.
type sessionStore interface {
	Save(ctx context.Context, conv *model.Conversation) error
	Close() error
}

func (a *app) newRepl(s chat.Searcher, out io.Writer) *repl {
	r := &repl{
		ctrl:   chat.New(s, a.lang).WithLogger(a.logger),
		out:    out,
		p:      a.newPrinter(out),
		logger: a.logger,
	}
	store, err := a.openStore()
	switch {
	case err == nil:
		r.store = store
		r.ctrl.SetOpenCallback(func(v *vehicle.Vehicle) {
			if err := store.RecordView(context.Background(), v); err != nil {
				r.logger.Warn("record view", zap.Error(err))
			}
		})
	case !errors.Is(err, errStorageDisabled):
		a.logger.Warn("storage unavailable", zap.Error(err))
	}
	return r
}

// close saves a pending conversation and releases the store.
func (r *repl) close() {
	if r.store == nil {
		return
	}
	if r.ctrl.Dirty() && !r.ctrl.Conversation().IsEmpty() {
		if err := r.save(context.Background()); err != nil {
			r.logger.Warn("save on exit", zap.Error(err))
		}
	}
	r.store.Close()
}

// =============================================================================
// LOOP
// =============================================================================

func (r *repl) run(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)

	historyFile := ""
	if dir, err := config.ConfigDir(); err == nil {
		historyFile = filepath.Join(dir, historyFileName)
		if f, err := os.Open(historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer saveHistory(line, historyFile)
	}

	lang := r.ctrl.Language()
	fmt.Fprintln(r.out, r.p.theme.HeaderTitle.Render(locale.T(lang, "app.title")))
	fmt.Fprintln(r.out, locale.T(lang, "chat.greeting"))
	r.p.info("%s  (/help)", locale.T(lang, "chat.start_hint"))

	for {
		if ctx.Err() != nil {
			return nil
		}
		input, err := line.Prompt("> ")
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.out)
			return nil
		case err != nil:
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		if err := r.handle(ctx, input); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(r.out, r.p.theme.ErrorStyle.Render(err.Error()))
		}
	}
}

func saveHistory(line *liner.State, path string) {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}

// completeCommand completes slash commands.
func completeCommand(input string) []string {
	if !strings.HasPrefix(input, "/") {
		return nil
	}
	var out []string
	for name := range replCommands {
		if strings.HasPrefix(name, input) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// =============================================================================
// COMMANDS
// =============================================================================

// handle runs one line of input. Plain text is sent as a search.
func (r *repl) handle(ctx context.Context, input string) error {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return r.search(ctx, input)
	}

	fields := strings.Fields(input)
	name, args := fields[0], fields[1:]
	switch name {
	case "/help", "/h":
		r.help()
	case "/quit", "/q", "/exit":
		return errQuit
	case "/open", "/o":
		return r.open(ctx, args)
	case "/lang":
		return r.language(args)
	case "/new":
		if err := r.ctrl.Clear(); err != nil {
			return err
		}
		r.p.info("%s", locale.T(r.ctrl.Language(), "session.cleared"))
	case "/save":
		if err := r.save(ctx); err != nil {
			return errors.New(locale.T(r.ctrl.Language(), "session.save_failed", err.Error()))
		}
		r.p.info("%s", locale.T(r.ctrl.Language(), "session.saved", r.ctrl.Conversation().GetTitle()))
	case "/export":
		return r.export(args)
	default:
		return fmt.Errorf("unknown command %s (try /help)", name)
	}
	return nil
}

func (r *repl) search(ctx context.Context, text string) error {
	r.p.info("%s", locale.T(r.ctrl.Language(), "chat.searching"))
	reply, err := r.ctrl.Submit(ctx, text)
	if err != nil {
		return err
	}
	r.p.lang = r.ctrl.Language()
	r.p.reply(reply)
	if v := r.ctrl.OpenedVehicle(); v != nil {
		r.p.details(v)
		r.ctrl.CloseVehicle()
	}
	return nil
}

func (r *repl) open(ctx context.Context, args []string) error {
	vehicles := r.ctrl.LastVehicles()
	if len(args) != 1 {
		return errors.New("usage: /open N")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(vehicles) {
		return fmt.Errorf("no result #%s", args[0])
	}

	v, err := r.ctrl.OpenVehicle(ctx, vehicles[n-1].ID)
	if err != nil {
		return errors.New(locale.T(r.ctrl.Language(), "chat.details_error"))
	}
	r.p.details(v)
	r.ctrl.CloseVehicle()
	return nil
}

func (r *repl) language(args []string) error {
	if len(args) == 0 {
		current := r.ctrl.Language()
		for _, info := range locale.All() {
			mark := " "
			if info.Code == current {
				mark = "✓"
			}
			fmt.Fprintf(r.out, "%s %s %s  %s\n", mark, info.Flag, info.Code, info.Name)
		}
		return nil
	}
	lang, err := locale.Parse(args[0])
	if err != nil {
		return err
	}
	if err := r.ctrl.SetLanguage(lang); err != nil {
		return err
	}
	r.p.lang = lang
	r.p.info("%s", locale.T(lang, "session.language", lang.Info().Name))
	return nil
}

func (r *repl) save(ctx context.Context) error {
	if r.store == nil {
		return errStorageDisabled
	}
	conv := r.ctrl.Conversation()
	if conv.IsEmpty() {
		return export.ErrEmptyConversation
	}
	if err := r.store.Save(ctx, conv); err != nil {
		return err
	}
	r.ctrl.MarkSaved()
	return nil
}

func (r *repl) export(args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	opts := export.DefaultOptions()
	if r.exportDir != "" {
		opts.OutputDir = r.exportDir
	}
	path, err := export.ExportConversation(r.ctrl.Conversation(), format, opts)
	if err != nil {
		return err
	}
	r.p.info("exported to %s", path)
	return nil
}

func (r *repl) help() {
	names := make([]string, 0, len(replCommands))
	for name := range replCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "  %-8s %s\n", name, replCommands[name])
	}
}
