// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/carchat/internal/chat"
	"github.com/jeranaias/carchat/internal/config"
	"github.com/jeranaias/carchat/internal/vehicle"
	uichat "github.com/jeranaias/carchat/internal/ui/chat"
)

// runTUI starts the full-screen interface. resume, when set, is the id (or
// id prefix) of a saved conversation to continue.
func (a *app) runTUI(ctx context.Context, resume string) error {
	if !IsTTY() {
		return errors.New("stdin is not a terminal; use 'carchat ask' or 'carchat chat' instead")
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	ctrl := chat.New(client, a.lang).WithLogger(a.logger)

	opts := uichat.Options{
		Theme:      a.theme(),
		Markdown:   a.cfg.UI.Markdown,
		ShowScores: a.cfg.UI.ShowScores,
		Logger:     a.logger,
	}

	store, err := a.openStore()
	switch {
	case err == nil:
		defer store.Close()
		opts.Store = store
		ctrl.SetOpenCallback(func(v *vehicle.Vehicle) {
			if err := store.RecordView(ctx, v); err != nil {
				a.logger.Warn("record view", zap.Int64("id", v.ID), zap.Error(err))
			}
		})
		if resume != "" {
			conv, err := store.Load(ctx, resume)
			if err != nil {
				return fmt.Errorf("resume %s: %w", resume, err)
			}
			if err := ctrl.Load(conv); err != nil {
				return err
			}
		}
	case resume != "":
		return fmt.Errorf("resume %s: %w", resume, err)
	case !errors.Is(err, errStorageDisabled):
		a.logger.Warn("storage unavailable", zap.Error(err))
	}

	p := tea.NewProgram(uichat.New(ctx, ctrl, opts), tea.WithAltScreen())

	if w := a.watchConfig(p); w != nil {
		defer w.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	if store != nil && ctrl.Dirty() {
		conv := ctrl.Conversation()
		if conv.IsEmpty() {
			return nil
		}
		if err := store.Save(context.Background(), conv); err != nil {
			return fmt.Errorf("save conversation: %w", err)
		}
		ctrl.MarkSaved()
		a.logger.Info("conversation saved on exit", zap.String("id", conv.ID))
	}
	return nil
}

// watchConfig reloads the config file while the program runs and pushes
// language changes into it. A language forced with --lang is kept.
func (a *app) watchConfig(p *tea.Program) *config.Watcher {
	if a.cfgPath == "" {
		return nil
	}
	w, err := config.NewWatcher(a.cfgPath)
	if err != nil {
		a.logger.Warn("config watcher", zap.Error(err))
		return nil
	}
	w.WithLogger(a.logger)
	w.Subscribe(func(cfg *config.Config) {
		config.SetGlobal(cfg)
		if a.flags.lang != "" {
			return
		}
		p.Send(uichat.LanguageChangedMsg{Language: cfg.UI.ResolveLanguage()})
	})
	if err := w.Start(); err != nil {
		a.logger.Debug("config watcher not started", zap.Error(err))
		w.Close()
		return nil
	}
	return w
}
