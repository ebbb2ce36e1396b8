// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/carchat/internal/config"
	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/logging"
	"github.com/jeranaias/carchat/internal/search"
	"github.com/jeranaias/carchat/internal/storage"
	"github.com/jeranaias/carchat/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var errorLabel = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	lang       string
	configPath string
	verbose    bool
}

// app carries what PersistentPreRunE builds for the command being run.
type app struct {
	flags globalFlags

	cfg     *config.Config
	cfgPath string
	lang    locale.Language
	logger  *zap.Logger
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the carchat command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	var resume string

	root := &cobra.Command{
		Use:   "carchat",
		Short: "Find your next car by describing it",
		Long: `carchat is a terminal chat for searching vehicles in plain language.

Describe the car you want ("a hybrid SUV under 30,000 euro") and carchat
shows the matching listings. Ask about a listing to open its detail card.

Run without arguments to start the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context(), resume)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.lang, "lang", "l", "", "interface language (it, en, es, fr, de)")
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "config file (default ~/.carchat/config.toml)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")
	root.Flags().StringVar(&resume, "resume", "", "resume a saved conversation by id")

	root.AddCommand(
		newAskCmd(a),
		newDetailsCmd(a),
		newChatCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newLanguagesCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorLabel.Render("Error:"), err)
		return 1
	}
	return 0
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads the configuration, resolves the language and starts logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, path, err := loadConfig(a.flags.configPath)
	if err != nil {
		return err
	}
	config.SetGlobal(cfg)
	a.cfg = cfg
	a.cfgPath = path

	a.lang = cfg.UI.ResolveLanguage()
	if a.flags.lang != "" {
		lang, err := locale.Parse(a.flags.lang)
		if err != nil {
			return err
		}
		a.lang = lang
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Path:    logPath,
		Verbose: a.flags.verbose,
	})
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	a.logger.Debug("starting",
		zap.String("version", Version),
		zap.String("config", path),
		zap.String("lang", a.lang.String()))

	configureOutput(cmd.OutOrStdout())
	return nil
}

// loadConfig reads path, or the default config file when path is empty.
// A missing file yields the defaults with environment overrides applied.
func loadConfig(path string) (*config.Config, string, error) {
	exists := false
	if path == "" {
		found, ok, err := config.FindPath()
		if err != nil {
			return nil, "", err
		}
		path, exists = found, ok
	} else if _, err := os.Stat(path); err == nil {
		exists = true
	}

	if exists {
		cfg, err := config.LoadFromPath(path)
		return cfg, path, err
	}

	cfg := config.Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, path, nil
}

// newClient builds the search client from the backend settings.
func (a *app) newClient() (*search.Client, error) {
	b := a.cfg.Backend
	client := search.New(b.URL, b.AnonKey).
		WithFunction(b.Function).
		WithTimeout(b.Timeout()).
		WithMaxRetries(b.MaxRetries).
		WithRateLimit(b.RequestsPerSecond).
		WithLogger(a.logger)
	if !client.IsConfigured() {
		return nil, fmt.Errorf("%w: set backend.url and backend.anon_key (or CARCHAT_URL and CARCHAT_ANON_KEY)",
			search.ErrNotConfigured)
	}
	return client, nil
}

// errStorageDisabled is returned by commands that need saved sessions.
var errStorageDisabled = errors.New("storage is disabled (storage.enabled = false)")

// openStore opens the session database. It returns errStorageDisabled when
// storage is turned off.
func (a *app) openStore() (*storage.ConversationStore, error) {
	if !a.cfg.Storage.Enabled {
		return nil, errStorageDisabled
	}
	path, err := a.cfg.StoragePath()
	if err != nil {
		return nil, err
	}
	return storage.Open(path, a.cfg.Storage.MaxConversations)
}

// theme returns the configured color theme.
func (a *app) theme() *styles.Theme {
	mode, err := styles.ParseMode(a.cfg.UI.Theme)
	if err != nil {
		a.logger.Warn("unknown theme, using auto", zap.String("theme", a.cfg.UI.Theme))
		mode = styles.ModeAuto
	}
	return styles.NewTheme(mode)
}
