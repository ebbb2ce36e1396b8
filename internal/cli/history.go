// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/carchat/internal/export"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/storage"
	"github.com/jeranaias/carchat/internal/util"
)

// =============================================================================
// HISTORY
// =============================================================================

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"sessions"},
		Short:   "Manage saved conversations",
	}
	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistoryShowCmd(a),
		newHistoryDeleteCmd(a),
		newHistoryExportCmd(a),
		newHistoryViewedCmd(a),
	)
	return cmd
}

// withStore opens the session database for the duration of fn.
func (a *app) withStore(fn func(*storage.ConversationStore) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newHistoryListCmd(a *app) *cobra.Command {
	var query string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved conversations, newest first",
		Example: `  carchat history list
  carchat history list --search suv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *storage.ConversationStore) error {
				ctx := cmd.Context()
				metas, err := store.List(ctx)
				if query != "" {
					metas, err = store.Search(ctx, query)
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return a.newPrinter(out).json(metas)
				}
				fmt.Fprint(out, storage.FormatSessionList(metas))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "only conversations whose title or messages contain text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved conversation",
		Long: `Prints a saved conversation. The id may be a unique prefix of the id
shown by 'history list', or "last".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *storage.ConversationStore) error {
				conv, err := loadConversation(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				opts := export.DefaultOptions()
				opts.IncludeMetadata = false
				data, err := export.NewMarkdownExporter(opts).Export(conv)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				p := a.newPrinter(out)
				if p.markdown.Enabled() {
					fmt.Fprint(out, p.markdown.Render(string(data), p.width))
					return nil
				}
				fmt.Fprint(out, string(data))
				return nil
			})
		},
	}
}

func newHistoryDeleteCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved conversation",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *storage.ConversationStore) error {
				out := cmd.OutOrStdout()
				if all {
					if err := store.Clear(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(out, "All conversations deleted.")
					return nil
				}
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %s.\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "delete every saved conversation")
	return cmd
}

func newHistoryExportCmd(a *app) *cobra.Command {
	var (
		format    string
		outputDir string
		open      bool
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved conversation to Markdown or JSON",
		Example: `  carchat history export 3f2a
  carchat history export last --format json --output ~/Documents`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return a.withStore(func(store *storage.ConversationStore) error {
				conv, err := loadConversation(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				opts := export.DefaultOptions()
				opts.OutputDir = outputDir
				opts.OpenAfterExport = open
				path, err := export.ExportConversation(conv, f, opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "md or json")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&open, "open", false, "open the file after exporting")
	return cmd
}

func newHistoryViewedCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "viewed",
		Short: "List recently opened vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *storage.ConversationStore) error {
				views, err := store.RecentViews(cmd.Context(), limit)
				if err != nil {
					return err
				}
				writeViews(cmd.OutOrStdout(), a, views)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}

func writeViews(out io.Writer, a *app, views []storage.ViewedVehicle) {
	if len(views) == 0 {
		fmt.Fprintln(out, "No vehicles viewed yet.")
		return
	}
	for _, vv := range views {
		v := vv.Vehicle
		fmt.Fprintf(out, "%s %s %s %s\n",
			vv.ViewedAt.Format("2006-01-02 15:04"),
			util.PadRight(fmt.Sprintf("#%d", v.ID), 8),
			util.PadRight(v.PriceText(a.lang), 12),
			strings.TrimSpace(v.Title()))
	}
}

// loadConversation resolves id as an id prefix, or "last" for the most
// recently updated conversation.
func loadConversation(ctx context.Context, store *storage.ConversationStore, id string) (*model.Conversation, error) {
	if strings.EqualFold(id, "last") {
		return store.LoadByIndex(ctx, 0)
	}
	return store.Load(ctx, id)
}
