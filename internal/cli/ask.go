// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/carchat/internal/chat"
	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// maxDetailFetches bounds concurrent detail requests for ask --details.
const maxDetailFetches = 3

// =============================================================================
// ASK
// =============================================================================

type askOptions struct {
	json    bool
	details int
}

func newAskCmd(a *app) *cobra.Command {
	var opts askOptions
	cmd := &cobra.Command{
		Use:   "ask <request...>",
		Short: "Run one search and print the results",
		Long: `Sends a single request to the search function and prints the reply
and the matching vehicles.`,
		Example: `  carchat ask "hybrid SUV under 30000 euro"
  carchat ask --lang en --details 2 "small city car, automatic"
  carchat ask --json "diesel estate with tow bar"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the raw function response")
	cmd.Flags().IntVarP(&opts.details, "details", "d", 0, "also print the detail cards of the top N results")
	return cmd
}

func (a *app) runAsk(ctx context.Context, out io.Writer, text string, opts askOptions) error {
	client, err := a.newClient()
	if err != nil {
		return err
	}
	ctrl := chat.New(client, a.lang).WithLogger(a.logger)

	req, err := ctrl.Begin(text)
	if err != nil {
		return err
	}
	result, searchErr := ctrl.Search(ctx, req)
	reply, err := ctrl.Complete(result, searchErr)
	if err != nil {
		return err
	}

	p := a.newPrinter(out)
	if opts.json {
		if searchErr != nil {
			return searchErr
		}
		return p.json(result)
	}

	if reply.IsError {
		return errors.New(reply.Content)
	}
	p.reply(reply)
	if v := ctrl.OpenedVehicle(); v != nil {
		p.details(v)
		return nil
	}

	if opts.details <= 0 || len(result.Vehicles) == 0 {
		return nil
	}
	cards, err := fetchDetails(ctx, client, vehicle.IDs(result.Vehicles), opts.details)
	if err != nil {
		a.logger.Warn("fetch details", zap.Error(err))
		return errors.New(locale.T(a.lang, "chat.details_error"))
	}
	for _, v := range cards {
		p.details(v)
	}
	return nil
}

// fetchDetails loads the detail cards of the first n ids concurrently and
// returns them in id order.
func fetchDetails(ctx context.Context, s chat.Searcher, ids []int64, n int) ([]*vehicle.Vehicle, error) {
	if n > len(ids) {
		n = len(ids)
	}
	cards := make([]*vehicle.Vehicle, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDetailFetches)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			v, err := s.Details(gctx, ids[i])
			if err != nil {
				return fmt.Errorf("vehicle %d: %w", ids[i], err)
			}
			cards[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}

// =============================================================================
// DETAILS
// =============================================================================

func newDetailsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "details <vehicle-id>",
		Short:   "Print the detail card of one vehicle",
		Example: `  carchat details 4211`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid vehicle id %q", args[0])
			}
			return a.runDetails(cmd.Context(), cmd.OutOrStdout(), id, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the vehicle as JSON")
	return cmd
}

func (a *app) runDetails(ctx context.Context, out io.Writer, id int64, asJSON bool) error {
	client, err := a.newClient()
	if err != nil {
		return err
	}
	v, err := client.Details(ctx, id)
	if err != nil {
		a.logger.Warn("details", zap.Int64("id", id), zap.Error(err))
		if asJSON {
			return err
		}
		return errors.New(locale.T(a.lang, "chat.details_error"))
	}

	if store, err := a.openStore(); err == nil {
		if err := store.RecordView(ctx, v); err != nil {
			a.logger.Warn("record view", zap.Error(err))
		}
		store.Close()
	}

	p := a.newPrinter(out)
	if asJSON {
		return p.json(v)
	}
	p.details(v)
	return nil
}
