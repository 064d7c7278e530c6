// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Espyo/Pikifen-sub018/internal/content"
	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/observability"
)

// NewWatchCmd creates the watch subcommand.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Recompile mob types whenever their files change",
		Long: `Load the content directory, then reload it each time a matching file
changes and report script errors as they appear. With --metrics set,
reload counts and interpreter metrics are served on /metrics and
readiness on /healthz/readiness.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var ready atomic.Bool
			var metrics *observability.Metrics
			if e.cfg.Metrics.Addr != "" {
				srv := observability.NewServer(e.cfg.Metrics.Addr, ready.Load, e.logger)
				errCh, err := srv.Start()
				if err != nil {
					return fmt.Errorf("failed to start metrics server: %w", err)
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Stop(shutdownCtx)
				}()
				go func() {
					if err := <-errCh; err != nil {
						e.logger.Error("metrics server failed", "error", err)
						stop()
					}
				}()
				metrics = srv.Metrics()
			}

			out := cmd.OutOrStdout()
			onReload := func(types []*mob.Type, err error) {
				if metrics != nil {
					metrics.RecordReload(len(types), err)
				}
				failed := report(out, err)
				fmt.Fprintf(out, "%s loaded %d type(s), %d failed\n", time.Now().Format(time.TimeOnly), len(types), failed)
				ready.Store(true)
			}

			types, err := e.loader.LoadDir(ctx, e.cfg.Content.Dir, e.cfg.Content.Patterns)
			onReload(types, err)

			w, err := content.NewWatcher(e.loader, e.cfg.Content.Dir, e.cfg.Content.Patterns, onReload,
				content.WithDebounce(e.cfg.Content.Debounce),
				content.WithWatcherLogger(e.logger),
			)
			if err != nil {
				return err
			}
			w.Start(ctx)
			defer func() { _ = w.Close() }()

			<-ctx.Done()
			return nil
		},
	}
}
