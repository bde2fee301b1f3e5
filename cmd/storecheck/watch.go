package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"creator-store-check/internal/runner"
	"creator-store-check/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the checks, then re-run whenever a store file or the catalog changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			r := runner.New(a.cfg, a.logger)

			if _, err := r.Run(ctx, runner.Options{Console: out}); err != nil {
				return err
			}

			w, err := a.newWatcher(r, out)
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				return err
			}
			a.logger.Info("watching for changes; press Ctrl+C to stop")
			<-ctx.Done()
			w.Stop()
			return nil
		},
	}
}

// newWatcher re-runs r on every settled change. console may be nil.
func (a *app) newWatcher(r *runner.Runner, console io.Writer) (*watch.Watcher, error) {
	debounce, err := a.cfg.DebounceDuration()
	if err != nil {
		return nil, err
	}
	return watch.New(watch.Targets(a.cfg), debounce, func(ctx context.Context, changed []string) {
		a.logger.Info("change detected", zap.Strings("files", changed))
		if _, err := r.Run(ctx, runner.Options{Console: console}); err != nil {
			a.logger.Error("run failed", zap.Error(err))
		}
	}, a.logger)
}
