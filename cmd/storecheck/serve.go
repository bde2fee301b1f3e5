package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"creator-store-check/internal/runner"
	"creator-store-check/internal/server"
	"creator-store-check/internal/watch"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr      string
		withWatch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports over HTTP and run the checks on demand",
		Long: `Starts an HTTP server with:

  GET  /healthz   liveness
  GET  /report    latest report
  GET  /history   recorded run index
  POST /run       run the checks now

With --watch the checks also re-run when store files change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}
			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			r := runner.New(a.cfg, a.logger)
			if _, err := r.Run(cmd.Context(), runner.Options{}); err != nil {
				a.logger.Warn("initial run failed", zap.Error(err))
			}
			router := server.NewRouter(server.NewHandler(r, a.cfg.HistoryDir(), a.logger))

			var w *watch.Watcher
			if withWatch {
				var err error
				if w, err = a.newWatcher(r, nil); err != nil {
					return err
				}
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return server.Serve(ctx, addr, router, a.logger)
			})
			if w != nil {
				g.Go(func() error {
					if err := w.Start(ctx); err != nil {
						return err
					}
					<-ctx.Done()
					w.Stop()
					return nil
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8085)")
	cmd.Flags().BoolVar(&withWatch, "watch", false, "Also re-run the checks when store files change")
	return cmd
}
