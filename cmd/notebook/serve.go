// ABOUTME: Serve command running the REST API and optional static front end.
// ABOUTME: Shuts down gracefully on SIGINT or SIGTERM.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/notebook/internal/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serve the notebook REST API under /api/. With --static, files from that directory are served at /.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("static") {
			cfg.StaticDir, _ = cmd.Flags().GetString("static")
		}

		opts := []api.Option{api.WithLogger(logger)}
		if cfg.StaticDir != "" {
			info, err := os.Stat(cfg.StaticDir)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("static dir %q is not a directory", cfg.StaticDir)
			}
			opts = append(opts, api.WithStaticDir(cfg.StaticDir))
		}

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           api.New(svc, opts...).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", cfg.Addr, "static", cfg.StaticDir)
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().String("static", "", "directory of static files to serve at /")
	rootCmd.AddCommand(serveCmd)
}
