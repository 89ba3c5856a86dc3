package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	blog "github.com/goliatone/go-blog"
	"github.com/spf13/cobra"
)

const timeRounding = time.Millisecond

var (
	serveAddr    string
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Builds the site and serves it locally, rebuilding on changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		if serveNoWatch {
			cfg.Server.Watch = false
		}

		module, err := blog.New(cfg)
		if err != nil {
			return err
		}

		result, err := module.Build(cmd.Context(), blog.BuildOptions{})
		if err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d pages in %s\n", result.PagesBuilt, result.Duration.Round(timeRounding))
		fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", cfg.Generator.OutputDir, cfg.Server.Addr)

		ctx, stop := signal.NotifyContext(contextOrBackground(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return module.PreviewServer().Start(ctx)
	},
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to the configured server address)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "disable source watching and rebuilds")
}
