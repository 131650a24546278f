package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	apperrors "github.com/repotour/repotour/internal/errors"
	"github.com/repotour/repotour/internal/logging"
	"github.com/repotour/repotour/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the RepoTour web UI",
	Long: `Starts a local web server with the RepoTour interface: enter a
repository, pick summary or tour mode, and browse the result in tabs.

Examples:
  rtour serve
  rtour serve --port 9000 --open`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default from config)")
	serveCmd.Flags().Bool("open", false, "open the UI in the default browser")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := logging.Initialize(logging.DefaultConfig(verbose)); err != nil {
		logger.WithError(err).Warn("File logging unavailable, continuing with stderr only")
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Web.Port
	}
	if !web.CheckPortAvailable(port) {
		return apperrors.Newf(apperrors.KindConfig, "port %d is already in use", port)
	}

	pipeline, err := newPipeline(ctx)
	if err != nil {
		return err
	}

	server := web.NewServer(pipeline, cfg, port)

	if open, _ := cmd.Flags().GetBool("open"); open {
		go func() {
			time.Sleep(300 * time.Millisecond)
			if err := browser.OpenURL(fmt.Sprintf("http://localhost:%d", port)); err != nil {
				logger.WithError(err).Warn("Failed to open browser")
			}
		}()
	}

	fmt.Printf("RepoTour web UI: http://localhost:%d (Ctrl+C to stop)\n", port)
	return server.Start(ctx)
}
