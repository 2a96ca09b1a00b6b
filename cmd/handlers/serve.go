package handlers

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newsdesk/internal/config"
	"newsdesk/internal/core"
	"newsdesk/internal/logger"
	"newsdesk/internal/server"
)

// refreshRunner is the part of the pipeline the scheduler drives.
type refreshRunner interface {
	Run(ctx context.Context) core.RefreshRun
}

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var refreshInterval string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP trigger endpoint (and optional scheduled refresh)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p, st, err := buildPipeline(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			interval := refreshInterval
			if interval == "" {
				interval = cfg.Pipeline.RefreshInterval
			}
			if interval != "" {
				d, err := time.ParseDuration(interval)
				if err != nil {
					return err
				}
				go runScheduler(ctx, d, p)
			}

			srv := server.New(p, st, cfg.Server)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&refreshInterval, "refresh-interval", "", "run a refresh on this interval (e.g. 30m); empty disables")
	return cmd
}

// runScheduler triggers a refresh on every tick. Overlapping triggers are
// turned away by the pipeline's single-flight lock.
func runScheduler(ctx context.Context, interval time.Duration, p refreshRunner) {
	logger.Info("Scheduled refresh enabled", "interval", interval.String())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run := p.Run(ctx)
			if run.Skipped {
				logger.Info("Scheduled refresh skipped; previous run still active")
			}
		}
	}
}
