package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsdesk/internal/config"
)

// NewRefreshCmd creates the refresh command
func NewRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Run one refresh cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			p, st, err := buildPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			run := p.Run(cmd.Context())
			if run.Skipped {
				fmt.Println("Skipped: another refresh run holds the lock")
				return nil
			}

			fmt.Printf("Run %s: %d sources succeeded, %d failed", run.RequestID, run.Successful, run.Failed)
			if len(run.MissingEnvs) > 0 {
				fmt.Printf(", %d providers unconfigured", len(run.MissingEnvs))
			}
			fmt.Println()
			for _, src := range run.Sources {
				status := "ok"
				if !src.Success {
					status = "failed: " + src.Error
				}
				fmt.Printf("  %-18s %5dms  %3d candidates  %s\n", src.Source, src.DurationMs, src.Candidates, status)
			}
			return nil
		},
	}
}
