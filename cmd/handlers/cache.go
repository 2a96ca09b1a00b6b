package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsdesk/internal/config"
	"newsdesk/internal/store"
)

// NewCacheCmd creates the cache command with its subcommands
func NewCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the content cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(config.GetCacheDirectory())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			stats, err := st.GetCacheStats()
			if err != nil {
				return err
			}

			fmt.Println("Cache statistics:")
			for contentType, count := range stats.EntriesByType {
				fmt.Printf("  %-16s %d entries\n", contentType, count)
			}
			fmt.Printf("  %-16s %d\n", "runs", stats.RunCount)
			fmt.Printf("  %-16s %.1f KB\n", "size", float64(stats.CacheSize)/1024)
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(config.GetCacheDirectory())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			removed, err := st.CleanupExpired()
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d expired entries\n", removed)
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached content and run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(config.GetCacheDirectory())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.ClearCache(); err != nil {
				return err
			}
			fmt.Println("Cache cleared")
			return nil
		},
	})

	return cacheCmd
}
