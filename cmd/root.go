package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openeyemedia/climate-api/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "climate-api",
	Short: "Climate resilience analysis engine",
	Long:  "Aggregates live weather, historical archive, and climate model data into per-location resilience analyses, degrading to geographic estimates when upstreams fail.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
