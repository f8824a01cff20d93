package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openeyemedia/climate-api/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Cache maintenance",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := cache.Open(ctx, cfg.Cache.Driver, cfg.Cache.DatabaseURL)
		if err != nil {
			return err
		}
		if store == nil {
			zap.L().Info("cache disabled, nothing to purge")
			return nil
		}
		defer store.Close()

		purger, ok := store.(cache.Purger)
		if !ok {
			return eris.Errorf("cache driver %q does not support purge", cfg.Cache.Driver)
		}

		deleted, err := purger.Purge(ctx)
		if err != nil {
			return eris.Wrap(err, "purge cache")
		}
		zap.L().Info("cache purged", zap.Int64("deleted", deleted))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
