package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/uldk-cli/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the geometry cache",
}

var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the cache schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openConfiguredStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}
		zap.L().Info("cache schema up to date", zap.String("driver", cfg.Store.Driver))
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openConfiguredStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.DeleteExpired(cmd.Context())
		if err != nil {
			return err
		}
		zap.L().Info("pruned cache", zap.Int64("deleted", n))
		return nil
	},
}

func openConfiguredStore(cmd *cobra.Command) (store.Store, error) {
	dsn := cfg.Store.Path
	if cfg.Store.Driver == "postgres" {
		dsn = cfg.Store.DatabaseURL
	}
	st, err := store.Open(cmd.Context(), cfg.Store.Driver, dsn)
	if err != nil {
		return nil, eris.Wrap(err, "open cache store")
	}
	return st, nil
}

func init() {
	cacheCmd.AddCommand(cacheMigrateCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}
