package main

import (
	"batchstamp/internal/config"
	"batchstamp/pkg/logger"
	"batchstamp/pkg/storage"
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCommand constructs the 'migrate' subcommand that creates the batch
// metadata schema using goose.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the batch metadata database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			if err := storage.Migrate(ctx, strg.DB, strg.Dialect); err != nil {
				logger.Fatal(ctx, "could not migrate batch database", zap.Error(err))
			}

			logger.Info(ctx, "batch database migrated", zap.String("dialect", strg.Dialect))
		},
	}

	return cmd
}
