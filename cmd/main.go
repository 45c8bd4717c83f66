// Package main provides the CLI entrypoint for batchstamp.
// It wires subcommands (stamp, migrate), loads configuration, and initializes logging.
package main

import (
	"batchstamp/internal/config"
	"batchstamp/pkg/logger"
	"batchstamp/pkg/storage"
	"batchstamp/pkg/storage/postgres"
	"batchstamp/pkg/storage/sqlite"
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// store is a batch metadata store together with its database handle and the
// goose dialect used to migrate it.
type store struct {
	storage.Storage

	DB      *sql.DB
	Dialect string
}

// getStorage opens the configured batch metadata store and returns it along
// with a cleanup function closing it.
func getStorage(ctx context.Context, cfg *config.Config) (*store, func()) {
	var (
		s   *store
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		var db *sqlite.SQLite
		db, err = sqlite.New(ctx, sqlite.Options{
			Path:        cfg.Database.SQLitePath,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if err == nil {
			s = &store{Storage: db, DB: db.DB, Dialect: "sqlite3"}
		}
	default:
		var pgsql *postgres.PgSQL
		pgsql, err = postgres.New(ctx, postgres.Options{
			Username:           cfg.Database.Username,
			Password:           cfg.Database.Password,
			Host:               cfg.Database.Host,
			Port:               cfg.Database.Port,
			Database:           cfg.Database.DatabaseName,
			ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
			MaxOpenConnections: cfg.Database.MaxOpenConnections,
			MaxIdleConnections: cfg.Database.MaxIdleConnections,
			SslMode:            cfg.Database.SslMode,
		})
		if err == nil {
			s = &store{Storage: pgsql, DB: pgsql.DB, Dialect: "postgres"}
		}
	}
	if err != nil {
		logger.Fatal(ctx, "could not create batch storage",
			zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	return s, func() {
		logger.Debug(ctx, "closing batch storage...")
		if err := s.Close(); err != nil {
			logger.Warn(ctx, "could not close batch storage", zap.Error(err))
		}
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "batchstamp",
		Short: "Stamps batch creation dates onto extracted batch documents",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		migrateCommand(cfg),
		stampCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync(ctx)
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
