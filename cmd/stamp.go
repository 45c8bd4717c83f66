package main

import (
	"batchstamp/internal/config"
	"batchstamp/internal/persister"
	"batchstamp/internal/script"
	"batchstamp/pkg/batchxml"
	"batchstamp/pkg/logger"
	"batchstamp/pkg/metrics"
	"batchstamp/pkg/storage"
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// registry builds the statically registered enrichment scripts.
func registry(batches storage.BatchStorage, cfg *config.Config, inst *metrics.Instruments) (*script.Registry, error) {
	p := persister.New(persister.Options{
		SurfaceErrors: cfg.Persistence.SurfaceErrors,
		Instruments:   inst,
	})

	return script.NewRegistry(
		script.NewScanDate(storage.WithTimeout(batches, cfg.LookupTimeout), p, script.ScanDateOptions{
			Instruments: inst,
		}),
	)
}

// stampCommand constructs the 'stamp' subcommand. It loads a batch xml (plain
// or zipped), runs an enrichment script against it and writes metrics.
func stampCommand(cfg *config.Config) *cobra.Command {
	var scriptName string

	cmd := &cobra.Command{
		Use:   "stamp <batch xml path>",
		Short: "Runs an enrichment script against a batch xml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid past this point; failures are not usage mistakes
			cmd.SilenceUsage = true

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			provider, err := metrics.Setup()
			if err != nil {
				return err
			}
			defer func() {
				if err := provider.Shutdown(context.Background()); err != nil {
					logger.Warn(ctx, "could not shutdown metrics", zap.Error(err))
				}
			}()

			inst, err := metrics.NewInstruments(provider)
			if err != nil {
				return err
			}

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			scripts, err := registry(strg, cfg, inst)
			if err != nil {
				return err
			}
			s, err := scripts.Get(scriptName)
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, scripts.Names())
			}

			doc, err := batchxml.Load(args[0])
			if err != nil {
				return err
			}

			runErr := s.Execute(ctx, doc)

			if cfg.Metrics.TextfilePath != "" {
				if err := provider.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
					logger.Warn(ctx, "could not write metrics", zap.Error(err))
				}
			}

			if runErr != nil {
				return runErr
			}
			logger.Info(ctx, "script finished", zap.String("script", s.Name()), zap.String("path", args[0]))

			return nil
		},
	}

	cmd.Flags().StringVarP(&scriptName, "script", "s", script.ScanDateName, "Name of the enrichment script to run")

	return cmd
}
