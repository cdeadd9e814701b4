package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/installment-calculator/internal/config"
	"github.com/iwvelando/installment-calculator/internal/server"
	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) newServeCmd() *cobra.Command {
	var (
		serverConfigPath string
		address          string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plan calculator as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("address") {
				cfg.Address = address
			}

			// Server logging settings, when present, replace the calculator's.
			logger := c.logger
			if cfg.Logging != (config.LoggingConfig{}) {
				logger, err = initializeLogger(cfg.Logging, c.logLevel)
				if err != nil {
					return fmt.Errorf("failed to initialize server logger: %w", err)
				}
				defer func() {
					_ = logger.Sync()
				}()
			}

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting server",
				zap.String("op", "main.serve"),
				zap.String("address", cfg.Address),
				zap.String("version", version),
			)
			return server.Run(ctx, logger, cfg, version)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", constants.DefaultServerAddress, "listen address override")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
