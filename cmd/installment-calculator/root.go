package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/iwvelando/installment-calculator/internal/config"
	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// cli holds state shared by every subcommand once the root has loaded
// configuration and built the logger.
type cli struct {
	configPath string
	logLevel   string

	conf   *config.Configuration
	logger *zap.Logger
	now    func() time.Time
}

func newCLI() *cli {
	return &cli{now: time.Now, logger: zap.NewNop()}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:               "installment-calculator",
		Short:             "Weekly installment plan calculator",
		Long:              "Compute a 40% deposit and weekly installment schedule for a cash price.",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		c.newCalculateCmd(),
		c.newTermsCmd(),
		c.newServeCmd(),
		c.newTUICmd(),
	)
	return root
}

// setup loads .env, the configuration and the logger before any subcommand.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	conf, err := c.loadConfiguration(cmd)
	if err != nil {
		return err
	}
	c.conf = conf

	logger, err := initializeLogger(conf.Logging, c.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.setup"),
		)
	}
	return nil
}

// loadConfiguration reads the config file. A missing default config file is
// not an error; one named explicitly with --config is.
func (c *cli) loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	explicit := cmd.Flags().Changed("config")
	if _, err := os.Stat(c.configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return config.LoadEnvironment()
		}
		return nil, fmt.Errorf("failed to load configuration at %s: %w", c.configPath, err)
	}

	conf, err := config.LoadConfiguration(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", c.configPath, err)
	}
	return conf, nil
}

func (c *cli) sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}
