// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/iwvelando/installment-calculator/pkg/datetime"
	"github.com/iwvelando/installment-calculator/pkg/installment"
	"github.com/iwvelando/installment-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for installment-calculator.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	TUI      TUIConfig      `yaml:"tui,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// DefaultsConfig holds the plan inputs used when none are given on the
// command line or in the terminal form.
type DefaultsConfig struct {
	CashPrice string `yaml:"cashPrice,omitempty"` // raw text, coerced like user input
	Weeks     int    `yaml:"weeks,omitempty"`
	StartDate string `yaml:"startDate,omitempty"` // YYYY-MM-DD
}

// TUIConfig holds terminal form settings.
type TUIConfig struct {
	Theme string `yaml:"theme,omitempty"` // flexoki-dark, terminal
}

var defaults = map[string]interface{}{
	"logging.level":      "",
	"logging.format":     "",
	"logging.outputFile": "",
	"output.format":      constants.OutputFormatPretty,
	"defaults.cashPrice": "",
	"defaults.weeks":     constants.DefaultTermWeeks,
	"defaults.startDate": "",
	"tui.theme":          "flexoki-dark",
}

// DefaultConfiguration returns the configuration used when no file is loaded.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Output:   OutputConfig{Format: constants.OutputFormatPretty},
		Defaults: DefaultsConfig{Weeks: constants.DefaultTermWeeks},
		TUI:      TUIConfig{Theme: "flexoki-dark"},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with INSTALLMENT_
// override file values, e.g. INSTALLMENT_LOGGING_LEVEL=debug.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// LoadEnvironment returns the default configuration with INSTALLMENT_
// environment overrides applied, for running without a config file.
func LoadEnvironment() (*Configuration, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing here is fatal; the command line can still
// override every value.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown logging level %q", c.Logging.Level))
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown logging format %q", c.Logging.Format))
	}

	if c.Defaults.Weeks != 0 {
		warning, err := validation.ValidateTerm(c.Defaults.Weeks)
		if err != nil {
			warnings = append(warnings, "default weeks: "+err.Error())
		} else if warning != "" {
			warnings = append(warnings, "default weeks: "+warning)
		}
	}

	if _, err := datetime.ParseOptionalDate(c.Defaults.StartDate); err != nil {
		warnings = append(warnings, "default start date: "+err.Error())
	}

	return warnings
}

// PlanInput builds the plan input described by the configured defaults.
// An unset term falls back to constants.DefaultTermWeeks; a term outside
// 1..constants.MaxTermWeeks is an error.
func (c *Configuration) PlanInput() (installment.PlanInput, error) {
	weeks := c.Defaults.Weeks
	if weeks == 0 {
		weeks = constants.DefaultTermWeeks
	}
	if _, err := validation.ValidateTerm(weeks); err != nil {
		return installment.PlanInput{}, fmt.Errorf("invalid default weeks: %w", err)
	}

	start, err := datetime.ParseOptionalDate(c.Defaults.StartDate)
	if err != nil {
		return installment.PlanInput{}, fmt.Errorf("invalid default start date: %w", err)
	}

	return installment.PlanInput{
		CashPrice: installment.ParseCashPrice(c.Defaults.CashPrice),
		Term:      weeks,
		StartDate: start,
	}, nil
}
