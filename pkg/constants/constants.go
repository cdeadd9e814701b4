// Package constants provides shared constants for the installment-calculator application.
package constants

// DateLayout is the format expected for start dates in config files, CLI
// flags and API requests. It is also the machine-readable output date format.
const DateLayout = "2006-01-02"

// Display date layouts, matching the en-US long and short date styles.
const (
	// LongDateLayout renders e.g. "Monday, Jan 8, 2024"
	LongDateLayout = "Monday, Jan 2, 2006"

	// ShortDateLayout renders e.g. "Jan 8, 2024"
	ShortDateLayout = "Jan 2, 2006"
)

// Plan constants
const (
	// DepositRate is the fixed up-front share of the cash price
	DepositRate = "0.4"

	// DaysPerWeek is the number of calendar days in one installment period
	DaysPerWeek = 7

	// DefaultTermWeeks is the term selected when nothing else is configured
	DefaultTermWeeks = 4

	// MaxTermWeeks bounds the schedule size accepted from the CLI and API
	MaxTermWeeks = 104

	// MaxPriceIntegerDigits bounds the whole-number digits of a parsed cash price
	MaxPriceIntegerDigits = 15

	// MaxPriceScale bounds the fractional digits of a parsed cash price
	MaxPriceScale = 32

	// DecimalPlaces is the number of decimals shown for currency values
	DecimalPlaces = 2

	// CurrencyPrefix is prepended to every displayed amount
	CurrencyPrefix = "Ksh"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides, e.g. INSTALLMENT_LOGGING_LEVEL
	EnvPrefix = "INSTALLMENT"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultRateLimitPerMinute is the default sustained request rate for the API
	DefaultRateLimitPerMinute = 600

	// DefaultRateLimitBurst is the default burst size for the API rate limiter
	DefaultRateLimitBurst = 60
)
