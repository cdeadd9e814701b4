package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/installment-calculator/internal/config"
	"github.com/iwvelando/installment-calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address            string               `yaml:"address"`
	MaxRequestSize     ByteSize             `yaml:"maxRequestSize"`
	RateLimitPerMinute int                  `yaml:"rateLimitPerMinute"`
	RateLimitBurst     int                  `yaml:"rateLimitBurst"`
	Logging            config.LoggingConfig `yaml:"logging"`
}

// ByteSize is a body size limit. In YAML it is written as a byte count with
// an optional B, K/KB or M/MB suffix, e.g. "64K".
type ByteSize int64

// UnmarshalYAML decodes a size such as 16K. An empty value keeps the default.
func (s *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	if strings.TrimSpace(node.Value) == "" {
		return nil
	}
	n, err := ParseSize(node.Value)
	if err != nil {
		return fmt.Errorf("maxRequestSize: %w", err)
	}
	*s = ByteSize(n)
	return nil
}

// DefaultConfig returns the server configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Address:            constants.DefaultServerAddress,
		MaxRequestSize:     ByteSize(constants.DefaultMaxRequestSizeBytes),
		RateLimitPerMinute: constants.DefaultRateLimitPerMinute,
		RateLimitBurst:     constants.DefaultRateLimitBurst,
	}
}

// LoadConfig reads the server configuration from YAML over DefaultConfig.
// An empty path or a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if cfg.RateLimitPerMinute < 0 {
		return nil, fmt.Errorf("rateLimitPerMinute must not be negative, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.Address == "" {
		cfg.Address = constants.DefaultServerAddress
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = constants.DefaultRateLimitBurst
	}
	if cfg.MaxRequestSize <= 0 {
		cfg.MaxRequestSize = ByteSize(constants.DefaultMaxRequestSizeBytes)
	}
	return cfg, nil
}

// sizeUnits lists the accepted suffixes, longest first.
var sizeUnits = []struct {
	suffix string
	factor int64
}{
	{"KB", 1 << 10},
	{"MB", 1 << 20},
	{"K", 1 << 10},
	{"M", 1 << 20},
	{"B", 1},
}

// ParseSize converts a size such as "512", "64K" or "1MB" into bytes.
func ParseSize(value string) (int64, error) {
	digits := strings.ToUpper(strings.TrimSpace(value))
	factor := int64(1)
	for _, unit := range sizeUnits {
		if strings.HasSuffix(digits, unit.suffix) {
			digits = strings.TrimSpace(strings.TrimSuffix(digits, unit.suffix))
			factor = unit.factor
			break
		}
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", value)
	}
	if n > math.MaxInt64/factor {
		return 0, fmt.Errorf("size %q overflows", value)
	}
	return n * factor, nil
}
