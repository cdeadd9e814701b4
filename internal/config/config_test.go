package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/iwvelando/installment-calculator/pkg/datetime"
)

const sampleConfig = `logging:
  level: debug
  format: console
output:
  format: csv
defaults:
  cashPrice: "1000"
  weeks: 12
  startDate: "2024-01-01"
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Sample config file",
			configPath: writeConfig(t, sampleConfig),
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationValues(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if conf.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Output.Format = %q, expected csv", conf.Output.Format)
	}
	if conf.Defaults.CashPrice != "1000" || conf.Defaults.Weeks != 12 || conf.Defaults.StartDate != "2024-01-01" {
		t.Errorf("unexpected defaults %+v", conf.Defaults)
	}
}

func TestLoadConfigurationAppliesDefaults(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, "logging:\n  level: info\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Output.Format = %q, expected pretty", conf.Output.Format)
	}
	if conf.Defaults.Weeks != constants.DefaultTermWeeks {
		t.Errorf("Defaults.Weeks = %d, expected %d", conf.Defaults.Weeks, constants.DefaultTermWeeks)
	}
	if conf.TUI.Theme != "flexoki-dark" {
		t.Errorf("TUI.Theme = %q, expected flexoki-dark", conf.TUI.Theme)
	}
}

func TestLoadConfigurationTUITheme(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, "tui:\n  theme: terminal\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.TUI.Theme != "terminal" {
		t.Errorf("TUI.Theme = %q, expected terminal", conf.TUI.Theme)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("INSTALLMENT_OUTPUT_FORMAT", "json")
	t.Setenv("INSTALLMENT_DEFAULTS_WEEKS", "24")

	conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Output.Format != constants.OutputFormatJSON {
		t.Errorf("Output.Format = %q, expected env override json", conf.Output.Format)
	}
	if conf.Defaults.Weeks != 24 {
		t.Errorf("Defaults.Weeks = %d, expected env override 24", conf.Defaults.Weeks)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("INSTALLMENT_OUTPUT_FORMAT", "csv")
	t.Setenv("INSTALLMENT_DEFAULTS_CASHPRICE", "2500")

	conf, err := LoadEnvironment()
	if err != nil {
		t.Fatalf("LoadEnvironment() error = %v", err)
	}
	if conf.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Output.Format = %q, expected csv", conf.Output.Format)
	}
	if conf.Defaults.CashPrice != "2500" {
		t.Errorf("Defaults.CashPrice = %q, expected 2500", conf.Defaults.CashPrice)
	}
	if conf.Defaults.Weeks != constants.DefaultTermWeeks {
		t.Errorf("Defaults.Weeks = %d, expected %d", conf.Defaults.Weeks, constants.DefaultTermWeeks)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Defaults.Weeks != 12 {
		t.Errorf("Defaults.Weeks = %d, expected 12", conf.Defaults.Weeks)
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("logging: [unterminated")); err == nil {
		t.Error("LoadConfigurationFromReader() expected error for invalid YAML")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name         string
		config       Configuration
		wantWarnings int
		contains     string
	}{
		{
			name:         "Defaults are clean",
			config:       *DefaultConfiguration(),
			wantWarnings: 0,
		},
		{
			name:         "Unknown output format",
			config:       Configuration{Output: OutputConfig{Format: "xml"}},
			wantWarnings: 1,
			contains:     "xml",
		},
		{
			name:         "Unknown logging level and format",
			config:       Configuration{Logging: LoggingConfig{Level: "trace", Format: "text"}},
			wantWarnings: 2,
		},
		{
			name:         "Non-standard term",
			config:       Configuration{Defaults: DefaultsConfig{Weeks: 10}},
			wantWarnings: 1,
			contains:     "multiplier 1.0",
		},
		{
			name:         "Term out of range",
			config:       Configuration{Defaults: DefaultsConfig{Weeks: -4}},
			wantWarnings: 1,
			contains:     "between 1 and",
		},
		{
			name:         "Bad start date",
			config:       Configuration{Defaults: DefaultsConfig{StartDate: "01/02/2024"}},
			wantWarnings: 1,
			contains:     "start date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.ValidateConfiguration()
			if len(warnings) != tt.wantWarnings {
				t.Fatalf("ValidateConfiguration() returned %d warnings %v, expected %d", len(warnings), warnings, tt.wantWarnings)
			}
			if tt.contains != "" && !strings.Contains(strings.Join(warnings, "\n"), tt.contains) {
				t.Errorf("warnings %v should mention %q", warnings, tt.contains)
			}
		})
	}
}

func TestPlanInput(t *testing.T) {
	conf := Configuration{Defaults: DefaultsConfig{CashPrice: " 500 ", Weeks: 12, StartDate: "2024-01-01"}}

	in, err := conf.PlanInput()
	if err != nil {
		t.Fatalf("PlanInput() error = %v", err)
	}
	if in.CashPrice.String() != "500" || in.Term != 12 {
		t.Errorf("unexpected input %+v", in)
	}
	if in.StartDate == nil || in.StartDate.Format(datetime.DateLayout) != "2024-01-01" {
		t.Errorf("StartDate = %v, expected 2024-01-01", in.StartDate)
	}
}

func TestPlanInputFallbacks(t *testing.T) {
	in, err := (&Configuration{Defaults: DefaultsConfig{CashPrice: "abc"}}).PlanInput()
	if err != nil {
		t.Fatalf("PlanInput() error = %v", err)
	}
	if !in.CashPrice.IsZero() {
		t.Errorf("CashPrice = %s, expected 0 for unparsable text", in.CashPrice)
	}
	if in.Term != constants.DefaultTermWeeks {
		t.Errorf("Term = %d, expected %d", in.Term, constants.DefaultTermWeeks)
	}
	if in.StartDate != nil {
		t.Errorf("StartDate = %v, expected none", in.StartDate)
	}

	if _, err := (&Configuration{Defaults: DefaultsConfig{StartDate: "soon"}}).PlanInput(); err == nil {
		t.Error("PlanInput() expected error for invalid start date")
	}
}

func TestPlanInputRejectsTerm(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		weeks int
	}{
		{"Huge", "defaults:\n  weeks: 2000000000\n", 2000000000},
		{"Negative", "defaults:\n  weeks: -4\n", -4},
		{"Just past the maximum", fmt.Sprintf("defaults:\n  weeks: %d\n", constants.MaxTermWeeks+1), constants.MaxTermWeeks + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfigurationFromReader(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}
			if conf.Defaults.Weeks != tt.weeks {
				t.Fatalf("Defaults.Weeks = %d, expected %d", conf.Defaults.Weeks, tt.weeks)
			}
			if _, err := conf.PlanInput(); err == nil {
				t.Fatal("PlanInput() expected error for an out-of-range term")
			}
		})
	}

	in, err := (&Configuration{Defaults: DefaultsConfig{Weeks: 10}}).PlanInput()
	if err != nil {
		t.Fatalf("PlanInput() error = %v for a non-standard term", err)
	}
	if in.Term != 10 {
		t.Errorf("Term = %d, expected 10", in.Term)
	}
}

func TestExampleConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join("..", "..", constants.ExampleConfigFile))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("example configuration has warnings: %v", warnings)
	}
	if _, err := conf.PlanInput(); err != nil {
		t.Errorf("PlanInput() error = %v", err)
	}
}
