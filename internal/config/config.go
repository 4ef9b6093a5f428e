package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "bicingwrapped/internal/errors"
	"bicingwrapped/pkg/contracts/domain"
)

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig        `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig          `yaml:"paths" envconfig:"PATHS"`
	Report  ReportConfig         `yaml:"report" envconfig:"REPORT"`
	Tariffs []domain.TariffRules `yaml:"tariffs" ignored:"true"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/bicingwrapped.log"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	ExportsDir   string `yaml:"exports_dir" envconfig:"EXPORTS_DIR" default:"exports"`
	ReferenceIDs string `yaml:"reference_ids" envconfig:"REFERENCE_IDS" default:"data/bicing_ids.json"`
	ReportsDir   string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
}

// ReportConfig contains report generation defaults.
type ReportConfig struct {
	DefaultTariff string `yaml:"default_tariff" envconfig:"DEFAULT_TARIFF" default:"plana"`
}

// Load loads configuration from environment variables and an optional YAML
// file. Environment variables take precedence over the file, which takes
// precedence over struct-tag defaults.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("BICING", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileCfg, cfg)
		}
	}

	if len(cfg.Tariffs) == 0 {
		cfg.Tariffs = DefaultTariffs()
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.Wrap(err, "CONFIG_INVALID", "configuration validation failed")
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
// envconfig fills unset fields with struct-tag defaults, so a file value
// only survives when the env value equals the default.
func mergeConfigs(fileCfg, envCfg Config) Config {
	merged := envCfg

	var defaults Config
	_ = envconfig.Process("", &defaults)

	if fileCfg.Logging.Level != "" && merged.Logging.Level == defaults.Logging.Level {
		merged.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Format != "" && merged.Logging.Format == defaults.Logging.Format {
		merged.Logging.Format = fileCfg.Logging.Format
	}
	if fileCfg.Logging.Output != "" && merged.Logging.Output == defaults.Logging.Output {
		merged.Logging.Output = fileCfg.Logging.Output
	}
	if fileCfg.Logging.FilePath != "" && merged.Logging.FilePath == defaults.Logging.FilePath {
		merged.Logging.FilePath = fileCfg.Logging.FilePath
	}
	if fileCfg.Paths.ExportsDir != "" && merged.Paths.ExportsDir == defaults.Paths.ExportsDir {
		merged.Paths.ExportsDir = fileCfg.Paths.ExportsDir
	}
	if fileCfg.Paths.ReferenceIDs != "" && merged.Paths.ReferenceIDs == defaults.Paths.ReferenceIDs {
		merged.Paths.ReferenceIDs = fileCfg.Paths.ReferenceIDs
	}
	if fileCfg.Paths.ReportsDir != "" && merged.Paths.ReportsDir == defaults.Paths.ReportsDir {
		merged.Paths.ReportsDir = fileCfg.Paths.ReportsDir
	}
	if fileCfg.Report.DefaultTariff != "" && merged.Report.DefaultTariff == defaults.Report.DefaultTariff {
		merged.Report.DefaultTariff = fileCfg.Report.DefaultTariff
	}
	merged.Tariffs = fileCfg.Tariffs

	return merged
}

// validate checks the configuration for consistency.
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	v := validator.New()
	seen := make(map[string]bool, len(c.Tariffs))
	for i := range c.Tariffs {
		t := &c.Tariffs[i]
		if err := v.Struct(t); err != nil {
			return fmt.Errorf("tariff %q: %w", t.ID, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate tariff id: %s", t.ID)
		}
		seen[t.ID] = true
	}

	if _, err := c.TariffByID(c.Report.DefaultTariff); err != nil {
		return err
	}
	return nil
}

// TariffByID returns the tariff with the given id.
func (c *Config) TariffByID(id string) (domain.TariffRules, error) {
	for _, t := range c.Tariffs {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.TariffRules{}, fmt.Errorf("unknown tariff: %s", id)
}

// DefaultTariffs returns the built-in Bicing pricing plans. The flat fees
// match the four subscription options of the dashboard; the banded rates
// follow the published Bicing per-trip pricing.
func DefaultTariffs() []domain.TariffRules {
	return []domain.TariffRules{
		{
			ID: "plana", Name: "Tarifa Plana", Price: 50,
			BaseMec: 0, BaseElec: 0.35, MidMec: 0.70, MidElec: 0.90, MaxPrice: 5.00,
		},
		{
			ID: "us", Name: "Tarifa d'ús", Price: 35,
			BaseMec: 0.35, BaseElec: 0.55, MidMec: 0.70, MidElec: 0.90, MaxPrice: 5.00,
		},
		{
			ID: "metro_plana", Name: "Abonament Metro. (Plana)", Price: 65,
			BaseMec: 0, BaseElec: 0.35, MidMec: 0.70, MidElec: 0.90, MaxPrice: 5.00,
		},
		{
			ID: "metro_us", Name: "Abonament Metro. (Ús)", Price: 53,
			BaseMec: 0.35, BaseElec: 0.55, MidMec: 0.70, MidElec: 0.90, MaxPrice: 5.00,
		},
	}
}
