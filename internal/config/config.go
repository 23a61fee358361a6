// Package config loads application configuration from config.yaml and
// FAIRLEAD_-prefixed environment variables, and initializes the global
// logger.
package config

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Seed      SeedConfig      `yaml:"seed" mapstructure:"seed"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SeedConfig configures the exhibitor seed source.
type SeedConfig struct {
	ListingURL string `yaml:"listing_url" mapstructure:"listing_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// PipelineConfig configures stage runner behavior.
type PipelineConfig struct {
	// DelaySecs is the fixed inter-item delay applied after every
	// externally-calling item.
	DelaySecs int `yaml:"delay_secs" mapstructure:"delay_secs"`
	// FetchTimeoutSecs bounds individual page fetches.
	FetchTimeoutSecs int `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
	// Default test-run limits per stage; the literal "all" lifts them.
	FetchTestLimit   int `yaml:"fetch_test_limit" mapstructure:"fetch_test_limit"`
	EnrichTestLimit  int `yaml:"enrich_test_limit" mapstructure:"enrich_test_limit"`
	EnhanceTestLimit int `yaml:"enhance_test_limit" mapstructure:"enhance_test_limit"`
}

// DataConfig names the stage checkpoint files.
type DataConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	ExhibitorFile string `yaml:"exhibitor_file" mapstructure:"exhibitor_file"`
	AboutFile     string `yaml:"about_file" mapstructure:"about_file"`
	EnrichedFile  string `yaml:"enriched_file" mapstructure:"enriched_file"`
	FinalFile     string `yaml:"final_file" mapstructure:"final_file"`
	CompleteFile  string `yaml:"complete_file" mapstructure:"complete_file"`
	LedgerFile    string `yaml:"ledger_file" mapstructure:"ledger_file"`
}

// Path resolves a stage file name against the data directory.
func (d DataConfig) Path(name string) string {
	return filepath.Join(d.Dir, name)
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FAIRLEAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("seed.listing_url", "https://www.impactexpo.indiaai.gov.in/list-of-exhibitors")
	// Registered empty so FAIRLEAD_ANTHROPIC_KEY is visible to Unmarshal.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("pipeline.delay_secs", 1)
	v.SetDefault("pipeline.fetch_timeout_secs", 15)
	v.SetDefault("pipeline.fetch_test_limit", 5)
	v.SetDefault("pipeline.enrich_test_limit", 5)
	v.SetDefault("pipeline.enhance_test_limit", 10)
	v.SetDefault("data.dir", ".")
	v.SetDefault("data.exhibitor_file", "exhibitors.json")
	v.SetDefault("data.about_file", "about_pages.json")
	v.SetDefault("data.enriched_file", "enriched.json")
	v.SetDefault("data.final_file", "enriched_final.json")
	v.SetDefault("data.complete_file", "enriched_complete.json")
	v.SetDefault("data.ledger_file", "fairlead.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
