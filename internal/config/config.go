package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Quality QualityConfig `yaml:"quality" mapstructure:"quality"`
	Risk    RiskConfig    `yaml:"risk" mapstructure:"risk"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// QualityConfig configures the completeness scorer and quality router.
// Thresholds are tenant-tunable; the documented defaults are 95/70.
type QualityConfig struct {
	// AutoPromoteThreshold: scores at or above skip review entirely.
	AutoPromoteThreshold int `yaml:"auto_promote_threshold" mapstructure:"auto_promote_threshold"`
	// ReviewThreshold: scores at or above (but below auto-promote) queue
	// for human review; below is rejected outright.
	ReviewThreshold int `yaml:"review_threshold" mapstructure:"review_threshold"`

	// Optimistic-concurrency retry tuning for review transitions.
	TransitionMaxAttempts int `yaml:"transition_max_attempts" mapstructure:"transition_max_attempts"`
	TransitionBackoffMS   int `yaml:"transition_backoff_ms" mapstructure:"transition_backoff_ms"`
}

// RiskConfig configures the risk factor scorers, contextual modifiers, and
// BOM aggregation.
type RiskConfig struct {
	// Supply-chain factor.
	StockFloorQty         int `yaml:"stock_floor_qty" mapstructure:"stock_floor_qty"`
	LeadTimeThresholdDays int `yaml:"lead_time_threshold_days" mapstructure:"lead_time_threshold_days"`

	// Obsolescence factor.
	ObsolescenceHorizonYears float64 `yaml:"obsolescence_horizon_years" mapstructure:"obsolescence_horizon_years"`
	ObsolescenceNeutralScore float64 `yaml:"obsolescence_neutral_score" mapstructure:"obsolescence_neutral_score"`

	// Single-source factor.
	SingleSourceFloor     float64 `yaml:"single_source_floor" mapstructure:"single_source_floor"`
	SingleSourceFullCount int     `yaml:"single_source_full_count" mapstructure:"single_source_full_count"`

	// Contextual modifier bounds and pivots.
	ModifierMin       float64 `yaml:"modifier_min" mapstructure:"modifier_min"`
	ModifierMax       float64 `yaml:"modifier_max" mapstructure:"modifier_max"`
	QuantityPivot     int     `yaml:"quantity_pivot" mapstructure:"quantity_pivot"`
	LeadTimePivotDays int     `yaml:"lead_time_pivot_days" mapstructure:"lead_time_pivot_days"`

	// BOM aggregation.
	TrendWindowDays int     `yaml:"trend_window_days" mapstructure:"trend_window_days"`
	TrendEpsilon    float64 `yaml:"trend_epsilon" mapstructure:"trend_epsilon"`
	TopRisks        int     `yaml:"top_risks" mapstructure:"top_risks"`
}

// BatchConfig configures batch enrichment runs.
type BatchConfig struct {
	MaxConcurrent int     `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// ServerConfig configures the read-only status server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("BOMSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "bomsight.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("quality.auto_promote_threshold", 95)
	v.SetDefault("quality.review_threshold", 70)
	v.SetDefault("quality.transition_max_attempts", 3)
	v.SetDefault("quality.transition_backoff_ms", 50)
	v.SetDefault("risk.stock_floor_qty", 500)
	v.SetDefault("risk.lead_time_threshold_days", 90)
	v.SetDefault("risk.obsolescence_horizon_years", 5)
	v.SetDefault("risk.obsolescence_neutral_score", 50)
	v.SetDefault("risk.single_source_floor", 20)
	v.SetDefault("risk.single_source_full_count", 4)
	v.SetDefault("risk.modifier_min", -0.2)
	v.SetDefault("risk.modifier_max", 0.3)
	v.SetDefault("risk.quantity_pivot", 1000)
	v.SetDefault("risk.lead_time_pivot_days", 60)
	v.SetDefault("risk.trend_window_days", 7)
	v.SetDefault("risk.trend_epsilon", 2.0)
	v.SetDefault("risk.top_risks", 10)
	v.SetDefault("batch.max_concurrent", 5)
	v.SetDefault("batch.rate_per_second", 0)

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
