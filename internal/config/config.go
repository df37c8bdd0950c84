package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"tempmatch/internal/logging"
	"tempmatch/internal/smooth"
)

// History drivers.
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config materialises application configuration.
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Logging logging.Config `mapstructure:"logging"`
	Match   MatchConfig    `mapstructure:"match"`
	Output  OutputConfig   `mapstructure:"output"`
	Batch   BatchConfig    `mapstructure:"batch"`
	History HistoryConfig  `mapstructure:"history"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name string `mapstructure:"name"`
}

// MatchConfig holds smoothing parameters.
type MatchConfig struct {
	Step     float64 `mapstructure:"step"`
	Rounding int     `mapstructure:"rounding"`
}

// OutputConfig sets export and preview behaviour.
type OutputConfig struct {
	DefaultName string `mapstructure:"default_name"`
	PreviewRows int    `mapstructure:"preview_rows"`
	ChartWidth  int    `mapstructure:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height"`
}

// BatchConfig governs concurrent batch matching.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// HistoryConfig selects where match runs are recorded.
type HistoryConfig struct {
	Driver          string        `mapstructure:"driver"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TEMPMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tempmatch")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("match.step", 0.015)
	v.SetDefault("match.rounding", 3)

	v.SetDefault("output.default_name", "result.csv")
	v.SetDefault("output.preview_rows", 200)
	v.SetDefault("output.chart_width", 1280)
	v.SetDefault("output.chart_height", 720)

	v.SetDefault("batch.workers", 4)

	v.SetDefault("history.driver", DriverNone)
	v.SetDefault("history.sqlite_path", "tempmatch.db")
	v.SetDefault("history.max_open_conns", 4)
	v.SetDefault("history.conn_max_lifetime", "30m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Match.Step < 0 || math.IsNaN(c.Match.Step) || math.IsInf(c.Match.Step, 0) {
		return fmt.Errorf("match.step must be a finite non-negative number")
	}
	if c.Match.Rounding < 0 || c.Match.Rounding > smooth.MaxPlaces {
		return fmt.Errorf("match.rounding must be between 0 and %d", smooth.MaxPlaces)
	}
	if c.Output.PreviewRows < 0 {
		return fmt.Errorf("output.preview_rows cannot be negative")
	}
	if c.Output.DefaultName == "" {
		return fmt.Errorf("output.default_name must be set")
	}
	if c.Output.ChartWidth <= 0 || c.Output.ChartHeight <= 0 {
		return fmt.Errorf("output.chart_width and output.chart_height must be greater than zero")
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch.workers must be greater than zero")
	}

	switch strings.ToLower(c.History.Driver) {
	case "", DriverNone:
	case DriverSQLite:
		if c.History.SQLitePath == "" {
			return fmt.Errorf("history.sqlite_path 必须配置")
		}
	case DriverPostgres:
		if c.History.DSN == "" {
			return fmt.Errorf("history.dsn 必须配置")
		}
	default:
		return fmt.Errorf("unknown history.driver %q", c.History.Driver)
	}
	return nil
}

// ResolveStep returns the CLI override when set, the configured step otherwise.
func (c *Config) ResolveStep(override *float64) float64 {
	if override != nil {
		return *override
	}
	return c.Match.Step
}

// ResolveRounding returns the CLI override when set, the configured rounding otherwise.
func (c *Config) ResolveRounding(override *int) int {
	if override != nil {
		return *override
	}
	return c.Match.Rounding
}

// ResolvePreviewRows returns the CLI override when non-negative, the configured row count otherwise.
func (c *Config) ResolvePreviewRows(override int) int {
	if override >= 0 {
		return override
	}
	return c.Output.PreviewRows
}
