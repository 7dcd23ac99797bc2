package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/slicemap/smap"
	"github.com/ZanzyTHEbar/slicemap/smap/table"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Table TableConfig `mapstructure:"table"`
	Batch BatchConfig `mapstructure:"batch"`
	Log   LogConfig   `mapstructure:"log"`
}

// TableConfig stores the defaults applied to every built table.
type TableConfig struct {
	Orientation     string `mapstructure:"orientation"`
	DuplicatePolicy string `mapstructure:"duplicatePolicy"`
	VerifyLayout    bool   `mapstructure:"verifyLayout"`
}

// BatchConfig stores batch slicing settings.
type BatchConfig struct {
	MaxWorkers int `mapstructure:"maxWorkers"`
}

// LogConfig stores logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; defaults apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("..")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("table.orientation", internal.DefaultOrientation)
	v.SetDefault("table.duplicatePolicy", internal.DefaultDuplicatePolicy)
	v.SetDefault("table.verifyLayout", false)
	v.SetDefault("batch.maxWorkers", internal.DefaultBatchWorkers)
	v.SetDefault("log.level", internal.DefaultLogLevel)

	v.SetEnvPrefix(internal.DefaultAppName)
	v.AutomaticEnv()                                   // SLICEMAP_TABLE_ORIENTATION etc.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // table.orientation -> TABLE_ORIENTATION

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects enum values the table package does not know.
func (c *Config) Validate() error {
	if _, err := table.ParseOrientation(c.Table.Orientation); err != nil {
		return fmt.Errorf("invalid table.orientation: %w", err)
	}
	if _, err := table.ParseDuplicatePolicy(c.Table.DuplicatePolicy); err != nil {
		return fmt.Errorf("invalid table.duplicatePolicy: %w", err)
	}
	if c.Batch.MaxWorkers < 1 {
		return fmt.Errorf("invalid batch.maxWorkers: %d, must be at least 1", c.Batch.MaxWorkers)
	}
	return nil
}

// TableOptions converts the table section into build options.
func (c *Config) TableOptions() ([]table.Option, error) {
	o, err := table.ParseOrientation(c.Table.Orientation)
	if err != nil {
		return nil, err
	}
	p, err := table.ParseDuplicatePolicy(c.Table.DuplicatePolicy)
	if err != nil {
		return nil, err
	}
	return []table.Option{
		table.WithOrientation(o),
		table.WithDuplicatePolicy(p),
		table.WithLayoutVerification(c.Table.VerifyLayout),
	}, nil
}
