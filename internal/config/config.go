// Package config loads pipeline and workflow settings from an optional
// .mnemo.yaml at the project root, with MNEMO_* environment overrides.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries every tunable the pipeline and workflow expose.
type Config struct {
	ScanDepth         int
	CacheTTL          time.Duration
	CacheCapacity     int
	SweepInterval     time.Duration
	MemoCapacity      int
	MinResponseLength int
	QualityThreshold  int
	OutputDir         string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ScanDepth:         12,
		CacheTTL:          30 * time.Minute,
		CacheCapacity:     100,
		SweepInterval:     5 * time.Minute,
		MemoCapacity:      512,
		MinResponseLength: 80,
		QualityThreshold:  70,
		OutputDir:         "memory-bank",
	}
}

// Load reads .mnemo.yaml from root when present and applies environment
// overrides. A missing config file is not an error.
func Load(root string) (Config, error) {
	v := viper.New()
	v.SetConfigName(".mnemo")
	v.SetConfigType("yaml")
	v.AddConfigPath(root)
	v.SetEnvPrefix("MNEMO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("scan_depth", defaults.ScanDepth)
	v.SetDefault("cache_ttl", defaults.CacheTTL)
	v.SetDefault("cache_capacity", defaults.CacheCapacity)
	v.SetDefault("sweep_interval", defaults.SweepInterval)
	v.SetDefault("memo_capacity", defaults.MemoCapacity)
	v.SetDefault("min_response_length", defaults.MinResponseLength)
	v.SetDefault("quality_threshold", defaults.QualityThreshold)
	v.SetDefault("output_dir", defaults.OutputDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return Config{
		ScanDepth:         v.GetInt("scan_depth"),
		CacheTTL:          v.GetDuration("cache_ttl"),
		CacheCapacity:     v.GetInt("cache_capacity"),
		SweepInterval:     v.GetDuration("sweep_interval"),
		MemoCapacity:      v.GetInt("memo_capacity"),
		MinResponseLength: v.GetInt("min_response_length"),
		QualityThreshold:  v.GetInt("quality_threshold"),
		OutputDir:         v.GetString("output_dir"),
	}, nil
}
