// Package config loads kvcore's settings: buffer pool size, the LRU-K
// replacer's history parameter, and the directory holding the on-disk page
// file. Grounded on KartikBazzad-bunbase's pkg/config.Load(prefix, target)
// shape — viper.New, environment variables under a fixed prefix, an optional
// config file, unmarshal into a struct — adapted to kvcore's own settings
// and defaults rather than bunbase's.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Settings holds everything cmd/kvcore needs to wire up a disk manager and
// buffer pool.
type Settings struct {
	PoolSize  int    `mapstructure:"pool_size"`
	ReplacerK int    `mapstructure:"replacer_k"`
	DataDir   string `mapstructure:"data_dir"`
	LogLevel  string `mapstructure:"log_level"`
}

// Defaults returns the settings kvcore starts from absent any config file or
// environment override.
func Defaults() Settings {
	return Settings{
		PoolSize:  64,
		ReplacerK: 2,
		DataDir:   "./kvcore-data",
		LogLevel:  "info",
	}
}

// Load builds Settings from, in ascending priority: Defaults, an optional
// config file at path (skipped entirely if path is empty; a missing file at
// a non-empty path is an error, matching bunbase's treatment of an
// explicitly-named file), and KVCORE_-prefixed environment variables
// (KVCORE_POOL_SIZE, KVCORE_REPLACER_K, KVCORE_DATA_DIR, KVCORE_LOG_LEVEL).
func Load(path string) (Settings, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault("pool_size", d.PoolSize)
	v.SetDefault("replacer_k", d.ReplacerK)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_level", d.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
			}
			return Settings{}, fmt.Errorf("config: %s not found", path)
		}
	}

	v.SetEnvPrefix("kvcore")
	v.AutomaticEnv()
	for _, key := range []string{"pool_size", "replacer_k", "data_dir", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return Settings{}, fmt.Errorf("config: bind env %s: %w", key, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if s.PoolSize <= 0 {
		return Settings{}, fmt.Errorf("config: pool_size must be positive, got %d", s.PoolSize)
	}
	if s.ReplacerK <= 0 {
		return Settings{}, fmt.Errorf("config: replacer_k must be positive, got %d", s.ReplacerK)
	}
	return s, nil
}
