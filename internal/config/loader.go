package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ptiller/driveorg/internal/domain"
)

// DefaultConfigPaths returns the default paths to search for config files
func DefaultConfigPaths() []string {
	paths := []string{
		".",
		"./configs",
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "driveorg"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".driveorg"))
	}

	return paths
}

// Load reads and parses a configuration file. If path is empty, default
// locations are searched for config.yaml; a missing file yields the
// defaults rather than an error so the service can run unconfigured.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("DRIVEORG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, domain.ErrConfigNotFound
			}
			// No config anywhere: run on defaults.
		} else if path != "" || !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.auth_disabled", false)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.sweep_seconds", 60)
	v.SetDefault("scan.max_depth", 2)
	v.SetDefault("resolve.case_insensitive", false)
	v.SetDefault("suggest.provider", "heuristic")
	v.SetDefault("suggest.model", "gemini-2.5-flash")
	v.SetDefault("suggest.confidence_threshold", 0.7)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.max_backups", 5)

	defaultData := "./data"
	if homeDir, err := os.UserHomeDir(); err == nil {
		defaultData = filepath.Join(homeDir, ".driveorg", "data")
	}
	v.SetDefault("data_dir", defaultData)
}
