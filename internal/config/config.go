package config

import (
	"fmt"
	"time"

	"github.com/ptiller/driveorg/internal/domain"
)

// Config is the complete configuration for driveorg
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Resolve ResolveConfig `mapstructure:"resolve"`
	Suggest SuggestConfig `mapstructure:"suggest"`
	Log     LogConfig     `mapstructure:"log"`

	// DataDir holds the history database and PID file
	DataDir string `mapstructure:"data_dir"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// AuthDisabled accepts every request as the local development
	// principal instead of requiring a bearer token
	AuthDisabled bool `mapstructure:"auth_disabled"`

	// AllowedOrigins for CORS; "*" by default for development clients
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CacheConfig configures the per-principal folder cache
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`

	// SweepSeconds is the interval of the background expiry sweep;
	// 0 disables it (expiry is still enforced lazily on Get)
	SweepSeconds int `mapstructure:"sweep_seconds"`
}

// ScanConfig configures folder discovery
type ScanConfig struct {
	// MaxDepth bounds full scans requested through the API
	MaxDepth int `mapstructure:"max_depth"`
}

// ResolveConfig configures path resolution
type ResolveConfig struct {
	// CaseInsensitive folds names during find lookups instead of
	// requiring exact equality
	CaseInsensitive bool `mapstructure:"case_insensitive"`
}

// SuggestConfig configures the folder-suggestion collaborator
type SuggestConfig struct {
	// Provider is "gemini" or "heuristic"
	Provider string `mapstructure:"provider"`

	GeminiAPIKey        string  `mapstructure:"gemini_api_key"`
	Model               string  `mapstructure:"model"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
}

// LogConfig configures logging output
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	File     string `mapstructure:"file"`
	MaxSize  int    `mapstructure:"max_size_mb"`
	MaxAge   int    `mapstructure:"max_age_days"`
	Backups  int    `mapstructure:"max_backups"`
	Compress bool   `mapstructure:"compress"`
}

// TTL returns the cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SweepInterval returns the sweep interval as a duration
func (c CacheConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepSeconds) * time.Second
}

// NameMatch returns the configured name-match policy
func (c ResolveConfig) NameMatch() domain.NameMatch {
	if c.CaseInsensitive {
		return domain.MatchFold
	}
	return domain.MatchExact
}

// Validate checks that the configuration is complete and consistent
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr cannot be empty", domain.ErrConfigInvalid)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("%w: cache.ttl_seconds must be positive, got %d",
			domain.ErrConfigInvalid, c.Cache.TTLSeconds)
	}
	if c.Cache.SweepSeconds < 0 {
		return fmt.Errorf("%w: cache.sweep_seconds cannot be negative", domain.ErrConfigInvalid)
	}
	if c.Scan.MaxDepth < 0 {
		return fmt.Errorf("%w: scan.max_depth cannot be negative", domain.ErrConfigInvalid)
	}
	switch c.Suggest.Provider {
	case "gemini":
		if c.Suggest.GeminiAPIKey == "" {
			return fmt.Errorf("%w: suggest.gemini_api_key required for gemini provider",
				domain.ErrConfigInvalid)
		}
	case "heuristic", "":
	default:
		return fmt.Errorf("%w: unknown suggest.provider %q",
			domain.ErrConfigInvalid, c.Suggest.Provider)
	}
	if c.Suggest.ConfidenceThreshold < 0 || c.Suggest.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: suggest.confidence_threshold must be in [0,1]",
			domain.ErrConfigInvalid)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir cannot be empty", domain.ErrConfigInvalid)
	}
	return nil
}
