package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIKey is Etherscan's placeholder token, accepted at a heavily reduced rate.
const DefaultAPIKey = "YourApiKeyToken"

// Config holds all configuration for the application.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Explorer   ExplorerConfig   `mapstructure:"explorer"`
	Aggregator AggregatorConfig `mapstructure:"aggregator"`
	Registry   RegistryConfig   `mapstructure:"registry"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Checker    CheckerConfig    `mapstructure:"checker"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	// Output is stdout or stderr.
	Output string `mapstructure:"output"`
}

// ExplorerConfig holds settings for the block-explorer API client.
type ExplorerConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
}

// AggregatorConfig holds the static rate-limit schedule of the multi-chain aggregator.
type AggregatorConfig struct {
	BatchSize    int           `mapstructure:"batch_size"`
	BatchDelay   time.Duration `mapstructure:"batch_delay"`
	FetchStagger time.Duration `mapstructure:"fetch_stagger"`
}

// RegistryConfig holds settings for the chain registry.
type RegistryConfig struct {
	// Path of a YAML registry file. Empty selects the built-in registry.
	Path           string        `mapstructure:"path"`
	ReloadInterval time.Duration `mapstructure:"reload_interval"`
}

// CacheConfig holds settings for the caching layer.
type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// CheckerConfig holds settings related to RPC health checks.
type CheckerConfig struct {
	CheckTimeout time.Duration `mapstructure:"check_timeout"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "wallet-wrapped")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("explorer.api_key", DefaultAPIKey)
	v.SetDefault("explorer.timeout", "15s")
	v.SetDefault("explorer.page_size", 10000)
	v.SetDefault("aggregator.batch_size", 2)
	v.SetDefault("aggregator.batch_delay", "500ms")
	v.SetDefault("aggregator.fetch_stagger", "400ms")
	v.SetDefault("registry.path", "")
	v.SetDefault("registry.reload_interval", "5m")
	v.SetDefault("cache.default_expiration", "5m")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("checker.check_timeout", "5s")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Printf("Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("WALLET_WRAPPED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The explorer credential is usually provisioned under the provider's own variable names.
	if err := v.BindEnv("explorer.api_key", "WALLET_WRAPPED_EXPLORER_API_KEY", "ETHERSCAN_API_KEY", "ALCHEMY_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Explorer.PageSize <= 0 {
		return fmt.Errorf("explorer.page_size must be positive, got %d", c.Explorer.PageSize)
	}
	if c.Explorer.Timeout <= 0 {
		return fmt.Errorf("explorer.timeout must be positive, got %s", c.Explorer.Timeout)
	}
	if c.Aggregator.BatchSize <= 0 {
		return fmt.Errorf("aggregator.batch_size must be positive, got %d", c.Aggregator.BatchSize)
	}
	if c.Aggregator.BatchDelay < 0 || c.Aggregator.FetchStagger < 0 {
		return errors.New("aggregator delays must not be negative")
	}
	return nil
}

func (c CheckerConfig) GetTimeout() time.Duration {
	return c.CheckTimeout
}

func (c RegistryConfig) GetReloadInterval() time.Duration {
	return c.ReloadInterval
}

func (c CacheConfig) GetDefaultExpiration() time.Duration {
	return c.DefaultExpiration
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}
