package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"okinoko_rewards/sdk"
)

type ctxKey string

const configContextKey ctxKey = "rewardpool.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

// Config drives the CLI. Values come from defaults, then the YAML file, then REWARDPOOL_* env vars.
type Config struct {
	// DatabasePath is the badger directory, empty keeps everything in memory
	DatabasePath  string `yaml:"databasePath"  split_words:"true"`
	PoolAddress   string `yaml:"poolAddress"   split_words:"true"`
	TokenAddress  string `yaml:"tokenAddress"  split_words:"true"`
	TokenSymbol   string `yaml:"tokenSymbol"   split_words:"true"`
	TokenDecimals int32  `yaml:"tokenDecimals" split_words:"true"`
	// Sender is used when --sender is not given
	Sender   string `yaml:"sender"`
	LogLevel string `yaml:"logLevel" split_words:"true"`
}

func defaultConfig() *Config {
	return &Config{
		DatabasePath:  ".rewardpool",
		PoolAddress:   "contract:rewardpool",
		TokenAddress:  "contract:thx",
		TokenSymbol:   "THX",
		TokenDecimals: 18,
		LogLevel:      "info",
	}
}

func LoadConfig(configFile string) (*Config, error) {
	cfg := defaultConfig()
	// Check for config file in this path: ~/.rewardpool/rewardpool.yaml
	if configFile == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".rewardpool", "rewardpool.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}
	}
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Environment variables override the file
	if err := envconfig.Process("rewardpool", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !sdk.ParseAddress(c.PoolAddress).IsValid() {
		return fmt.Errorf("invalid pool address %q", c.PoolAddress)
	}
	if !sdk.ParseAddress(c.TokenAddress).IsValid() {
		return fmt.Errorf("invalid token address %q", c.TokenAddress)
	}
	if !sdk.Asset(c.TokenSymbol).IsValid() {
		return fmt.Errorf("invalid token symbol %q", c.TokenSymbol)
	}
	if c.TokenDecimals < 0 || c.TokenDecimals > 36 {
		return errors.New("token decimals must be between 0 and 36")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
