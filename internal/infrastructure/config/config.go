package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	sharedConfig "github.com/licensehub/licensehub/internal/shared/config"
)

const envPrefix = "LICENSEHUB"

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Subscription sharedConfig.SubscriptionConfig `mapstructure:"subscription"`
	Catalog      sharedConfig.CatalogConfig      `mapstructure:"catalog"`
	Biz          sharedConfig.BizConfig          `mapstructure:"biz"`
}

// Load reads configs/config.yaml (if present) and LICENSEHUB_* environment
// variables on top of the built-in defaults.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	return load(v, env)
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path, env string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v, env)
}

func load(v *viper.Viper, env string) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		return errors.New("database.path is required for the sqlite driver")
	}

	switch c.Subscription.ApprovalMode {
	case sharedConfig.ApprovalModeActivate, sharedConfig.ApprovalModeApproveOnly:
	default:
		return fmt.Errorf("unsupported subscription.approval_mode %q", c.Subscription.ApprovalMode)
	}
	if c.Subscription.ExpirySweepInterval <= 0 {
		return errors.New("subscription.expiry_sweep_interval must be positive")
	}
	if c.Auth.JWT.Secret == "" {
		return errors.New("auth.jwt.secret is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.request_timeout", 30*time.Second)

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "licensehub_dev")
	v.SetDefault("database.path", "licensehub.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.issuer", "")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl", 10*time.Second)

	// Subscription defaults
	v.SetDefault("subscription.approval_mode", sharedConfig.ApprovalModeActivate)
	v.SetDefault("subscription.expiry_sweep_interval", time.Hour)
	v.SetDefault("subscription.lock_timeout", 5*time.Second)
	v.SetDefault("subscription.request_rate_limit", 10)
	v.SetDefault("subscription.request_rate_window", time.Minute)

	v.SetDefault("catalog.cache_size", 256)
	v.SetDefault("catalog.cache_ttl", 30*time.Second)
	v.SetDefault("biz.timezone", "UTC")
}
