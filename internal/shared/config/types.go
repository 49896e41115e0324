package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig describes either a MySQL server or a SQLite file.
// Driver "sqlite" only uses Path; the rest apply to "mysql".
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Approval modes for requested subscriptions.
const (
	ApprovalModeActivate    = "activate"
	ApprovalModeApproveOnly = "approve_only"
)

type SubscriptionConfig struct {
	ApprovalMode        string        `mapstructure:"approval_mode"`
	ExpirySweepInterval time.Duration `mapstructure:"expiry_sweep_interval"`
	LockTimeout         time.Duration `mapstructure:"lock_timeout"`
	// Request rate limiting is only applied when redis is enabled.
	RequestRateLimit  int           `mapstructure:"request_rate_limit"`
	RequestRateWindow time.Duration `mapstructure:"request_rate_window"`
}

// AutoActivate reports whether approving a request activates it immediately.
func (s *SubscriptionConfig) AutoActivate() bool {
	return s.ApprovalMode != ApprovalModeApproveOnly
}

type CatalogConfig struct {
	CacheSize int           `mapstructure:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type BizConfig struct {
	Timezone string `mapstructure:"timezone"`
}
