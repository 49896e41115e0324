// Package bootstrap loads configuration and opens shared resources for the
// CLI commands.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/infrastructure/config"
	"github.com/licensehub/licensehub/internal/infrastructure/database"
	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/constants"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

// Options are the flags every command shares.
type Options struct {
	Env        string
	ConfigPath string
}

// Bind registers --env and --config as persistent flags on cmd.
func (o *Options) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// Load reads the configuration and initializes logging and the business
// timezone. ENV overrides --env.
func Load(o *Options) (*config.Config, logger.Interface, error) {
	env := o.Env
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.LoadFile(o.ConfigPath, env)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == gin.DebugMode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Biz.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// OpenDatabase connects the process-wide database handle. Callers close it
// with database.Close.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database.Get(), nil
}

// GinMode maps an environment name onto a gin mode.
func GinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return gin.ReleaseMode
	case constants.EnvTest, "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
