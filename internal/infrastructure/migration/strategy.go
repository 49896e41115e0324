package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate brings the schema up to date
	Migrate(ctx context.Context, db *gorm.DB) error
	// GetName returns the strategy name
	GetName() string
}

// GooseStrategy applies the versioned SQL scripts embedded in the binary.
// Scripts live in one directory per dialect.
type GooseStrategy struct {
	logger logger.Interface
}

func NewGooseStrategy(log logger.Interface) *GooseStrategy {
	return &GooseStrategy{
		logger: log.With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	return s.Up(ctx, db)
}

func (s *GooseStrategy) Up(ctx context.Context, db *gorm.DB) error {
	return s.run(ctx, db, "up", func(conn *sql.DB, dir string) error {
		return goose.UpContext(ctx, conn, dir)
	})
}

// Down rolls back the most recent migration.
func (s *GooseStrategy) Down(ctx context.Context, db *gorm.DB) error {
	return s.run(ctx, db, "down", func(conn *sql.DB, dir string) error {
		return goose.DownContext(ctx, conn, dir)
	})
}

// Status prints the applied state of every script through the logger.
func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) error {
	return s.run(ctx, db, "status", func(conn *sql.DB, dir string) error {
		return goose.StatusContext(ctx, conn, dir)
	})
}

// Version returns the latest applied migration version.
func (s *GooseStrategy) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	var version int64
	err := s.run(ctx, db, "version", func(conn *sql.DB, _ string) error {
		v, err := goose.GetDBVersionContext(ctx, conn)
		version = v
		return err
	})
	return version, err
}

func (s *GooseStrategy) run(ctx context.Context, db *gorm.DB, op string, fn func(*sql.DB, string) error) error {
	dialect, dir, err := dialectFor(db)
	if err != nil {
		return err
	}

	conn, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(scripts)
	goose.SetLogger(&gooseLogger{log: s.logger})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	s.logger.Infow("running goose migration", "operation", op, "dialect", dialect)
	if err := fn(conn, dir); err != nil {
		s.logger.Errorw("goose migration failed", "operation", op, "error", err)
		return fmt.Errorf("goose %s failed: %w", op, err)
	}
	return nil
}

func dialectFor(db *gorm.DB) (dialect string, dir string, err error) {
	switch name := db.Dialector.Name(); name {
	case "mysql":
		return "mysql", path.Join("scripts", "mysql"), nil
	case "sqlite":
		return "sqlite3", path.Join("scripts", "sqlite"), nil
	default:
		return "", "", fmt.Errorf("no migration scripts for dialect %q", name)
	}
}

// AutoMigrateStrategy derives the schema from the gorm models. Only meant
// for local development and tests.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{
		logger: log.With("component", "migration.automigrate"),
	}
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

func (s *AutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	models := AutoMigrateModels()
	s.logger.Infow("starting gorm auto migrate", "models_count", len(models))

	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migrate failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	if err := ensureLiveSKUIndex(db.WithContext(ctx)); err != nil {
		s.logger.Errorw("failed to create live sku index", "error", err)
		return fmt.Errorf("failed to create live sku index: %w", err)
	}
	return nil
}

type gooseLogger struct {
	log logger.Interface
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}
