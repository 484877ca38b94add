// Package database implements the domain repository on top of gorm, using
// PostgreSQL in production and SQLite for local runs and tests.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gamelibrary/internal/domain"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects the backend and controls query logging.
type Config struct {
	Driver string
	DSN    string
	// SlowThreshold is the duration above which queries are logged at warn
	// level. Zero uses 200ms.
	SlowThreshold time.Duration
	Logger        *slog.Logger
}

// DB wraps a *gorm.DB and implements domain.Repository.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

// Ensure interfaces are met.
var (
	_ domain.Repository    = (*DB)(nil)
	_ domain.RequestScoper = (*DB)(nil)
)

// Open connects to the configured backend, pings, and runs migrations.
func Open(cfg Config) (*DB, error) {
	gcfg := &gorm.Config{Logger: newLogger(cfg)}

	var (
		g   *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres, "":
		s, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, err
		}
		s.SetMaxOpenConns(10)
		s.SetMaxIdleConns(5)
		s.SetConnMaxLifetime(5 * time.Minute)
		g, err = gorm.Open(postgres.New(postgres.Config{Conn: s}), gcfg)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
	case DriverSQLite:
		g, err = gorm.Open(sqlite.Open(cfg.DSN), gcfg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	s, err := g.DB()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{gorm: g, sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	err := d.gorm.WithContext(ctx).AutoMigrate(
		&gameRow{},
		&genreRow{},
		&publisherRow{},
		&gameGenreRow{},
		&userRow{},
		&reviewRow{},
		&wishlistRow{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// newLogger routes gorm's query log through slog.
func newLogger(cfg Config) logger.Interface {
	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}
	slow := cfg.SlowThreshold
	if slow == 0 {
		slow = 200 * time.Millisecond
	}
	return logger.New(
		slog.NewLogLogger(l.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
