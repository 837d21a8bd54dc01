package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Pool limits used when the corresponding setting is left at zero.
const (
	defaultMaxIdleConns    = 10
	defaultMaxOpenConns    = 100
	defaultConnMaxLifetime = time.Hour
)

// poolLimits is a PoolConfig with defaults filled in and the lifetime parsed.
type poolLimits struct {
	maxIdle  int
	maxOpen  int
	lifetime time.Duration
}

// resolvePool fills unset pool settings and rejects a lifetime that does not
// parse or is not positive.
func resolvePool(p PoolConfig) (poolLimits, error) {
	limits := poolLimits{
		maxIdle:  p.MaxIdleConns,
		maxOpen:  p.MaxOpenConns,
		lifetime: defaultConnMaxLifetime,
	}
	if limits.maxIdle <= 0 {
		limits.maxIdle = defaultMaxIdleConns
	}
	if limits.maxOpen <= 0 {
		limits.maxOpen = defaultMaxOpenConns
	}
	if raw := strings.TrimSpace(p.ConnMaxLifetime); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return poolLimits{}, fmt.Errorf("invalid pool.conn_max_lifetime %q: %w", raw, err)
		}
		if d <= 0 {
			return poolLimits{}, fmt.Errorf("invalid pool.conn_max_lifetime %q: must be positive", raw)
		}
		limits.lifetime = d
	}
	return limits, nil
}

// SetupDatabase opens the store behind the repositories and the lending read
// model. SQL statement logging follows the application logger: everything at
// debug, only slow queries and errors otherwise.
func SetupDatabase(cfg *DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("database config is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	limits, err := resolvePool(cfg.Pool)
	if err != nil {
		return nil, err
	}
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	mode := gormlogger.Warn
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		mode = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(mode),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap %s connection pool: %w", cfg.Driver, err)
	}
	sqlDB.SetMaxIdleConns(limits.maxIdle)
	sqlDB.SetMaxOpenConns(limits.maxOpen)
	sqlDB.SetConnMaxLifetime(limits.lifetime)

	logger.Info("database connected",
		slog.String("driver", cfg.Driver),
		slog.Int("max_idle_conns", limits.maxIdle),
		slog.Int("max_open_conns", limits.maxOpen),
		slog.Duration("conn_max_lifetime", limits.lifetime),
	)
	return db, nil
}

func openDialector(cfg *DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory %q: %w", dir, err)
			}
		}
		return sqlite.Open(cfg.SQLite.Path), nil
	case "postgres":
		return postgres.Open(buildPostgresDSN(&cfg.Postgres)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// SQLDriverName returns the database/sql driver name matching cfg.Driver,
// used to pick the bind style for raw queries sharing the gorm pool.
func SQLDriverName(cfg *DatabaseConfig) string {
	if cfg == nil {
		return ""
	}
	if cfg.Driver == "postgres" {
		return "pgx"
	}
	return "sqlite"
}

// buildPostgresDSN renders cfg as a postgres:// URL so credentials with
// reserved characters survive.
func buildPostgresDSN(cfg *PostgresConfig) string {
	if cfg == nil {
		return ""
	}
	dsn := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   cfg.DBName,
	}
	if cfg.User != "" || cfg.Password != "" {
		dsn.User = url.UserPassword(cfg.User, cfg.Password)
	}
	if cfg.SSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return dsn.String()
}
