package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/mbzesq/npl-vision-2/internal/common"
)

// Dialect selects placeholder style and schema details per driver.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DB bundles the database handle with the dialect it speaks. For Postgres it
// also owns the underlying pgx pool.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
	pool    *pgxpool.Pool
}

// Open connects to the database named by the DSN: postgres:// DSNs go through
// a pgx pool wrapped for database/sql; anything else is treated as a SQLite
// path for local use.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return openPostgres(ctx, cfg, logger)
	}
	return openSQLite(cfg, logger)
}

func openPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database", "dialect", DialectPostgres)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "npl-vision"

	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	logger.Info("successfully connected to database")
	return &DB{SQL: db, Dialect: DialectPostgres, pool: pool}, nil
}

func openSQLite(cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database", "dialect", DialectSQLite, "path", cfg.DSN)
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite is single-writer; cap the pool accordingly.
	db.SetMaxOpenConns(1)
	return &DB{SQL: db, Dialect: DialectSQLite}, nil
}

// Close closes the database connections gracefully.
func (d *DB) Close(logger *slog.Logger) {
	logger.Info("closing database connections")
	if d.SQL != nil {
		if err := d.SQL.Close(); err != nil {
			logger.Error("failed to close database handle", "error", err)
		}
	}
	if d.pool != nil {
		d.pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the database to catch DSN issues early.
func (d *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return d.SQL.PingContext(ctx)
}

var placeholderRe = regexp.MustCompile(`\$\d+`)

// bind rewrites $N placeholders into the style the dialect expects. Queries
// are written in Postgres style; SQLite takes ordinals.
func (d *DB) bind(query string) string {
	if d.Dialect == DialectPostgres {
		return query
	}
	return placeholderRe.ReplaceAllString(query, "?")
}
