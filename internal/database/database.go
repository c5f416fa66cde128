// Listenwell - Story Listening Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listenwell

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/listenwell/internal/config"
	"github.com/tomtom215/listenwell/internal/logging"
)

const memoryPath = ":memory:"

// DB is the play event store. It satisfies analytics.Source.
type DB struct {
	conn         *sql.DB
	driver       string
	path         string
	queryTimeout time.Duration
}

// New opens the store selected by cfg.Driver and initializes the schema.
// An empty Path or ":memory:" opens an in-memory store.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverDuckDB
	}
	path := cfg.Path
	if path == "" {
		path = memoryPath
	}

	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if path != memoryPath {
		if dbDir := filepath.Dir(path); dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	var (
		conn *sql.DB
		err  error
	)
	switch driver {
	case config.DriverDuckDB:
		conn, err = openDuckDB(path, cfg)
	case config.DriverSQLite:
		conn, err = openSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	db := &DB{
		conn:         conn,
		driver:       driver,
		path:         path,
		queryTimeout: cfg.QueryTimeout,
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("driver", driver).
		Str("path", path).
		Msg("Play event store ready")

	return db, nil
}

func openDuckDB(path string, cfg *config.DatabaseConfig) (*sql.DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	// Auto-install/auto-load stay off: the schema needs no extensions.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return conn, nil
}

func openSQLite(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// A single connection keeps per-connection pragmas in force and an
	// in-memory database alive for the lifetime of the pool.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := conn.Exec(pragma); execErr != nil {
			closeQuietly(conn)
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return conn, nil
}

// configureConnectionPool sizes the pool for the driver.
func (db *DB) configureConnectionPool() {
	if db.driver == config.DriverSQLite {
		db.conn.SetMaxIdleConns(1)
		db.conn.SetConnMaxLifetime(0)
		db.conn.SetConnMaxIdleTime(0)
		return
	}
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Conn returns the underlying connection pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close closes the database connection. DuckDB stores are checkpointed first
// so the WAL is flushed into the main file.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if db.driver == config.DriverDuckDB && db.path != memoryPath {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}
	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// withTimeout bounds ctx by the configured query timeout.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}
