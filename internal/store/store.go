// Package store is the SQLite-backed shared state of the intake side:
// processed webhook events, the per-email rate limit, and the append-only
// order log. One read-write connection with immediate transactions keeps
// writers exclusive; reads go through a separate read-only pool.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/raceprep/raceprep/internal/errors"

	_ "embed"
)

//go:embed schema.sql
var schemaDefinition string

// Store wraps the two SQLite connections.
type Store struct {
	readWrite *sql.DB
	readOnly  *sql.DB
	logger    *slog.Logger
}

var once sync.Once

const optimizedDriver = "sqlite3optimized"

// registerOptimizedDriver executes performance pragmas on every new
// connection.
func registerOptimizedDriver() {
	sql.Register(optimizedDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if _, err := conn.Exec(
				"PRAGMA temp_store = memory;"+
					"PRAGMA mmap_size = 268435456;", nil); err != nil {
				return fmt.Errorf("exec optimization pragmas: %w", err)
			}
			return nil
		},
	})
}

// New connects to the database at url (":memory:" for tests), applies the
// schema, and returns the store.
func New(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	s, err := connect(ctx, url, logger)
	if err != nil {
		return nil, errors.Wrap(err, "connect store", slog.String("url", url))
	}
	if _, err := s.readWrite.ExecContext(ctx, schemaDefinition); err != nil {
		return nil, errors.Wrap(err, "apply store schema")
	}
	return s, nil
}

func connect(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	// In-memory databases need shared cache so both connections see the
	// same data, and a unique name so parallel tests stay isolated.
	inMemoryConfig := ""
	if strings.Contains(url, ":memory:") {
		url = "file:" + rand.Text()
		inMemoryConfig = "mode=memory&cache=shared"
	}
	commonConfig := strings.Join([]string{
		"_loc=auto",
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
	}, "&")

	readConfig := fmt.Sprintf("file:%s?mode=ro&_txlock=deferred&_query_only=true&%s&%s", url, commonConfig, inMemoryConfig)
	readWriteConfig := fmt.Sprintf("file:%s?mode=rwc&_txlock=immediate&%s&%s", url, commonConfig, inMemoryConfig)

	once.Do(registerOptimizedDriver)

	readWriteDB, err := sql.Open(optimizedDriver, readWriteConfig)
	if err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}
	readWriteDB.SetMaxOpenConns(1)
	readWriteDB.SetMaxIdleConns(1)
	readWriteDB.SetConnMaxLifetime(time.Hour)
	readWriteDB.SetConnMaxIdleTime(time.Hour)

	if err := readWriteDB.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping read-write database")
	}

	readDB, err := sql.Open(optimizedDriver, readConfig)
	if err != nil {
		return nil, errors.Wrap(err, "open read database")
	}
	const maxReadConns = 10
	readDB.SetMaxOpenConns(maxReadConns)
	readDB.SetMaxIdleConns(maxReadConns)
	readDB.SetConnMaxLifetime(time.Hour)
	readDB.SetConnMaxIdleTime(time.Hour)

	logger.LogAttrs(ctx, slog.LevelInfo, "opened store", slog.String("url", url))

	return &Store{readWrite: readWriteDB, readOnly: readDB, logger: logger}, nil
}

// Ping verifies the read connection is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.readOnly.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping store")
	}
	return nil
}

// Close closes both connections.
func (s *Store) Close() error {
	return stderrors.Join(s.readOnly.Close(), s.readWrite.Close())
}
