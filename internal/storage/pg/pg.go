package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/itchan-dev/minichan/shared/config"
	internal_errors "github.com/itchan-dev/minichan/shared/errors"
	"github.com/itchan-dev/minichan/shared/logger"

	_ "github.com/lib/pq"
)

// Storage is the only component touching persistent state. The *sql.DB pool
// is safe for concurrent use and hands every call its own connection.
type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := ApplyMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db}, nil
}

// NewFromDB wraps an already opened pool. Migrations are not applied.
func NewFromDB(db *sql.DB) *Storage {
	return &Storage{db}
}

func Connect(ctx context.Context, cfg config.Pg) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// Ping is used by the readiness probe.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// storeFailure wraps a driver error so callers can match ErrStoreFailure.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, internal_errors.ErrStoreFailure, err)
}
