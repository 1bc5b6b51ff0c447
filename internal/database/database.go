package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// DatabaseName is the fixed file name of the local store.
const DatabaseName = "talentflow.db"

// SchemaVersion is written to PRAGMA user_version. Bump it whenever a table
// or index changes shape. Additive index changes only need schema.sql; removing
// or narrowing an index also needs a migrateToVN step.
const SchemaVersion = 1

// Store is the local document store. It is safe for concurrent use, but only
// one transaction runs at a time: the pool is capped at a single connection.
type Store struct {
	db           *sql.DB
	path         string
	now          func() time.Time
	interceptors []Interceptor
	log          *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now as the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithInterceptor appends a write interceptor. Interceptors run in
// registration order after the built-in timestamp interceptor.
func WithInterceptor(i Interceptor) Option {
	return func(s *Store) { s.interceptors = append(s.interceptors, i) }
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// OpenDir creates dir if needed and opens DatabaseName inside it.
func OpenDir(ctx context.Context, dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StorageError{Op: "open", Kind: KindIO, Err: fmt.Errorf("create data directory: %w", err)}
	}
	return Open(ctx, filepath.Join(dir, DatabaseName), opts...)
}

// Open creates or opens the SQLite database at path, applies pragmas and
// brings the schema up to SchemaVersion. Safe to call on an existing file.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:         path,
		now:          time.Now,
		interceptors: []Interceptor{Timestamps},
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, wrapErr("open", "", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapErr("open", "", err)
	}

	// One writer at a time; a transaction holds the only connection, so
	// readers never observe a half-applied write.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	s.log.Debug("store opened", "path", path, "schema_version", SchemaVersion)
	return s, nil
}

// Close closes the database. Calling it more than once is harmless.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// View runs fn inside a read-only transaction. Writes through the Tx fail.
// Do not start another transaction from inside fn: the single connection is
// already held and the call would block forever.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	return s.run(ctx, false, fn)
}

// Update runs fn inside a read-write transaction. If fn returns an error or
// panics every write made through the Tx is rolled back.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) run(ctx context.Context, writable bool, fn func(tx *Tx) error) error {
	if s.db == nil {
		return &StorageError{Op: "begin", Kind: KindClosed, Err: sql.ErrConnDone}
	}
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("begin", "", err)
	}
	defer sqlTx.Rollback() // no-op after commit

	tx := &Tx{tx: sqlTx, store: s, writable: writable}
	if err := fn(tx); err != nil {
		return err
	}
	if !writable {
		return nil
	}
	if err := sqlTx.Commit(); err != nil {
		return wrapErr("commit", "", err)
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return wrapErr("migrate", "", fmt.Errorf("get user_version: %w", err))
	}
	if version > SchemaVersion {
		return &StorageError{
			Op:   "migrate",
			Kind: KindCorruption,
			Err:  fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion),
		}
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return wrapErr("migrate", "", fmt.Errorf("execute schema: %w", err))
	}

	// Versioned migrations go here as the schema evolves:
	// if version < 2 { migrateToV2(...) }

	if version != SchemaVersion {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
			return wrapErr("migrate", "", fmt.Errorf("set user_version: %w", err))
		}
	}
	return nil
}

// schemaVersion reads the stored user_version. Used by tests.
func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}
