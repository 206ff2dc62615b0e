package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/logstat/internal/stats"
)

// DefaultBatchSize is the number of inserts grouped into one transaction.
// Committing every insert separately is orders of magnitude slower.
const DefaultBatchSize = 10000

// ErrClosed is returned when a URLStore is used after Close.
var ErrClosed = errors.New("url store is closed")

// URLStore is a stats.URLSet backed by a temporary SQLite database.
// It is not safe for concurrent use.
type URLStore struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// tx and insert hold the open batch, if any.
	tx     *sql.Tx
	insert *sql.Stmt

	// pending is the number of inserts in the open batch.
	pending int

	batchSize int
	closed    bool
}

// Options configures URLStore behavior.
type Options struct {
	// BatchSize is the number of inserts per transaction.
	// Values that are not positive mean DefaultBatchSize.
	BatchSize int
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		BatchSize: DefaultBatchSize,
	}
}

// Open creates a new, empty URLStore in dir.
// The directory is created if it does not exist.
func Open(dir string, opts Options) (*URLStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "logstat-urls-*.db")
	if err != nil {
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}
	dbPath := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(dbPath)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		_ = os.Remove(dbPath)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer, and the store is used from one goroutine
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	s := &URLStore{
		db:        db,
		dbPath:    dbPath,
		batchSize: batchSize,
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// NewURLSetFactory returns a stats.URLSetFactory that opens a new URLStore in dir
// for every log file.
func NewURLSetFactory(dir string, opts Options) stats.URLSetFactory {
	return func() (stats.URLSet, error) {
		return Open(dir, opts)
	}
}

// Path returns the path of the database file.
func (s *URLStore) Path() string {
	return s.dbPath
}

// createTables prepares a scratch database. Durability is irrelevant because
// the file is deleted on Close, so journaling and syncing are turned off.
func (s *URLStore) createTables() error {
	schema := `
	PRAGMA journal_mode=OFF;
	PRAGMA synchronous=OFF;

	CREATE TABLE IF NOT EXISTS urls (
		path TEXT PRIMARY KEY
	) WITHOUT ROWID;
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Add implements stats.URLSet.Add.
func (s *URLStore) Add(ctx context.Context, path string) error {
	if s.closed {
		return ErrClosed
	}

	if s.tx == nil {
		if err := s.begin(ctx); err != nil {
			return err
		}
	}

	if _, err := s.insert.ExecContext(ctx, path); err != nil {
		return fmt.Errorf("failed to insert request path: %w", err)
	}

	s.pending++
	if s.pending >= s.batchSize {
		return s.commit()
	}
	return nil
}

// Len implements stats.URLSet.Len. Pending inserts are committed first.
func (s *URLStore) Len(ctx context.Context) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if err := s.commit(); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM urls").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count request paths: %w", err)
	}
	return count, nil
}

// Close implements stats.URLSet.Close.
// It discards any open batch, closes the database and deletes its file.
// Calling Close more than once is a no-op.
func (s *URLStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.tx != nil {
		if err := s.insert.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, err)
		}
		s.tx, s.insert = nil, nil
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	if err := os.Remove(s.dbPath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, fmt.Errorf("failed to remove spill file: %w", err))
	}
	return errors.Join(errs...)
}

// begin opens a new insert batch.
func (s *URLStore) begin(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO urls (path) VALUES (?)")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}

	s.tx = tx
	s.insert = stmt
	s.pending = 0
	return nil
}

// commit commits the open batch, if any.
func (s *URLStore) commit() error {
	if s.tx == nil {
		return nil
	}

	tx, stmt := s.tx, s.insert
	s.tx, s.insert, s.pending = nil, nil, 0

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to close insert statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit request paths: %w", err)
	}
	return nil
}
