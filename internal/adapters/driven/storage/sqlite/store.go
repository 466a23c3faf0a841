package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/leasefill/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
)

// DatabaseFile is the history database name inside the data directory.
const DatabaseFile = "history.db"

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store keeps contract history in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultDataDir returns ~/.leasefill/data.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".leasefill", "data"), nil
}

// NewStore opens or creates the history database in dataDir.
// If dataDir is empty, DefaultDataDir is used.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets the REST surface read history while a request writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores or updates a record.
func (s *Store) Save(ctx context.Context, record *domain.ContractRecord) error {
	unresolved := record.Unresolved
	if unresolved == nil {
		unresolved = []string{}
	}
	unresolvedJSON, err := json.Marshal(unresolved)
	if err != nil {
		return fmt.Errorf("marshalling unresolved tokens: %w", err)
	}

	now := time.Now().UTC()
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contracts (id, locatee, filename, path, schema_name, target, status,
			error_kind, message, unresolved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			locatee = excluded.locatee,
			filename = excluded.filename,
			path = excluded.path,
			schema_name = excluded.schema_name,
			target = excluded.target,
			status = excluded.status,
			error_kind = excluded.error_kind,
			message = excluded.message,
			unresolved = excluded.unresolved,
			updated_at = excluded.updated_at
	`, record.ID, record.Locatee, record.Filename, record.Path,
		string(record.Schema), string(record.Target), string(record.Status),
		string(record.ErrorKind), record.Message, string(unresolvedJSON),
		createdAt.UnixNano(), updatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving contract record: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.ContractRecord, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+" WHERE id = ?", id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// List returns records newest first. A limit of zero or less returns all.
func (s *Store) List(ctx context.Context, limit int) ([]domain.ContractRecord, error) {
	query := selectRecord + " ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contract records: %w", err)
	}
	defer rows.Close()

	records := []domain.ContractRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contract records: %w", err)
	}
	return records, nil
}

const selectRecord = `
	SELECT id, locatee, filename, path, schema_name, target, status,
		error_kind, message, unresolved, created_at, updated_at
	FROM contracts`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.ContractRecord, error) {
	var (
		record                 domain.ContractRecord
		schema, target, status string
		errorKind, unresolved  string
		createdAt, updatedAt   int64
	)
	if err := row.Scan(&record.ID, &record.Locatee, &record.Filename, &record.Path,
		&schema, &target, &status, &errorKind, &record.Message, &unresolved,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning contract record: %w", err)
	}

	if err := json.Unmarshal([]byte(unresolved), &record.Unresolved); err != nil {
		return nil, fmt.Errorf("unmarshalling unresolved tokens: %w", err)
	}
	record.Schema = domain.SchemaName(schema)
	record.Target = domain.DeliveryTarget(target)
	record.Status = domain.ContractStatus(status)
	record.ErrorKind = domain.ErrorKind(errorKind)
	record.CreatedAt = time.Unix(0, createdAt).UTC()
	record.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &record, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_history.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
