// Package sqlite provides the durable FileStore backed by SQLite.
//
// The database is opened in WAL mode; every mutation is written
// through before the call returns, so the metadata survives restarts
// and the search index can always be rebuilt from it.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
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

	"github.com/mediadex/mediadex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.FileStore = (*Store)(nil)

// Store is a SQLite-backed file store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store in the given data directory.
// If dataDir is empty, defaults to ~/.mediadex/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".mediadex", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
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

// migrate applies any pending up migrations from the embedded FS.
func (s *Store) migrate(fsys embed.FS) error {
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
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
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
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// Put stores a record and its chunks in one transaction.
// An existing hash is replaced wholesale; the content behind a hash is
// identical by definition, so replacement is idempotent.
func (s *Store) Put(ctx context.Context, record *domain.FileRecord, chunks []domain.Chunk) error {
	if record == nil {
		return domain.ErrInvalidInput
	}

	infoJSON, err := json.Marshal(record.Extraction.Info)
	if err != nil {
		return fmt.Errorf("encoding media info: %w", err)
	}

	var transcriptJSON sql.NullString
	if record.Extraction.Transcript != nil {
		raw, err := json.Marshal(record.Extraction.Transcript)
		if err != nil {
			return fmt.Errorf("encoding transcript: %w", err)
		}
		transcriptJSON = sql.NullString{String: string(raw), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO files (hash, name, kind, size, storage_path, uploaded_at, last_seen_at,
			extraction_text, extraction_info, status, diagnostic, transcript)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			name = excluded.name,
			storage_path = excluded.storage_path,
			last_seen_at = excluded.last_seen_at,
			extraction_text = excluded.extraction_text,
			extraction_info = excluded.extraction_info,
			status = excluded.status,
			diagnostic = excluded.diagnostic,
			transcript = excluded.transcript
	`, record.Hash, record.Name, string(record.Kind), record.Size, record.StoragePath,
		record.UploadedAt.UTC(), record.LastSeenAt.UTC(),
		record.Extraction.Text, string(infoJSON), string(record.Extraction.Status),
		record.Extraction.Diagnostic, transcriptJSON)
	if err != nil {
		return fmt.Errorf("upserting file: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE file_hash = ?", record.Hash); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	for _, c := range chunks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, file_hash, idx, text, start_sec, end_sec, timed)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.FileHash, c.Index, c.Text, c.StartSec, c.EndSec, boolToInt(c.Timed))
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a record by content hash.
func (s *Store) Get(ctx context.Context, hash string) (*domain.FileRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT hash, name, kind, size, storage_path, uploaded_at, last_seen_at,
			extraction_text, extraction_info, status, diagnostic, transcript
		FROM files WHERE hash = ?
	`, hash)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("querying file: %w", err)
	}
	return record, nil
}

// GetChunks retrieves a file's chunks in index order.
func (s *Store) GetChunks(ctx context.Context, hash string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_hash, idx, text, start_sec, end_sec, timed
		FROM chunks WHERE file_hash = ? ORDER BY idx
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var c domain.Chunk
		var timed int
		if err := rows.Scan(&c.ID, &c.FileHash, &c.Index, &c.Text, &c.StartSec, &c.EndSec, &timed); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		c.Timed = timed != 0
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// List returns records, optionally filtered by kind, newest first.
func (s *Store) List(ctx context.Context, kind domain.FileKind) ([]domain.FileRecord, error) {
	query := `
		SELECT hash, name, kind, size, storage_path, uploaded_at, last_seen_at,
			extraction_text, extraction_info, status, diagnostic, transcript
		FROM files
	`
	args := []any{}
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY uploaded_at DESC, hash"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var records []domain.FileRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// TouchLastSeen updates a record's last-seen timestamp.
func (s *Store) TouchLastSeen(ctx context.Context, hash string, seen time.Time) error {
	res, err := s.db.ExecContext(ctx, "UPDATE files SET last_seen_at = ? WHERE hash = ?", seen.UTC(), hash)
	if err != nil {
		return fmt.Errorf("updating last seen: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a record; its chunks go with it via the foreign key.
func (s *Store) Delete(ctx context.Context, hash string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE hash = ?", hash)
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one files row into a domain record.
func scanRecord(row scanner) (*domain.FileRecord, error) {
	var record domain.FileRecord
	var kind, status, infoJSON string
	var transcriptJSON sql.NullString

	err := row.Scan(&record.Hash, &record.Name, &kind, &record.Size, &record.StoragePath,
		&record.UploadedAt, &record.LastSeenAt,
		&record.Extraction.Text, &infoJSON, &status, &record.Extraction.Diagnostic, &transcriptJSON)
	if err != nil {
		return nil, err
	}

	record.Kind = domain.FileKind(kind)
	record.Extraction.Status = domain.ExtractionStatus(status)

	if err := json.Unmarshal([]byte(infoJSON), &record.Extraction.Info); err != nil {
		return nil, fmt.Errorf("decoding media info: %w", err)
	}
	if transcriptJSON.Valid {
		var transcript domain.Transcript
		if err := json.Unmarshal([]byte(transcriptJSON.String), &transcript); err != nil {
			return nil, fmt.Errorf("decoding transcript: %w", err)
		}
		record.Extraction.Transcript = &transcript
	}
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
