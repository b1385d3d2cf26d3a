package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/klabast/wb-services/geo-events/internal/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS local_storage (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    checksum TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SQLite keeps the record as one row of a key/value table
type SQLite struct {
	sqlDB *sql.DB
	key   string
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for a
// throwaway database.
func OpenSQLite(path, namespace string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases from splitting per connection.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(createTableSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ensure local_storage table: %w", err)
	}
	return &SQLite{sqlDB: sqlDB, key: namespace}, nil
}

// Close closes the SQLite handle
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load reads the record row for the namespace
func (s *SQLite) Load() ([]model.Geo, error) {
	var value, checksum string
	err := s.sqlDB.QueryRow(
		`SELECT value, checksum FROM local_storage WHERE key = ?`, s.key,
	).Scan(&value, &checksum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query state row: %w", err)
	}
	data := []byte(value)
	if err := verify(data, checksum); err != nil {
		return nil, err
	}
	return Decode(data)
}

// Save upserts the record row for the namespace
func (s *SQLite) Save(geos []model.Geo) error {
	data, err := Encode(geos)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.Exec(`
INSERT INTO local_storage (key, value, checksum, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    value = excluded.value,
    checksum = excluded.checksum,
    updated_at = excluded.updated_at
`, s.key, string(data), Digest(data), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert state row: %w", err)
	}
	return nil
}
