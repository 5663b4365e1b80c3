package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS attendance_ledgers (
	storage_key TEXT PRIMARY KEY,
	payload     TEXT NOT NULL,
	updated_at  INTEGER NOT NULL
)`

// SQLiteStore persists ledgers in a single-node embedded database. It is the
// closest analogue to a device-local key/value store.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path. Use ":memory:" for
// a throwaway store.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one connection keeps ":memory:" databases alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]PunchRecord, error) {
	var payload string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM attendance_ledgers WHERE storage_key = ?`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", key, err)
	}
	return DecodeRecords([]byte(payload))
}

func (s *SQLiteStore) Save(ctx context.Context, key string, records []PunchRecord) error {
	payload, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO attendance_ledgers (storage_key, payload, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(storage_key) DO UPDATE SET
	payload = excluded.payload,
	updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save ledger %s: %w", key, err)
	}
	return nil
}
