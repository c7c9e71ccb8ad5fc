package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"transitpay/libs/db"
)

const sqlSchema = `
	CREATE TABLE IF NOT EXISTS client_session_entries (
		namespace TEXT NOT NULL,
		entry_key TEXT NOT NULL,
		entry_value TEXT NOT NULL,
		PRIMARY KEY (namespace, entry_key)
	)
`

// SQLStorage keeps entries in a table shared by many profiles, keyed by namespace.
// It works with both the sqlite and pgx drivers.
type SQLStorage struct {
	db        *sql.DB
	driver    string
	namespace string
}

// NewSQLStorage creates the entries table if needed.
func NewSQLStorage(ctx context.Context, conn *sql.DB, driver, namespace string) (*SQLStorage, error) {
	if conn == nil {
		return nil, errors.New("session: nil db")
	}
	if _, err := conn.ExecContext(ctx, sqlSchema); err != nil {
		return nil, fmt.Errorf("session: create schema: %w", err)
	}
	return &SQLStorage{db: conn, driver: driver, namespace: namespace}, nil
}

// bind rewrites $n placeholders for drivers that only take '?'.
func (s *SQLStorage) bind(query string) string {
	if s.driver != db.DriverSQLite {
		return query
	}
	for i := 9; i >= 1; i-- {
		query = strings.ReplaceAll(query, fmt.Sprintf("$%d", i), "?")
	}
	return query
}

// Get returns the value for key.
func (s *SQLStorage) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT entry_value FROM client_session_entries WHERE namespace = $1 AND entry_key = $2`
	var value string
	err := s.db.QueryRowContext(ctx, s.bind(query), s.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set upserts value under key.
func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	const query = `
		INSERT INTO client_session_entries (namespace, entry_key, entry_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (namespace, entry_key) DO UPDATE SET entry_value = EXCLUDED.entry_value
	`
	_, err := s.db.ExecContext(ctx, s.bind(query), s.namespace, key, value)
	return err
}

// Delete removes keys in one transaction.
func (s *SQLStorage) Delete(ctx context.Context, keys ...string) error {
	const query = `DELETE FROM client_session_entries WHERE namespace = $1 AND entry_key = $2`
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, s.bind(query), s.namespace, k); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
