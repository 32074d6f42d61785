package httpcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS responses (
	signature  TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);`

// SQLiteStore keeps cached responses in a single embedded database file.
// expires_at is a unix timestamp; zero means the entry never expires.
type SQLiteStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (creating if needed) the cache database at path.
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	logger.Debug("Cache database opened", zap.String("path", path))
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, signature string) ([]byte, bool, error) {
	var row struct {
		Body      []byte `db:"body"`
		ExpiresAt int64  `db:"expires_at"`
	}
	err := s.db.GetContext(ctx, &row,
		`SELECT body, expires_at FROM responses WHERE signature = ?`, signature)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}
	if row.ExpiresAt > 0 && time.Now().Unix() >= row.ExpiresAt {
		s.logger.Debug("Cache entry expired", zap.String("signature", signature))
		return nil, false, nil
	}
	return row.Body, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, signature string, body []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (signature, body, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(signature) DO UPDATE SET body = excluded.body, expires_at = excluded.expires_at`,
		signature, body, expiresAt)
	if err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// Clear removes every cached response.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM responses`); err != nil {
		return fmt.Errorf("cache clear error: %w", err)
	}
	return nil
}

// DeleteExpired removes entries whose expiry has passed.
func (s *SQLiteStore) DeleteExpired(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM responses WHERE expires_at > 0 AND expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("cache delete expired error: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	s.logger.Debug("Closing cache database")
	return s.db.Close()
}
