package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/email-utils/internal/core"
	"go.uber.org/zap"
)

// SQLiteCache is a SQLite implementation of the MXCacheRepository interface
type SQLiteCache struct {
	db      *sql.DB
	logger  *zap.Logger
	janitor *janitor
}

// NewSQLiteCache creates a new SQLite cache
func NewSQLiteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return NewSQLiteCacheFromDB(db, logger, cleanupFreq)
}

// NewSQLiteCacheFromDB creates a SQLite cache on an open database
func NewSQLiteCacheFromDB(db *sql.DB, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	// Create table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS mx_cache (
			domain TEXT PRIMARY KEY,
			has_mx BOOLEAN,
			checked_at TEXT,
			expires_at TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Create index on expires_at for faster cleanup
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_mx_expires_at ON mx_cache(expires_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	c := &SQLiteCache{
		db:     db,
		logger: logger,
	}
	c.janitor = startJanitor(cleanupFreq, c.Cleanup, logger)

	return c, nil
}

// Get retrieves a cached entry for a domain
func (c *SQLiteCache) Get(ctx context.Context, domain string) (*core.MXCacheEntry, error) {
	var entry core.MXCacheEntry
	var checkedAt, expiresAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT domain, has_mx, checked_at, expires_at
		FROM mx_cache
		WHERE domain = ? AND expires_at > ?
	`, cacheKey(domain), formatTime(time.Now())).Scan(&entry.Domain, &entry.HasMX, &checkedAt, &expiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	entry.CheckedAt, err = time.Parse(time.RFC3339, checkedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse checked_at timestamp: %w", err)
	}

	entry.ExpiresAt, err = time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expires_at timestamp: %w", err)
	}

	return &entry, nil
}

// Set stores a cache entry
func (c *SQLiteCache) Set(ctx context.Context, entry *core.MXCacheEntry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO mx_cache (domain, has_mx, checked_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, cacheKey(entry.Domain), entry.HasMX, formatTime(entry.CheckedAt), formatTime(entry.ExpiresAt))

	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	return nil
}

// Delete removes a cache entry
func (c *SQLiteCache) Delete(ctx context.Context, domain string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM mx_cache
		WHERE domain = ?
	`, cacheKey(domain))

	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}

	return nil
}

// Cleanup removes expired entries
func (c *SQLiteCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM mx_cache
		WHERE expires_at <= ?
	`, formatTime(time.Now()))

	if err != nil {
		return fmt.Errorf("failed to clean up expired entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

// Stop stops the background cleanup task and closes the database connection
func (c *SQLiteCache) Stop() {
	if !c.janitor.stop() {
		return
	}
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}

// formatTime renders t in UTC so stored timestamps compare lexically
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
