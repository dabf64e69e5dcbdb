package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/email-utils/internal/core"
	"go.uber.org/zap"
)

const mysqlTimeLayout = "2006-01-02 15:04:05"

// MySQLCache is a MySQL implementation of the MXCacheRepository interface
type MySQLCache struct {
	db      *sql.DB
	logger  *zap.Logger
	janitor *janitor
}

// NewMySQLCache creates a new MySQL cache
func NewMySQLCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	return NewMySQLCacheFromDB(db, logger, cleanupFreq)
}

// NewMySQLCacheFromDB creates a MySQL cache on an open database
func NewMySQLCacheFromDB(db *sql.DB, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	// Create table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS mx_cache (
			domain VARCHAR(255) PRIMARY KEY,
			has_mx BOOLEAN,
			checked_at TIMESTAMP,
			expires_at TIMESTAMP,
			INDEX idx_mx_expires_at (expires_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	c := &MySQLCache{
		db:     db,
		logger: logger,
	}
	c.janitor = startJanitor(cleanupFreq, c.Cleanup, logger)

	return c, nil
}

// Get retrieves a cached entry for a domain
func (c *MySQLCache) Get(ctx context.Context, domain string) (*core.MXCacheEntry, error) {
	var entry core.MXCacheEntry
	var checkedAt, expiresAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT domain, has_mx, checked_at, expires_at
		FROM mx_cache
		WHERE domain = ? AND expires_at > UTC_TIMESTAMP()
	`, cacheKey(domain)).Scan(&entry.Domain, &entry.HasMX, &checkedAt, &expiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	// Parse timestamps
	entry.CheckedAt, err = time.Parse(mysqlTimeLayout, checkedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse checked_at timestamp: %w", err)
	}

	entry.ExpiresAt, err = time.Parse(mysqlTimeLayout, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expires_at timestamp: %w", err)
	}

	return &entry, nil
}

// Set stores a cache entry
func (c *MySQLCache) Set(ctx context.Context, entry *core.MXCacheEntry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO mx_cache (domain, has_mx, checked_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			has_mx = VALUES(has_mx),
			checked_at = VALUES(checked_at),
			expires_at = VALUES(expires_at)
	`, cacheKey(entry.Domain), entry.HasMX, entry.CheckedAt.UTC().Format(mysqlTimeLayout), entry.ExpiresAt.UTC().Format(mysqlTimeLayout))

	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	return nil
}

// Delete removes a cache entry
func (c *MySQLCache) Delete(ctx context.Context, domain string) error {
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
func (c *MySQLCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM mx_cache
		WHERE expires_at <= UTC_TIMESTAMP()
	`)

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
func (c *MySQLCache) Stop() {
	if !c.janitor.stop() {
		return
	}
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
