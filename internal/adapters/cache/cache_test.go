package cache

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/mikey/email-utils/internal/core"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newEntry(domain string, hasMX bool, ttl time.Duration) *core.MXCacheEntry {
	now := time.Now()
	return &core.MXCacheEntry{
		Domain:    domain,
		HasMX:     hasMX,
		CheckedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(zaptest.NewLogger(t), 0)
	defer c.Stop()

	_, err := c.Get(ctx, "example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, newEntry("example.com", true, time.Hour)))
	entry, err := c.Get(ctx, "example.com")
	require.NoError(t, err)
	assert.True(t, entry.HasMX)

	require.NoError(t, c.Set(ctx, newEntry("stale.com", false, -time.Minute)))
	_, err = c.Get(ctx, "stale.com")
	assert.ErrorIs(t, err, ErrExpired)

	require.NoError(t, c.Cleanup(ctx))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete(ctx, "example.com"))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheKeysIgnoreCase(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(zaptest.NewLogger(t), 0)
	defer c.Stop()

	require.NoError(t, c.Set(ctx, newEntry("Example.COM", true, time.Hour)))
	_, err := c.Get(ctx, "example.com")
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, " EXAMPLE.com "))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheJanitor(t *testing.T) {
	c := NewMemoryCache(zaptest.NewLogger(t), 10*time.Millisecond)
	defer c.Stop()

	require.NoError(t, c.Set(context.Background(), newEntry("stale.com", false, -time.Minute)))
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestMemoryCacheStopTwice(t *testing.T) {
	c := NewMemoryCache(zaptest.NewLogger(t), time.Hour)
	c.Stop()
	c.Stop()
}

func expectSQLiteSchema(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS mx_cache").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_mx_expires_at").WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestSQLiteCache(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	expectSQLiteSchema(mock)
	c, err := NewSQLiteCacheFromDB(db, zaptest.NewLogger(t), 0)
	require.NoError(t, err)

	entry := newEntry("example.com", true, time.Hour)
	mock.ExpectExec("INSERT OR REPLACE INTO mx_cache").
		WithArgs("example.com", true, formatTime(entry.CheckedAt), formatTime(entry.ExpiresAt)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, c.Set(ctx, entry))

	rows := sqlmock.NewRows([]string{"domain", "has_mx", "checked_at", "expires_at"}).
		AddRow("example.com", true, "2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z")
	mock.ExpectQuery("SELECT domain, has_mx, checked_at, expires_at FROM mx_cache").
		WithArgs("example.com", sqlmock.AnyArg()).
		WillReturnRows(rows)

	got, err := c.Get(ctx, "example.com")
	require.NoError(t, err)
	assert.True(t, got.HasMX)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), got.ExpiresAt)

	mock.ExpectQuery("SELECT domain, has_mx, checked_at, expires_at FROM mx_cache").
		WithArgs("missing.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"domain", "has_mx", "checked_at", "expires_at"}))
	_, err = c.Get(ctx, "missing.com")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec("DELETE FROM mx_cache WHERE expires_at").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, c.Cleanup(ctx))

	mock.ExpectExec("DELETE FROM mx_cache WHERE domain").
		WithArgs("example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, c.Delete(ctx, "example.com"))

	mock.ExpectClose()
	c.Stop()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteCacheSchemaFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS mx_cache").WillReturnError(assert.AnError)
	mock.ExpectClose()

	_, err = NewSQLiteCacheFromDB(db, zaptest.NewLogger(t), 0)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLCache(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS mx_cache").WillReturnResult(sqlmock.NewResult(0, 0))
	c, err := NewMySQLCacheFromDB(db, zaptest.NewLogger(t), 0)
	require.NoError(t, err)

	entry := newEntry("example.com", false, time.Hour)
	mock.ExpectExec("INSERT INTO mx_cache").
		WithArgs("example.com", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, c.Set(ctx, entry))

	rows := sqlmock.NewRows([]string{"domain", "has_mx", "checked_at", "expires_at"}).
		AddRow("example.com", false, "2026-01-01 00:00:00", "2026-01-02 00:00:00")
	mock.ExpectQuery("SELECT domain, has_mx, checked_at, expires_at FROM mx_cache").
		WithArgs("example.com").
		WillReturnRows(rows)

	got, err := c.Get(ctx, "example.com")
	require.NoError(t, err)
	assert.False(t, got.HasMX)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got.CheckedAt)

	mock.ExpectExec("DELETE FROM mx_cache WHERE expires_at").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, c.Cleanup(ctx))

	mock.ExpectClose()
	c.Stop()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: srv.Addr()}), zaptest.NewLogger(t))
	defer c.Stop()

	_, err := c.Get(ctx, "example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, newEntry("example.com", true, time.Hour)))
	got, err := c.Get(ctx, "example.com")
	require.NoError(t, err)
	assert.True(t, got.HasMX)
	assert.Equal(t, "example.com", got.Domain)
	assert.True(t, srv.Exists(redisKeyPrefix+"example.com"))

	// already expired entries are not written
	require.NoError(t, c.Set(ctx, newEntry("stale.com", true, -time.Minute)))
	assert.False(t, srv.Exists(redisKeyPrefix+"stale.com"))

	srv.FastForward(2 * time.Hour)
	_, err = c.Get(ctx, "example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, newEntry("example.com", true, time.Hour)))
	require.NoError(t, c.Delete(ctx, "example.com"))
	assert.False(t, srv.Exists(redisKeyPrefix+"example.com"))
	assert.NoError(t, c.Cleanup(ctx))
}
