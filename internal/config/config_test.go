package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikey/email-utils/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	lists, err := cfg.GetLists()
	require.NoError(t, err)
	assert.Equal(t, "embedded", lists.Source)
	assert.Equal(t, 10*time.Second, lists.S3.Timeout)

	assert.Equal(t, core.DefaultCommonProviders, cfg.GetProviders().Common)
	assert.Equal(t, core.DefaultSubaddressProviders, cfg.GetProviders().Subaddress)
	assert.Equal(t, "sha256", cfg.GetPrivacy().HashAlgorithm)
	assert.Equal(t, core.DefaultCommonTLDs, cfg.GetSpam().CommonTLDs)

	dns, err := cfg.GetDNS()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, dns.Timeout)

	cache, err := cfg.GetCache()
	require.NoError(t, err)
	assert.True(t, cache.Enabled)
	assert.Equal(t, "memory", cache.Type)
	assert.Equal(t, 24*time.Hour, cache.TTL)
	assert.Equal(t, time.Hour, cache.CleanupFrequency)
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
lists:
  source: file
  disposable_path: /tmp/disposable.txt
privacy:
  salt: pepper
  hash_algorithm: blake3
cache:
  type: redis
  ttl: 1h
providers:
  common:
    - example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewFromFile(path)
	require.NoError(t, err)

	lists, err := cfg.GetLists()
	require.NoError(t, err)
	assert.Equal(t, "file", lists.Source)
	assert.Equal(t, "/tmp/disposable.txt", lists.DisposablePath)

	assert.Equal(t, PrivacyConfig{Salt: "pepper", HashAlgorithm: "blake3"}, cfg.GetPrivacy())
	assert.Equal(t, []string{"example.com"}, cfg.GetProviders().Common)
	assert.Equal(t, core.DefaultPrivateProviders, cfg.GetProviders().Private)

	cache, err := cfg.GetCache()
	require.NoError(t, err)
	assert.Equal(t, "redis", cache.Type)
	assert.Equal(t, time.Hour, cache.TTL)
}

func TestNewFromFileMissing(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("EMAIL_UTILS_PRIVACY_SALT", "from-env")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GetPrivacy().Salt)
}

func TestInvalidDuration(t *testing.T) {
	v := NewEmptyViper()
	v.Set("dns.timeout", "soon")
	v.Set("cache.ttl", "forever")
	cfg := NewFromViper(v)

	_, err := cfg.GetDNS()
	assert.ErrorContains(t, err, "dns.timeout")

	_, err = cfg.GetCache()
	assert.ErrorContains(t, err, "cache.ttl")
}
