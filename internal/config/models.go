package config

import (
	"fmt"
	"time"
)

// ListsConfig represents where the domain lists are loaded from
type ListsConfig struct {
	Source         string
	DisposablePath string
	AllowlistPath  string
	S3             S3Config
}

// S3Config represents the bucket layout for lists stored in S3
type S3Config struct {
	Region        string
	Bucket        string
	DisposableKey string
	AllowlistKey  string
	Timeout       time.Duration
}

// ProvidersConfig represents the curated provider sets
type ProvidersConfig struct {
	Common     []string
	Authority  []string
	Private    []string
	Subaddress []string
}

// PrivacyConfig represents the hashing configuration
type PrivacyConfig struct {
	Salt          string
	HashAlgorithm string
}

// SpamConfig represents the spam scorer configuration
type SpamConfig struct {
	CommonTLDs []string
}

// DNSConfig represents the MX lookup configuration
type DNSConfig struct {
	Timeout time.Duration
}

// CacheConfig represents the MX cache configuration
type CacheConfig struct {
	Enabled          bool
	Type             string
	TTL              time.Duration
	CleanupFrequency time.Duration
	SQLitePath       string
	MySQLDSN         string
	RedisAddr        string
}

// GetLists returns the domain list configuration
func (c *Config) GetLists() (ListsConfig, error) {
	timeout, err := c.GetDuration("lists.s3.timeout")
	if err != nil {
		return ListsConfig{}, fmt.Errorf("invalid lists.s3.timeout: %w", err)
	}

	return ListsConfig{
		Source:         c.GetString("lists.source"),
		DisposablePath: c.GetString("lists.disposable_path"),
		AllowlistPath:  c.GetString("lists.allowlist_path"),
		S3: S3Config{
			Region:        c.GetString("lists.s3.region"),
			Bucket:        c.GetString("lists.s3.bucket"),
			DisposableKey: c.GetString("lists.s3.disposable_key"),
			AllowlistKey:  c.GetString("lists.s3.allowlist_key"),
			Timeout:       timeout,
		},
	}, nil
}

// GetProviders returns the provider sets
func (c *Config) GetProviders() ProvidersConfig {
	return ProvidersConfig{
		Common:     c.GetStringSlice("providers.common"),
		Authority:  c.GetStringSlice("providers.authority"),
		Private:    c.GetStringSlice("providers.private"),
		Subaddress: c.GetStringSlice("providers.subaddress"),
	}
}

// GetPrivacy returns the privacy configuration
func (c *Config) GetPrivacy() PrivacyConfig {
	return PrivacyConfig{
		Salt:          c.GetString("privacy.salt"),
		HashAlgorithm: c.GetString("privacy.hash_algorithm"),
	}
}

// GetSpam returns the spam scorer configuration
func (c *Config) GetSpam() SpamConfig {
	return SpamConfig{
		CommonTLDs: c.GetStringSlice("spam.common_tlds"),
	}
}

// GetDNS returns the MX lookup configuration
func (c *Config) GetDNS() (DNSConfig, error) {
	timeout, err := c.GetDuration("dns.timeout")
	if err != nil {
		return DNSConfig{}, fmt.Errorf("invalid dns.timeout: %w", err)
	}
	return DNSConfig{Timeout: timeout}, nil
}

// GetCache returns the MX cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache.ttl: %w", err)
	}

	cleanup, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache.cleanup_frequency: %w", err)
	}

	return CacheConfig{
		Enabled:          c.GetBool("cache.enabled"),
		Type:             c.GetString("cache.type"),
		TTL:              ttl,
		CleanupFrequency: cleanup,
		SQLitePath:       c.GetString("cache.sqlite_path"),
		MySQLDSN:         c.GetString("cache.mysql_dsn"),
		RedisAddr:        c.GetString("cache.redis_addr"),
	}, nil
}

// LoggingConfig represents the logger configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// GetLogging returns the logger configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}
