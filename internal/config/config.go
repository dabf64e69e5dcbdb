package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikey/email-utils/internal/core"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	return NewFromFile("")
}

// NewFromFile creates a configuration instance reading path when set,
// otherwise searching the default locations
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/email-utils/")
		v.AddConfigPath("$HOME/.email-utils")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("EMAIL_UTILS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Domain list defaults
	v.SetDefault("lists.source", "embedded")
	v.SetDefault("lists.disposable_path", "")
	v.SetDefault("lists.allowlist_path", "")
	v.SetDefault("lists.s3.region", "us-east-1")
	v.SetDefault("lists.s3.bucket", "")
	v.SetDefault("lists.s3.disposable_key", "lists/disposable.txt")
	v.SetDefault("lists.s3.allowlist_key", "lists/allowlist.txt")
	v.SetDefault("lists.s3.timeout", "10s")

	// Provider defaults
	v.SetDefault("providers.common", core.DefaultCommonProviders)
	v.SetDefault("providers.authority", core.DefaultAuthorityProviders)
	v.SetDefault("providers.private", core.DefaultPrivateProviders)
	v.SetDefault("providers.subaddress", core.DefaultSubaddressProviders)

	// Privacy defaults
	v.SetDefault("privacy.salt", "")
	v.SetDefault("privacy.hash_algorithm", core.DefaultHashAlgorithm)

	// Spam defaults
	v.SetDefault("spam.common_tlds", core.DefaultCommonTLDs)

	// DNS defaults
	v.SetDefault("dns.timeout", "5s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/mx_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/email_utils")
	v.SetDefault("cache.redis_addr", "localhost:6379")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
