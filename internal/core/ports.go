package core

import (
	"context"
)

// Validator decides whether a string is a syntactically valid address
type Validator interface {
	Valid(address string) bool
}

// DomainListProvider loads domain lists from an external source
type DomainListProvider interface {
	// Load returns the configured list for kind
	Load(kind ListKind) ([]string, error)

	// LoadPath returns a user supplied list
	LoadPath(path string) ([]string, error)
}

// SaltProvider supplies the default salt for hashing
type SaltProvider interface {
	Salt() string
}

// Digester hashes a value with the named algorithm and salt
type Digester interface {
	Digest(value, algorithm, salt string) (string, error)
}

// MXResolver reports whether a domain publishes MX records
type MXResolver interface {
	HasMX(domain string) bool
}

// IDNAConverter converts a unicode domain to its ASCII form
type IDNAConverter interface {
	ToASCII(domain string) (string, error)
}

// MXCacheRepository defines the interface for caching MX lookups
type MXCacheRepository interface {
	// Get retrieves a cached entry for a domain
	Get(ctx context.Context, domain string) (*MXCacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *MXCacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, domain string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error

	// Stop releases the repository's background tasks and connections
	Stop()
}
