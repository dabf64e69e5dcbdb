package dns

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/mikey/email-utils/internal/adapters/cache"
	"github.com/mikey/email-utils/internal/core"
	"go.uber.org/zap"
)

// LookupFunc resolves the MX records of a domain
type LookupFunc func(ctx context.Context, domain string) ([]*net.MX, error)

// Resolver checks MX records with a per-lookup timeout.
// Lookup errors are treated as no MX.
type Resolver struct {
	lookup  LookupFunc
	timeout time.Duration
	logger  *zap.Logger
}

// NewResolver creates a resolver using the system resolver
func NewResolver(timeout time.Duration, logger *zap.Logger) *Resolver {
	resolver := &net.Resolver{}
	return NewResolverWithLookup(resolver.LookupMX, timeout, logger)
}

// NewResolverWithLookup creates a resolver using lookup
func NewResolverWithLookup(lookup LookupFunc, timeout time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		lookup:  lookup,
		timeout: timeout,
		logger:  logger,
	}
}

// HasMX reports whether domain publishes at least one MX record
func (r *Resolver) HasMX(domain string) bool {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	records, err := r.lookup(ctx, domain)
	if err != nil {
		r.logger.Debug("MX lookup failed", zap.String("domain", domain), zap.Error(err))
		return false
	}
	return len(records) > 0
}

// CachingResolver remembers lookup results in a cache repository
type CachingResolver struct {
	next   core.MXResolver
	store  core.MXCacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachingResolver wraps next with store
func NewCachingResolver(next core.MXResolver, store core.MXCacheRepository, ttl time.Duration, logger *zap.Logger) *CachingResolver {
	return &CachingResolver{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// HasMX returns the cached result for domain or resolves and caches it
func (r *CachingResolver) HasMX(domain string) bool {
	ctx := context.Background()

	entry, err := r.store.Get(ctx, domain)
	if err == nil {
		r.logger.Debug("Cache hit for domain", zap.String("domain", domain))
		return entry.HasMX
	}
	if !errors.Is(err, cache.ErrNotFound) && !errors.Is(err, cache.ErrExpired) {
		r.logger.Warn("Failed to read MX cache", zap.String("domain", domain), zap.Error(err))
	}

	hasMX := r.next.HasMX(domain)

	now := time.Now()
	entry = &core.MXCacheEntry{
		Domain:    domain,
		HasMX:     hasMX,
		CheckedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}
	if err := r.store.Set(ctx, entry); err != nil {
		r.logger.Error("Failed to update MX cache", zap.Error(err))
	}

	return hasMX
}
