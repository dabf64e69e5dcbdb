package factory

import (
	"github.com/mikey/email-utils/internal/adapters/dns"
	"github.com/mikey/email-utils/internal/config"
	"github.com/mikey/email-utils/internal/core"
	"go.uber.org/zap"
)

// ResolverFactory creates MX resolvers, wrapping them in a cache when enabled
type ResolverFactory struct {
	cfg          *config.Config
	cacheFactory *CacheFactory
	logger       *zap.Logger
}

// NewResolverFactory creates a new resolver factory
func NewResolverFactory(cfg *config.Config, cacheFactory *CacheFactory, logger *zap.Logger) *ResolverFactory {
	return &ResolverFactory{
		cfg:          cfg,
		cacheFactory: cacheFactory,
		logger:       logger,
	}
}

// CreateResolver creates the MX resolver. The returned repository is nil
// when caching is disabled; callers stop it when done.
func (f *ResolverFactory) CreateResolver() (core.MXResolver, core.MXCacheRepository, error) {
	dnsCfg, err := f.cfg.GetDNS()
	if err != nil {
		return nil, nil, err
	}

	resolver := dns.NewResolver(dnsCfg.Timeout, f.logger)
	if !f.cacheFactory.IsCacheEnabled() {
		return resolver, nil, nil
	}

	ttl, err := f.cacheFactory.GetCacheTTL()
	if err != nil {
		return nil, nil, err
	}

	store, err := f.cacheFactory.CreateCacheRepository()
	if err != nil {
		return nil, nil, err
	}

	f.logger.Info("MX cache enabled",
		zap.String("type", f.cfg.GetString("cache.type")),
		zap.Duration("ttl", ttl))

	return dns.NewCachingResolver(resolver, store, ttl, f.logger), store, nil
}
