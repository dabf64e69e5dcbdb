package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/email-utils/internal/config"
	"github.com/mikey/email-utils/internal/core"
	"github.com/mikey/email-utils/internal/factory"
	"github.com/mikey/email-utils/internal/logging"
)

// MXStack is the resolver handed to the engine together with the cache
// behind it. Cache is nil when caching is disabled.
type MXStack struct {
	Resolver core.MXResolver
	Cache    core.MXCacheRepository
}

// Stop releases the cache, if any
func (s *MXStack) Stop() {
	if s != nil && s.Cache != nil {
		s.Cache.Stop()
	}
}

// BuildContainer creates and configures a dependency injection container
// reading configuration from configFile, or the default locations when empty
func BuildContainer(configFile string) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		return config.NewFromFile(configFile)
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideEngine(container); err != nil {
		return nil, err
	}

	return container, nil
}

// provideEngine registers the factories and everything built from them.
// The container must already provide *config.Config and *zap.Logger.
func provideEngine(container *dig.Container) error {
	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewListProviderFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewResolverFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewEngineFactory); err != nil {
		return err
	}

	// Register domain list provider
	if err := container.Provide(func(f *factory.ListProviderFactory) (core.DomainListProvider, error) {
		return f.CreateListProvider()
	}); err != nil {
		return err
	}

	// Register MX resolver and its cache
	if err := container.Provide(func(f *factory.ResolverFactory) (*MXStack, error) {
		resolver, store, err := f.CreateResolver()
		if err != nil {
			return nil, err
		}
		return &MXStack{Resolver: resolver, Cache: store}, nil
	}); err != nil {
		return err
	}

	// Register engine
	if err := container.Provide(func(
		f *factory.EngineFactory,
		provider core.DomainListProvider,
		mx *MXStack,
		logger *zap.Logger,
	) *core.Engine {
		engine := f.CreateEngine(provider, mx.Resolver)
		logger.Debug("Engine ready", zap.Bool("mx_cache", mx.Cache != nil))
		return engine
	}); err != nil {
		return err
	}

	return nil
}
