package factory

import (
	"github.com/mikey/email-utils/internal/adapters/digest"
	"github.com/mikey/email-utils/internal/adapters/idna"
	"github.com/mikey/email-utils/internal/adapters/validator"
	"github.com/mikey/email-utils/internal/config"
	"github.com/mikey/email-utils/internal/core"
	"go.uber.org/zap"
)

// EngineFactory assembles the engine from configuration and adapters
type EngineFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEngineFactory creates a new engine factory
func NewEngineFactory(cfg *config.Config, logger *zap.Logger) *EngineFactory {
	return &EngineFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// EngineConfig returns the engine configuration derived from the config file
func (f *EngineFactory) EngineConfig() core.EngineConfig {
	providers := f.cfg.GetProviders()
	return core.EngineConfig{
		Providers: core.ProviderSets{
			Common:    providers.Common,
			Authority: providers.Authority,
			Private:   providers.Private,
		},
		SubaddressProviders: providers.Subaddress,
		CommonTLDs:          f.cfg.GetSpam().CommonTLDs,
		HashAlgorithm:       f.cfg.GetPrivacy().HashAlgorithm,
	}
}

// CreateEngine creates the engine over the given list provider and resolver
func (f *EngineFactory) CreateEngine(provider core.DomainListProvider, resolver core.MXResolver) *core.Engine {
	privacy := f.cfg.GetPrivacy()

	f.logger.Debug("Creating engine",
		zap.String("hash_algorithm", privacy.HashAlgorithm),
		zap.Bool("salted", privacy.Salt != ""))

	return core.NewEngine(f.EngineConfig(), core.Collaborators{
		Validator: validator.New(f.logger),
		Lists:     provider,
		Salt:      digest.NewStaticSalt(privacy.Salt),
		Digester:  digest.NewHMAC(),
		Resolver:  resolver,
		IDNA:      idna.New(),
	}, f.logger)
}
