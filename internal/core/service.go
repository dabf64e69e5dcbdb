package core

import (
	"github.com/mikey/email-utils/internal/utils"
	"go.uber.org/zap"
)

// Collaborators are the external capabilities the engine depends on.
// Only Validator and Digester are required.
type Collaborators struct {
	Validator Validator
	Lists     DomainListProvider
	Salt      SaltProvider
	Digester  Digester
	Resolver  MXResolver
	IDNA      IDNAConverter
}

// EngineConfig holds the curated sets and policies of the engine
type EngineConfig struct {
	Providers           ProviderSets
	SubaddressProviders []string
	CommonTLDs          []string
	HashAlgorithm       string
}

// DefaultEngineConfig returns the built-in engine configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Providers:           DefaultProviderSets(),
		SubaddressProviders: DefaultSubaddressProviders,
		CommonTLDs:          DefaultCommonTLDs,
		HashAlgorithm:       DefaultHashAlgorithm,
	}
}

// Engine wires every component over one shared set of domain lists
type Engine struct {
	Parser      *Parser
	Subaddress  *Subaddresser
	Lists       *DomainLists
	Classifier  *Classifier
	Transformer *Transformer
	Scorer      *SpamScorer
	Aggregator  *Aggregator
}

// NewEngine creates a new engine
func NewEngine(cfg EngineConfig, c Collaborators, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	parser := NewParser(c.Validator, c.IDNA, logger)
	sub := NewSubaddresser(parser, cfg.SubaddressProviders, logger)
	lists := NewDomainLists(c.Lists, logger)
	classifier := NewClassifier(parser, lists, cfg.Providers, logger)

	return &Engine{
		Parser:      parser,
		Subaddress:  sub,
		Lists:       lists,
		Classifier:  classifier,
		Transformer: NewTransformer(parser, c.Salt, c.Digester, cfg.HashAlgorithm, logger),
		Scorer:      NewSpamScorer(parser, classifier, c.Resolver, cfg.CommonTLDs, logger),
		Aggregator:  NewAggregator(parser, sub, classifier, utils.NewTextProcessor(logger), logger),
	}
}
