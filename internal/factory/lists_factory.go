package factory

import (
	"fmt"

	"github.com/mikey/email-utils/internal/adapters/lists"
	"github.com/mikey/email-utils/internal/config"
	"github.com/mikey/email-utils/internal/core"
	"go.uber.org/zap"
)

// ListProviderFactory creates domain list providers
type ListProviderFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewListProviderFactory creates a new list provider factory
func NewListProviderFactory(cfg *config.Config, logger *zap.Logger) *ListProviderFactory {
	return &ListProviderFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateListProvider creates a list provider based on lists.source
func (f *ListProviderFactory) CreateListProvider() (core.DomainListProvider, error) {
	listsCfg, err := f.cfg.GetLists()
	if err != nil {
		return nil, err
	}

	switch listsCfg.Source {
	case "embedded", "":
		return lists.NewEmbeddedProvider(f.logger), nil
	case "file":
		return lists.NewFileProvider(listsCfg.DisposablePath, listsCfg.AllowlistPath, f.logger), nil
	case "s3":
		return lists.NewS3Provider(lists.S3Config{
			Region:        listsCfg.S3.Region,
			Bucket:        listsCfg.S3.Bucket,
			DisposableKey: listsCfg.S3.DisposableKey,
			AllowlistKey:  listsCfg.S3.AllowlistKey,
			Timeout:       listsCfg.S3.Timeout,
		}, f.logger)
	default:
		return nil, fmt.Errorf("unsupported list source: %s", listsCfg.Source)
	}
}
