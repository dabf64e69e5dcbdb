package lists

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mikey/email-utils/internal/core"
	"github.com/mikey/email-utils/internal/domainlist"
	"go.uber.org/zap"
)

// ObjectGetter is the subset of the S3 client used by S3Provider
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config represents the location of the lists in S3
type S3Config struct {
	Region        string
	Bucket        string
	DisposableKey string
	AllowlistKey  string
	Timeout       time.Duration
}

// S3Provider reads lists from objects in an S3 bucket.
// LoadPath treats the path as an object key in the same bucket.
type S3Provider struct {
	client ObjectGetter
	cfg    S3Config
	logger *zap.Logger
}

// NewS3Provider creates a provider using the default AWS credential chain
func NewS3Provider(cfg S3Config, logger *zap.Logger) (*S3Provider, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewS3ProviderWithClient(s3.NewFromConfig(awsCfg), cfg, logger), nil
}

// NewS3ProviderWithClient creates a provider on an existing client
func NewS3ProviderWithClient(client ObjectGetter, cfg S3Config, logger *zap.Logger) *S3Provider {
	return &S3Provider{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Load reads the configured object for kind
func (p *S3Provider) Load(kind core.ListKind) ([]string, error) {
	switch kind {
	case core.ListDisposable:
		return p.LoadPath(p.cfg.DisposableKey)
	case core.ListAllowlist:
		return p.LoadPath(p.cfg.AllowlistKey)
	default:
		return nil, fmt.Errorf("unknown list kind: %s", kind)
	}
}

// LoadPath reads the object at key
func (p *S3Provider) LoadPath(key string) ([]string, error) {
	if key == "" {
		return []string{}, nil
	}

	ctx := context.Background()
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", p.cfg.Bucket, key, err)
	}
	defer out.Body.Close()

	domains, err := domainlist.Parse(out.Body)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Fetched domain list from S3",
		zap.String("bucket", p.cfg.Bucket),
		zap.String("key", key),
		zap.Int("count", len(domains)))

	return domains, nil
}
