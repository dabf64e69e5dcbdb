package lists

import (
	"bytes"
	"embed"
	"fmt"
	"os"

	"github.com/mikey/email-utils/internal/core"
	"github.com/mikey/email-utils/internal/domainlist"
	"go.uber.org/zap"
)

//go:embed data/*.txt
var embedded embed.FS

// EmbeddedProvider serves the lists compiled into the binary.
// LoadPath reads from the local filesystem.
type EmbeddedProvider struct {
	logger *zap.Logger
}

// NewEmbeddedProvider creates a new embedded provider
func NewEmbeddedProvider(logger *zap.Logger) *EmbeddedProvider {
	return &EmbeddedProvider{logger: logger}
}

// Load returns the built-in list for kind
func (p *EmbeddedProvider) Load(kind core.ListKind) ([]string, error) {
	name, err := fileName(kind)
	if err != nil {
		return nil, err
	}

	raw, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded list %s: %w", name, err)
	}

	return domainlist.Parse(bytes.NewReader(raw))
}

// LoadPath reads a list from a local file
func (p *EmbeddedProvider) LoadPath(path string) ([]string, error) {
	return readFile(path)
}

// FileProvider reads lists from local files
type FileProvider struct {
	paths  map[core.ListKind]string
	logger *zap.Logger
}

// NewFileProvider creates a provider reading the given paths.
// A kind with an empty path loads as an empty list.
func NewFileProvider(disposablePath, allowlistPath string, logger *zap.Logger) *FileProvider {
	return &FileProvider{
		paths: map[core.ListKind]string{
			core.ListDisposable: disposablePath,
			core.ListAllowlist:  allowlistPath,
		},
		logger: logger,
	}
}

// Load reads the configured file for kind
func (p *FileProvider) Load(kind core.ListKind) ([]string, error) {
	path, ok := p.paths[kind]
	if !ok {
		return nil, fmt.Errorf("unknown list kind: %s", kind)
	}
	if path == "" {
		p.logger.Debug("No file configured for list", zap.String("list", string(kind)))
		return []string{}, nil
	}
	return readFile(path)
}

// LoadPath reads a list from a local file
func (p *FileProvider) LoadPath(path string) ([]string, error) {
	return readFile(path)
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open domain list: %w", err)
	}
	defer f.Close()

	return domainlist.Parse(f)
}

func fileName(kind core.ListKind) (string, error) {
	switch kind {
	case core.ListDisposable:
		return "disposable.txt", nil
	case core.ListAllowlist:
		return "allowlist.txt", nil
	default:
		return "", fmt.Errorf("unknown list kind: %s", kind)
	}
}
