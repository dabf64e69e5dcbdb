package di

import (
	"flag"
	"fmt"
	"strings"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/email-utils/internal/config"
	"github.com/mikey/email-utils/internal/logging"
)

// Operations lists the values accepted by -op
var Operations = []string{
	"validate", "normalize", "ascii", "classify", "score",
	"anonymize", "mask", "hash", "placeholder", "tag", "untag",
	"dedupe", "group", "top", "stats", "extract", "filter",
}

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Operation flags
	Operation string
	JSON      bool

	// Privacy flags
	ShowFirst     int
	ShowLast      int
	HashDomain    bool
	HashLength    int
	Salt          string
	HashAlgorithm string

	// Subaddress flags
	Tag              string
	IgnoreSubaddress bool

	// Filter flags
	Patterns string
	Exclude  bool
	Types    string
	Top      int

	// Scoring flags
	CheckMX bool
	Cache   bool

	// List flags
	DisposableList string
	Allowlist      string
	AddDisposable  string
	AddAllowlist   string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line arguments and returns a CLIFlags struct
func ParseFlags(args []string) (*CLIFlags, error) {
	flags := &CLIFlags{}
	fs := flag.NewFlagSet("email-utils", flag.ContinueOnError)

	// Operation flags
	fs.StringVar(&flags.Operation, "op", "validate", "Operation ("+strings.Join(Operations, ", ")+")")
	fs.BoolVar(&flags.JSON, "json", false, "Write results as JSON")

	// Privacy flags
	fs.IntVar(&flags.ShowFirst, "show-first", 2, "Leading characters left visible by mask")
	fs.IntVar(&flags.ShowLast, "show-last", 1, "Trailing characters left visible by mask")
	fs.BoolVar(&flags.HashDomain, "hash-domain", false, "Hash the domain as well as the local part")
	fs.IntVar(&flags.HashLength, "length", 0, "Truncate hashes to this many characters")
	fs.StringVar(&flags.Salt, "salt", "", "Salt for hashing")
	fs.StringVar(&flags.HashAlgorithm, "algorithm", "sha256", "Hash algorithm (md5, sha1, sha256, sha512, blake3)")

	// Subaddress flags
	fs.StringVar(&flags.Tag, "tag", "", "Tag added by the tag operation")
	fs.BoolVar(&flags.IgnoreSubaddress, "ignore-subaddress", false, "Treat tagged addresses as duplicates of their base")

	// Filter flags
	fs.StringVar(&flags.Patterns, "patterns", "", "Comma-separated domain patterns for filter")
	fs.BoolVar(&flags.Exclude, "exclude", false, "Keep addresses that match no pattern")
	fs.StringVar(&flags.Types, "types", "", "Comma-separated provider types for filter")
	fs.IntVar(&flags.Top, "top", 5, "Number of domains reported by top")

	// Scoring flags
	fs.BoolVar(&flags.CheckMX, "check-mx", false, "Penalize domains without MX records")
	fs.BoolVar(&flags.Cache, "cache", false, "Cache MX lookups in memory")

	// List flags
	fs.StringVar(&flags.DisposableList, "disposable-list", "", "Path to a disposable domain list")
	fs.StringVar(&flags.Allowlist, "allowlist", "", "Path to an allowlist")
	fs.StringVar(&flags.AddDisposable, "add-disposable", "", "Comma-separated domains added to the disposable list")
	fs.StringVar(&flags.AddAllowlist, "add-allowlist", "", "Comma-separated domains added to the allowlist")

	// Input flags
	fs.StringVar(&flags.InputFile, "file", "", "Input file (use stdin if not specified)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if !isOperation(flags.Operation) {
		return nil, fmt.Errorf("unknown operation: %s", flags.Operation)
	}

	return flags, nil
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewFromFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return ConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	if err := provideEngine(container); err != nil {
		return nil, err
	}

	return container, nil
}

// ConfigFromFlags creates a configuration from command line flags
func ConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Privacy
	v.Set("privacy.salt", flags.Salt)
	v.Set("privacy.hash_algorithm", flags.HashAlgorithm)

	// The CLI only ever caches in memory
	v.Set("cache.enabled", flags.Cache)
	v.Set("cache.type", "memory")

	return config.NewFromViper(v)
}

// SplitList splits a comma-separated flag value, dropping empty items
func SplitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func isOperation(op string) bool {
	for _, o := range Operations {
		if o == op {
			return true
		}
	}
	return false
}
