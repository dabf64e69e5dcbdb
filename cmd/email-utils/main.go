package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mikey/email-utils/internal/core"
	"github.com/mikey/email-utils/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags, err := di.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	engine *core.Engine,
	mx *di.MXStack,
) error {
	defer logger.Sync()
	defer mx.Stop()

	// Read input from file or stdin
	var input io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		input = file
		logger.Debug("Reading input from file", zap.String("file", flags.InputFile))
	} else {
		input = os.Stdin
		logger.Debug("Reading input from stdin")
	}

	r := newRunner(engine, flags, os.Stdout, logger)
	return r.run(input)
}
