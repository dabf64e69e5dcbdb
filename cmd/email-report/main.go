package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mikey/email-utils/internal/core"
	"github.com/mikey/email-utils/internal/di"
	"go.uber.org/zap"
)

// report is written to stdout once all input has been read
type report struct {
	Statistics core.Statistics `json:"statistics"`
	Invalid    []string        `json:"invalid,omitempty"`
	HighRisk   []riskEntry     `json:"high_risk,omitempty"`
}

type riskEntry struct {
	Address string `json:"address"`
	Score   int    `json:"score"`
}

// highRiskScore is the score from which an address is listed in the report
const highRiskScore = 50

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer(os.Getenv("EMAIL_UTILS_CONFIG"))
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
	logger *zap.Logger,
	engine *core.Engine,
	mx *di.MXStack,
) error {
	defer logger.Sync()
	defer mx.Stop()

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addresses, err := readAddresses(ctx, os.Stdin)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		logger.Info("Interrupted, reporting on partial input", zap.Int("addresses", len(addresses)))
	}

	rep := buildReport(engine, addresses)

	logger.Info("Report complete",
		zap.Int("total", rep.Statistics.Total),
		zap.Int("invalid", rep.Statistics.Invalid),
		zap.Int("high_risk", len(rep.HighRisk)))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func buildReport(engine *core.Engine, addresses []string) report {
	rep := report{
		Statistics: engine.Aggregator.GetStatistics(addresses),
		Invalid:    engine.Aggregator.FilterInvalid(addresses),
	}

	for _, addr := range engine.Aggregator.RemoveDuplicates(addresses, true) {
		if score := engine.Scorer.Score(addr, true); score >= highRiskScore {
			rep.HighRisk = append(rep.HighRisk, riskEntry{Address: addr, Score: score})
		}
	}

	return rep
}

// readAddresses reads non-blank lines until EOF or ctx is done
func readAddresses(ctx context.Context, r io.Reader) ([]string, error) {
	var addresses []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			addresses = append(addresses, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return addresses, nil
}
