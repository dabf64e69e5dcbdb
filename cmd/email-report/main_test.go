package main

import (
	"context"
	"strings"
	"testing"

	"github.com/mikey/email-utils/internal/adapters/lists"
	"github.com/mikey/email-utils/internal/config"
	"github.com/mikey/email-utils/internal/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestBuildReport(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := config.NewFromViper(config.NewEmptyViper())
	engine := factory.NewEngineFactory(cfg, logger).CreateEngine(lists.NewEmbeddedProvider(logger), nil)

	addresses := []string{
		"john@gmail.com",
		"john+shop@gmail.com",
		"a.b.c.d.e.1234@mailinator.com",
		"broken",
	}

	rep := buildReport(engine, addresses)
	assert.Equal(t, 4, rep.Statistics.Total)
	assert.Equal(t, []string{"broken"}, rep.Invalid)
	require.Len(t, rep.HighRisk, 1)
	assert.Equal(t, "a.b.c.d.e.1234@mailinator.com", rep.HighRisk[0].Address)
	assert.GreaterOrEqual(t, rep.HighRisk[0].Score, highRiskScore)
}

func TestReadAddresses(t *testing.T) {
	got, err := readAddresses(context.Background(), strings.NewReader("a@x.com\n\n  b@y.com \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@y.com"}, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err = readAddresses(ctx, strings.NewReader("a@x.com\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
