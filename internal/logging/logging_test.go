package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := WithLogger(context.Background(), logger)
	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("carried")

	assert.Contains(t, buf.String(), "carried")
}

func TestFromContextDefaultsToNop(t *testing.T) {
	logger := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestWithSymbolAddsField(t *testing.T) {
	var buf bytes.Buffer
	logger := WithSymbol(zerolog.New(&buf), "AAPL")

	logger.Info().Msg("trade")

	assert.Contains(t, buf.String(), `"symbol":"AAPL"`)
}

func TestLogImportFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	LogImport(logger, "trades.csv", 10, 7, 3)

	got := buf.String()
	assert.Contains(t, got, `"event":"import"`)
	assert.Contains(t, got, `"duplicates":3`)
}
