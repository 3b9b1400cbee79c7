package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesThroughContext(t *testing.T) {
	var buf bytes.Buffer
	ctx, flush := newContextWithWriter(context.Background(), &buf, false)

	FromCtx(WithUser(ctx, "42")).Info().Msg("instruction resolved")
	FromCtx(ctx).Debug().Msg("hidden")
	flush()

	out := buf.String()
	assert.Contains(t, out, "instruction resolved")
	assert.Contains(t, out, "user=42")
	assert.NotContains(t, out, "hidden")
}

func TestFromCtx_NoLoggerIsUsable(t *testing.T) {
	logger := FromCtx(context.Background())
	assert.NotPanics(t, func() { logger.Info().Msg("discarded") })
}

func TestGooseLogger_DebugOnly(t *testing.T) {
	var buf bytes.Buffer
	ctx, flush := newContextWithWriter(context.Background(), &buf, false)
	NewGooseLoggerFromCtx(ctx).Printf("OK   00001_events.sql (1.2ms)\n")
	flush()
	assert.Empty(t, buf.String())

	buf.Reset()
	ctx, flush = newContextWithWriter(context.Background(), &buf, true)
	NewGooseLoggerFromCtx(ctx).Printf("goose: successfully migrated database to version: %d\n", 2)
	flush()
	assert.Contains(t, buf.String(), "migrated database to version: 2")
	assert.Contains(t, buf.String(), "component=migrations")
}
