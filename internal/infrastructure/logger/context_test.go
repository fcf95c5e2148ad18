package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := WithContext(context.Background(), logger)

	assert.NotNil(t, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	// Should return a no-op logger
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithRunID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx, enriched := WithRunID(context.Background(), logger, "run-123")

	assert.NotNil(t, enriched)
	assert.Equal(t, "run-123", GetRunID(ctx))
}

func TestWithReportType(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx, enriched := WithReportType(context.Background(), logger, "buy_orders_csv")

	assert.NotNil(t, enriched)
	assert.Equal(t, "buy_orders_csv", GetReportType(ctx))
}

func TestGetRunID_NotFound(t *testing.T) {
	assert.Equal(t, "", GetRunID(context.Background()))
}
