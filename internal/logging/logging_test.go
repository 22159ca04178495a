package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewOperationError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewOperationError("noop", "req", nil))

	base := errors.New("boom")
	err := NewOperationError("gateway.remove", "req-1", base)
	require.Error(t, err)
	assert.Equal(t, "gateway.remove (request_id=req-1): boom", err.Error())
	assert.ErrorIs(t, err, base)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "gateway.remove", opErr.Operation)

	assert.Equal(t, "rembg.run: boom", NewOperationError("rembg.run", "", base).Error())
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("nonsense")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
