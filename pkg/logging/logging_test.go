package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("watershed", false)
	require.NoError(t, err)
	require.False(t, logger.Desugar().Core().Enabled(zap.DebugLevel))
	require.True(t, logger.Desugar().Core().Enabled(zap.InfoLevel))

	verbose, err := NewLogger("watershed", true)
	require.NoError(t, err)
	require.True(t, verbose.Desugar().Core().Enabled(zap.DebugLevel))
}

func TestNewTestLogger(t *testing.T) {
	logger := NewTestLogger(t)
	require.True(t, logger.Desugar().Core().Enabled(zap.DebugLevel))
	logger.Debugw("message", "key", 1)
}
