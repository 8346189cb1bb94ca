package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warp/shift-pay/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, logging.ParseLevel("debug"))
	assert.Equal(t, zap.WarnLevel, logging.ParseLevel("warn"))
	assert.Equal(t, zap.ErrorLevel, logging.ParseLevel("error"))
	assert.Equal(t, zap.InfoLevel, logging.ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		logger, err := logging.New("warn", env)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zap.InfoLevel))
		assert.True(t, logger.Core().Enabled(zap.WarnLevel))
	}
}
