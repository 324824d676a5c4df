package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	log, err := New("production", "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))

	log, err = New("development", "debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("development", "loud")
	assert.Error(t, err)
}
