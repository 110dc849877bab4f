package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ssbprep/internal/config"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ssbprep.log")
	logger, err := New(&config.Config{Env: "production", LogFile: path})
	require.NoError(t, err)

	logger.Info("test started", zap.String("kind", "wat"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"test started"`)
	assert.Contains(t, string(data), `"kind":"wat"`)
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New(&config.Config{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	logger.Info("discarded")
}
