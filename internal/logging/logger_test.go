package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecofly.log")
	require.NoError(t, Init(Options{AppEnv: "production", File: path}))

	Named("engine").Infow("tick", "flights", 3)
	_ = Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.True(t, strings.Contains(line, `"logger":"engine"`), line)
	assert.True(t, strings.Contains(line, `"flights":3`), line)
}

func TestGetLoggerFallback(t *testing.T) {
	globalLogger = nil
	assert.NotNil(t, GetLogger())
}
