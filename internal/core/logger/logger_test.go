package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildWritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := NewWithRotate("debug", true, FileRotate{Enable: true, Filename: file, MaxSizeMB: 1})
	l.Info("hello")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
}

func TestBuildBadLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New("loud", false)
	defer cleanup()
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
