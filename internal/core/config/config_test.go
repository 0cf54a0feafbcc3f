package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  http:
    port: 8081
    apiPrefix: /v2
jwt:
  secret: from-file
db:
  driver: postgres
  dsn: postgres://localhost/ace
upload:
  cloudinaryUrl: cloudinary://k:s@demo
`

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(sample), 0o600))
	t.Setenv("APP_JWT_SECRET", "from-env")

	c, err := LoadFrom(p)
	require.NoError(t, err)

	assert.Equal(t, 8081, c.App.HTTP.Port)
	assert.Equal(t, "/v2", c.App.HTTP.APIPrefix)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.True(t, c.Upload.Enabled())

	// 未配置的键走默认值
	assert.Equal(t, 7*24*time.Hour, c.JWT.TTL())
	assert.Equal(t, int64(16<<20), c.App.HTTP.MaxBodyBytes)
	assert.Empty(t, c.Redis.Addr)
}

func TestLoadFromMissingExplicitFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestUploadEnabled(t *testing.T) {
	assert.False(t, Upload{}.Enabled())
	assert.False(t, Upload{CloudName: "c", APIKey: "k"}.Enabled())
	assert.True(t, Upload{CloudName: "c", APIKey: "k", APISecret: "s"}.Enabled())
}

func TestRedisTTLFallback(t *testing.T) {
	assert.Equal(t, time.Minute, Redis{}.TTL())
	assert.Equal(t, time.Minute, Redis{TTLSec: -5}.TTL())
	assert.Equal(t, 30*time.Second, Redis{TTLSec: 30}.TTL())
}
