package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `
app:
  name: shelter-api
server:
  port: 9000
  read_timeout: 2s
database:
  dsn: postgres://yaml
log:
  level: debug
  format: json
rate_limit:
  rps: 5
  burst: 10
`)
	t.Setenv("DB_DSN", "postgres://env")
	t.Setenv("RATE_LIMIT_BURST", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shelter-api", cfg.App.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_NAME=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP_NAME") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.App.Name)
}

func TestValidate(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("iam without key", func(t *testing.T) {
		cfg := Default()
		cfg.IAM.BaseURL = "https://iam.local"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad log format", func(t *testing.T) {
		cfg := Default()
		cfg.Log.Format = "xml"
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid env port", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("PORT", "eighty")
		_, err := Load("")
		assert.Error(t, err)
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
