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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_YAMLThenEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  env: production
database:
  url: postgres://yaml
jwt:
  secret: yaml-secret
  ttl: 30
policy:
  reset_approval_on_edit: false
`)

	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("RATE_LIMIT_BURST", "42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "postgres://env", cfg.Database.DSN, "переменная окружения должна перекрывать YAML")
	assert.Equal(t, "yaml-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.Equal(t, 42, cfg.RateLimit.Burst)
	assert.False(t, cfg.Policy.ResetApprovalOnEdit)
	assert.False(t, cfg.Policy.OpenInterestListing)
	// значение по умолчанию сохраняется, если его нет в файле
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url")
	assert.Contains(t, err.Error(), "jwt.secret")

	cfg.Database.DSN = "postgres://x"
	cfg.JWT.Secret = "s"
	assert.NoError(t, cfg.Validate())

	cfg.Email.Enabled = true
	assert.Error(t, cfg.Validate())
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Policy.ResetApprovalOnEdit)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}
