package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, defaultSQLitePath, cfg.Database.Path)
	assert.Equal(t, defaultGeminiModel, cfg.Gemini.Model)
	assert.Equal(t, defaultDataDir, cfg.DataDir)
	assert.True(t, cfg.IsDev())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 8080
env: Production
database:
  driver: sqlite
  path: /tmp/test.db
gemini:
  model: gemini-2.0-pro
allowed_origins:
  - "example.com"
  - "  "
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "gemini-2.0-pro", cfg.Gemini.Model)
	assert.Equal(t, []string{"example.com"}, cfg.AllowedOrigins)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("bogus_key: 1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	dir := t.TempDir()

	badPort := filepath.Join(dir, "port.yml")
	require.NoError(t, os.WriteFile(badPort, []byte("port: 70000\n"), 0o644))
	_, err := Load(badPort)
	assert.ErrorContains(t, err, "invalid port")

	badDriver := filepath.Join(dir, "driver.yml")
	require.NoError(t, os.WriteFile(badDriver, []byte("database:\n  driver: postgres\n"), 0o644))
	_, err = Load(badDriver)
	assert.ErrorContains(t, err, "invalid database.driver")

	mysqlNoDSN := filepath.Join(dir, "mysql.yml")
	require.NoError(t, os.WriteFile(mysqlNoDSN, []byte("database:\n  driver: mysql\n"), 0o644))
	_, err = Load(mysqlNoDSN)
	assert.ErrorContains(t, err, "database.dsn is required")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "gkey")
	t.Setenv("GITHUB_TOKEN", "ghtoken")
	t.Setenv("GITHUB_REPOSITORY_OWNER", "econlab")
	t.Setenv("GITHUB_REPOSITORY_NAME", "hypotheses")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "gkey", cfg.Gemini.APIKey)
	assert.Equal(t, "ghtoken", cfg.GitHub.Token)
	assert.Equal(t, "econlab", cfg.GitHub.Owner)
	assert.Equal(t, "hypotheses", cfg.GitHub.Repo)
}
