package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFromFile_Defaults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "app.db")
	path := writeConfig(t, `
database:
  path: `+dbPath+`
jwt:
  secret_key: test-secret
admin:
  password: s3cret
`)

	cfg, err := loadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:18080", cfg.Server.GetAddress())
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "password123", cfg.Admin.ResetPassword)
	assert.Equal(t, 30, cfg.Redis.LockTTLSeconds)
	assert.Equal(t, "greenscore", cfg.Metrics.Namespace)
	assert.Equal(t, int64(10<<20), cfg.Import.GetMaxUploadBytes())

	// the sqlite directory is created during validation
	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
}

func TestLoadConfigFromFile_Validation(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"missing jwt secret", "admin:\n  password: x\n"},
		{"missing admin password", "jwt:\n  secret_key: x\n"},
		{"bad port", "server:\n  port: 70000\njwt:\n  secret_key: x\nadmin:\n  password: x\n"},
		{"postgres without dsn", "database:\n  type: postgres\njwt:\n  secret_key: x\nadmin:\n  password: x\n"},
		{"unknown database", "database:\n  type: oracle\njwt:\n  secret_key: x\nadmin:\n  password: x\n"},
		{"redis without host", "redis:\n  enabled: true\n  host: \"\"\njwt:\n  secret_key: x\nadmin:\n  password: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := "database:\n  path: " + filepath.Join(dir, "app.db") + "\n" + tt.body
			if tt.name == "postgres without dsn" || tt.name == "unknown database" {
				body = tt.body
			}
			_, err := loadConfigFromFile(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigFromFile_EnvOverride(t *testing.T) {
	t.Setenv("GREENSCORE_JWT_SECRET_KEY", "from-env")
	t.Setenv("GREENSCORE_ADMIN_PASSWORD", "env-pass")

	path := writeConfig(t, "database:\n  path: "+filepath.Join(t.TempDir(), "app.db")+"\n")
	cfg, err := loadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
	assert.Equal(t, "env-pass", cfg.Admin.Password)
}

func TestLoadConfigFromFile_MissingFile(t *testing.T) {
	_, err := loadConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
