package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileOnly(t *testing.T) {
	path := writeConfigFile(t, `{
		"port": 9000,
		"database_url": "postgres://localhost/resumes",
		"jwt_secret": "file-secret"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"port": 9000,
		"database_url": "postgres://localhost/resumes",
		"jwt_secret": "file-secret"
	}`)

	t.Setenv("PORT", "9100")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/resumes")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, 60, cfg.ChromeTimeoutSeconds)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_url")
}

func TestLoad_InvalidEnvInt(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/resumes")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "not-a-number")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoad_BadFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := writeConfigFile(t, `{not json`)
	_, err = Load(path)
	require.Error(t, err)
}

func TestValidate_Ranges(t *testing.T) {
	cfg := Config{Port: 70000, DatabaseURL: "x", JWTSecret: "y", JWTExpirationHours: 24, ChromeTimeoutSeconds: 60}
	require.Error(t, cfg.Validate())

	cfg.Port = 8080
	cfg.JWTExpirationHours = 0
	require.Error(t, cfg.Validate())

	cfg.JWTExpirationHours = 24
	require.NoError(t, cfg.Validate())
}
