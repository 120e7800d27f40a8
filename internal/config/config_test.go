package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("N8N_WEBHOOK_URL", "http://n8n.local/webhook/resume")
	t.Setenv("UPLOAD_BACKEND", "minio")
	t.Setenv("LLM_TIMEOUT_SEC", "30")
	t.Setenv("DATABASE_URL", "postgres://jobrec@db:5432/jobs")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "http://n8n.local/webhook/resume", cfg.Webhook.URL)
	assert.Equal(t, "minio", cfg.Upload.Backend)
	assert.Equal(t, 30, cfg.Gemini.TimeoutSec)
	assert.Equal(t, "postgres://jobrec@db:5432/jobs", cfg.Database.URL)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MCP_PORT", "BACKEND_PORT", "UPLOAD_DIR", "GEMINI_MODEL", "NOTIFY_DEFAULT_IDENTITY", "UPLOAD_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.MCPPort)
	assert.Equal(t, "8001", cfg.BackendPort)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, "local", cfg.Upload.Backend)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "user@example.com", cfg.Notify.DefaultIdentity)
}

func TestTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, Timeout(5))
	assert.Equal(t, time.Duration(0), Timeout(0))
	assert.Equal(t, time.Duration(0), Timeout(-1))
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
