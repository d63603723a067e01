package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests here use t.Setenv and t.Chdir, so none run in parallel.

func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, name := range []string{
		"ENV_FILE", "DOCMIND_LOG_LEVEL", "DOCMIND_LOG_JSON", "DOCMIND_FETCH_TIMEOUT",
		"DOCMIND_USER_AGENT", "DOCMIND_FETCH_MAX_BYTES", "DOCMIND_MARKDOWN", "DOCMIND_ADDR",
		"DOCMIND_SESSION_TTL", "GROQ_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY",
		"OPENAI_BASE_URL", "DOCMIND_EMBEDDING_MODEL", "DOCMIND_GROQ_MODEL", "DOCMIND_GROQ_BASE_URL",
		"DOCMIND_GEMINI_MODEL", "DOCMIND_GEMINI_BASE_URL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Assistant.Groq.Model)
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "docmind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
fetch:
  timeout: 5s
  user_agent: test-agent
server:
  addr: ":9000"
assistant:
  groq:
    model: file-model
`), 0o644))

	t.Setenv("DOCMIND_ADDR", ":9100")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("DOCMIND_MARKDOWN", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "test-agent", cfg.Fetch.UserAgent)
	assert.True(t, cfg.Fetch.Markdown)
	assert.Equal(t, ":9100", cfg.Server.Addr, "env overrides file")
	assert.Equal(t, "file-model", cfg.Assistant.Groq.Model)
	assert.Equal(t, "gsk-test", cfg.Assistant.Groq.APIKey)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Assistant.Groq.Endpoint().BaseURL)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("GEMINI_API_KEY=from-dotenv\nDOCMIND_FETCH_TIMEOUT=12s\n"), 0o600))
	// godotenv does not override variables that already exist, even empty ones.
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))
	require.NoError(t, os.Unsetenv("DOCMIND_FETCH_TIMEOUT"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Assistant.Gemini.APIKey)
	assert.Equal(t, 12*time.Second, cfg.Fetch.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log: [unclosed"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("DOCMIND_LOG_LEVEL", "loud")
	_, err = Load("")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "log.level", verr.Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"zero timeout", func(c *Config) { c.Fetch.Timeout = 0 }, "fetch.timeout"},
		{"negative max bytes", func(c *Config) { c.Fetch.MaxBytes = -1 }, "fetch.max_bytes"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(cfg)
			var verr *ValidationError
			require.ErrorAs(t, cfg.Validate(), &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestSetFieldFromString_IgnoresGarbage(t *testing.T) {
	isolate(t)
	t.Setenv("DOCMIND_FETCH_TIMEOUT", "soon")
	t.Setenv("DOCMIND_LOG_JSON", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.False(t, cfg.Log.JSON)
}
