package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daytales.yml")
	data := `
server:
  listen: ":9090"
  timeout: 45s
database:
  dsn: "file:test.db?mode=memory"
schedule:
  build_interval: 12h
  max_stories: 2
llm:
  enabled: true
  endpoint: "https://api.openai.com/v1"
  api_key: "test-key"
  model: "gpt-4o-mini"
platform:
  auth_base: "https://login.example.com"
  api_base: "https://api.example.com"
  client_id: "cid"
offline_mode: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file:test.db?mode=memory", cfg.Database.DSN)
	assert.Equal(t, 12*time.Hour, cfg.Schedule.BuildInterval)
	assert.Equal(t, 2, cfg.Schedule.MaxStories)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)

	// defaults applied for omitted values
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30, cfg.Platform.PollAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Platform.PollDelay)
	assert.Equal(t, "https://api.wikimedia.org/feed/v1/wikipedia", cfg.Feed.Endpoint)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "secret-from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "daytales.yml")
	data := `
llm:
  api_key: "${TEST_LLM_KEY}"
offline_mode: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-from-env", cfg.LLM.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/daytales.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "llm enabled without endpoint",
			yaml: "llm:\n  enabled: true\noffline_mode: true\n",
			want: "llm.endpoint is required",
		},
		{
			name: "online without platform api base",
			yaml: "offline_mode: false\n",
			want: "platform.api_base is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "cfg.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.OfflineMode, "default config is offline")
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 3, cfg.Schedule.MaxStories)
	assert.Equal(t, 24*time.Hour, cfg.Schedule.BuildInterval)
}

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	cfg := Default()
	require.NoError(t, VerifyAgainstEmbeddedSchema(cfg))
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
}
