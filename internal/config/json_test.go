package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"client": {
			"profile": "remote",
			"local": { "api_url": "http://127.0.0.1:3000/todos" },
			"remote": { "api_url": "https://todo.example.com/todos", "socket_url": "https://todo.example.com" },
			"request_timeout": "5s",
			"fallback_delay": "300ms",
			"reconnect_attempts": 6,
			"reconnect_initial_delay": "2s",
			"reconnect_max_delay": 10000000000
		},
		"server": { "http_address": "localhost:3000", "request_timeout": "30s" },
		"storage": { "db": { "dsn": "todos.db" } }
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "remote", cfg.Client.Profile)
	assert.Equal(t, "http://127.0.0.1:3000/todos", cfg.Client.Local.APIURL)
	assert.Equal(t, "https://todo.example.com", cfg.Client.Remote.SocketURL)
	assert.Equal(t, 5*time.Second, cfg.Client.RequestTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.Client.FallbackDelay)
	assert.Equal(t, 6, cfg.Client.ReconnectAttempts)
	assert.Equal(t, 2*time.Second, cfg.Client.ReconnectInitialDelay)
	assert.Equal(t, 10*time.Second, cfg.Client.ReconnectMaxDelay)
	assert.Equal(t, "localhost:3000", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "todos.db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"client": `), 0o600))

	_, err := parseJSON(p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"client": {"fallback_delay": "later"}}`), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(1500 * time.Millisecond).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1.5s"`, string(b))
}
