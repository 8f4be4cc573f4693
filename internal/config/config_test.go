package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[telegram]
api_id = 12345
api_hash = "hash"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 12345, cfg.Telegram.APIID)
	assert.Equal(t, "./session/session.json", cfg.Telegram.SessionPath)
	assert.Equal(t, ForwardViaUser, cfg.Monitor.ForwardVia)
	assert.Equal(t, int64(0), cfg.Monitor.TargetChatID)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 100, cfg.Worker.ForwardQueueSize)
	assert.Equal(t, 30, cfg.Worker.DirectoryRefreshInterval)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Bot.BotEnabled())
}

func TestLoad_FullFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[logs]
level = "debug"
file = "/tmp/monitor.log"

[telegram]
api_id = 6
api_hash = "abc"
session_path = "/data/session.json"

[monitor]
target_chat_id = 777
forward_via = "bot"
auto_start = true

[bot]
token = "123:token"
admin_ids = [1, 2]

[database]
enabled = true
host = "localhost"
port = 5432
user = "monitor"
dbname = "monitor"
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, int64(777), cfg.Monitor.TargetChatID)
	assert.Equal(t, ForwardViaBot, cfg.Monitor.ForwardVia)
	assert.True(t, cfg.Monitor.AutoStart)
	assert.True(t, cfg.Bot.IsAdmin(2))
	assert.False(t, cfg.Bot.IsAdmin(3))
	assert.Equal(t, "host=localhost port=5432 user=monitor password= dbname=monitor sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_API_ID", "999")
	t.Setenv("TELEGRAM_API_HASH", "from-env")
	t.Setenv("MONITOR_TARGET_CHAT_ID", "-100")
	t.Setenv("BOT_ADMIN_IDS", "10, 20,bad")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_HOST", "0.0.0.0")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 999, cfg.Telegram.APIID)
	assert.Equal(t, "from-env", cfg.Telegram.APIHash)
	assert.Equal(t, int64(-100), cfg.Monitor.TargetChatID)
	assert.Equal(t, []int64{10, 20}, cfg.Bot.AdminIDs)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing api id",
			content: "[telegram]\napi_hash = \"x\"\n",
			wantErr: "api_id is required",
		},
		{
			name:    "missing api hash",
			content: "[telegram]\napi_id = 1\n",
			wantErr: "api_hash is required",
		},
		{
			name:    "unknown forward mode",
			content: minimalConfig + "[monitor]\nforward_via = \"email\"\n",
			wantErr: "forward_via must be",
		},
		{
			name:    "bot forwarding without token",
			content: minimalConfig + "[monitor]\nforward_via = \"bot\"\n",
			wantErr: "bot token is required",
		},
		{
			name:    "database without host",
			content: minimalConfig + "[database]\nenabled = true\n",
			wantErr: "database host is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
