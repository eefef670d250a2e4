package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDailyLimit, cfg.Dispatch.DailyLimit)
	assert.Equal(t, DefaultMaxPerCompany, cfg.Dispatch.MaxPerCompanyPerDay)
	assert.Equal(t, DefaultSendDelaySeconds, cfg.Dispatch.SendDelaySeconds)
	assert.Equal(t, DefaultOutputPath, cfg.Collect.OutputPath)
	assert.Equal(t, DefaultMaxPages, cfg.Collect.MaxPages)
	assert.Empty(t, cfg.Apollo.APIKey)
}

func TestLoadReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[apollo]
api_key = "key-1"

[graph]
tenant_id = "tenant"
client_id = "client"
client_secret = "secret"
sender_upn = "sales@forte4.com"

[dispatch]
daily_limit = 10
max_per_company_per_day = 1
sender_name = "Essam Azzam"

[collect]
output_path = "out/leads.csv"
max_pages = 3

[telegram]
token = "bot-token"
chat_id = "42"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "key-1", cfg.Apollo.APIKey)
	assert.Equal(t, "tenant", cfg.Graph.TenantID)
	assert.Equal(t, "sales@forte4.com", cfg.Graph.SenderUPN)
	assert.Equal(t, 10, cfg.Dispatch.DailyLimit)
	assert.Equal(t, 1, cfg.Dispatch.MaxPerCompanyPerDay)
	assert.Equal(t, DefaultSendDelaySeconds, cfg.Dispatch.SendDelaySeconds)
	assert.Equal(t, "Essam Azzam", cfg.Dispatch.SenderName)
	assert.Equal(t, "out/leads.csv", cfg.Collect.OutputPath)
	assert.Equal(t, 3, cfg.Collect.MaxPages)
	assert.Equal(t, "bot-token", cfg.Telegram.Token)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[apollo]
api_key = "from-file"

[dispatch]
daily_limit = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("APOLLO_API_KEY", "from-env")
	t.Setenv("DAILY_LIMIT", "7")
	t.Setenv("SENDER_UPN", "env@forte4.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Apollo.APIKey)
	assert.Equal(t, 7, cfg.Dispatch.DailyLimit)
	assert.Equal(t, "env@forte4.com", cfg.Graph.SenderUPN)
}

func TestLoadIgnoresBadIntEnv(t *testing.T) {
	t.Setenv("DAILY_LIMIT", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDailyLimit, cfg.Dispatch.DailyLimit)
}

func TestLoadDefaultsTokenCacheNextToConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultTokenCacheFile), cfg.Graph.TokenCachePath)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
