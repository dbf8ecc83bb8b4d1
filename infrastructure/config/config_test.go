package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_SIGNING_SECRET", "signing")
	t.Setenv("AIRTABLE_API_KEY", "pat-test")
	t.Setenv("WEBHOOK_SECRET", "hook")
}

func clearOptionalEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "LOG_LEVEL", "SLACK_API_URL", "AIRTABLE_API_URL",
		"AIRTABLE_BASE_ID", "AIRTABLE_TABLE_ID", "SIGNATURE_TOLERANCE", "CONFIG_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "https://slack.com/api", cfg.Slack.APIURL)
	assert.Equal(t, "https://api.airtable.com/v0", cfg.Airtable.APIURL)
	assert.Equal(t, 5*time.Minute, cfg.Webhook.SignatureTolerance)
	assert.Equal(t, "/etc/asbridge/config.yaml", cfg.ConfigPath)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AIRTABLE_BASE_ID", "appBase")
	t.Setenv("AIRTABLE_TABLE_ID", "tblMain")
	t.Setenv("SIGNATURE_TOLERANCE", "90s")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "appBase", cfg.Airtable.BaseID)
	assert.Equal(t, "tblMain", cfg.Airtable.TableID)
	assert.Equal(t, 90*time.Second, cfg.Webhook.SignatureTolerance)
}

func TestLoadFromEnvMissingRequired(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"missing bot token", "SLACK_BOT_TOKEN"},
		{"missing signing secret", "SLACK_SIGNING_SECRET"},
		{"missing airtable key", "AIRTABLE_API_KEY"},
		{"missing webhook secret", "WEBHOOK_SECRET"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			clearOptionalEnv(t)
			t.Setenv(tc.key, "")

			_, err := LoadFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoadFromEnvInvalidPort(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("SERVER_PORT", "70000")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
}

func TestLoadFromEnvInvalidTolerance(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("SIGNATURE_TOLERANCE", "-1m")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIGNATURE_TOLERANCE")
}
