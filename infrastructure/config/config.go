package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	Slack      SlackConfig
	Airtable   AirtableConfig
	Webhook    WebhookConfig
	ConfigPath string `envconfig:"CONFIG_PATH" default:"/etc/asbridge/config.yaml"`
}

type ServerConfig struct {
	Port     int    `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func (c *ServerConfig) Addr() string {
	return "0.0.0.0:" + strconv.Itoa(c.Port)
}

type SlackConfig struct {
	APIURL        string `envconfig:"SLACK_API_URL" default:"https://slack.com/api"`
	BotToken      string `envconfig:"SLACK_BOT_TOKEN"`
	SigningSecret string `envconfig:"SLACK_SIGNING_SECRET"`
}

type AirtableConfig struct {
	APIURL string `envconfig:"AIRTABLE_API_URL" default:"https://api.airtable.com/v0"`
	APIKey string `envconfig:"AIRTABLE_API_KEY"`

	// Default record identity, used when a notify request does not name its
	// own base/table.
	BaseID  string `envconfig:"AIRTABLE_BASE_ID"`
	TableID string `envconfig:"AIRTABLE_TABLE_ID"`
}

type WebhookConfig struct {
	// Secret is the shared secret the upstream automation sends in
	// X-Webhook-Secret.
	Secret string `envconfig:"WEBHOOK_SECRET"`

	// SignatureTolerance bounds how old a signed interaction request may be.
	SignatureTolerance time.Duration `envconfig:"SIGNATURE_TOLERANCE" default:"5m"`
}

func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Slack.BotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if c.Slack.SigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required")
	}
	if c.Airtable.APIKey == "" {
		return fmt.Errorf("AIRTABLE_API_KEY is required")
	}
	if c.Webhook.Secret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required")
	}
	if c.Webhook.SignatureTolerance <= 0 {
		return fmt.Errorf("SIGNATURE_TOLERANCE must be positive, got %s", c.Webhook.SignatureTolerance)
	}
	return nil
}
