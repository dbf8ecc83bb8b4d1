package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/asbridge/airtable-slack-bridge/domain/message"
)

// FileConfig holds presentation defaults loaded from YAML. A missing file
// is fine; the built-in defaults apply.
type FileConfig struct {
	Message MessageFileConfig `yaml:"message"`
}

type MessageFileConfig struct {
	PrimaryButtonStyle   string `yaml:"primary_button_style"`
	SecondaryButtonStyle string `yaml:"secondary_button_style"`
	Footer               string `yaml:"footer"`
}

func LoadFromFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultFileConfig(), nil
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func defaultFileConfig() *FileConfig {
	cfg := &FileConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *FileConfig) applyDefaults() {
	if c.Message.PrimaryButtonStyle == "" {
		c.Message.PrimaryButtonStyle = message.StylePrimary
	}
	// Secondary defaults to the platform's plain style on purpose.
}

// The accessors below satisfy port.MessageStyle.

func (c *FileConfig) PrimaryButtonStyle() string   { return c.Message.PrimaryButtonStyle }
func (c *FileConfig) SecondaryButtonStyle() string { return c.Message.SecondaryButtonStyle }
func (c *FileConfig) FooterText() string           { return c.Message.Footer }
