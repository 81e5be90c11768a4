package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig stores transport listener specific configurations.
type ServerConfig struct {
	ListenAddr      string `yaml:"listen_addr"`
	MaxMessageBytes int64  `yaml:"max_message_bytes"`
	MaxOutputBytes  int64  `yaml:"max_output_bytes"`
}

// DecoderConfig stores decoder service specific configurations.
type DecoderConfig struct {
	MaxSessions int `yaml:"max_sessions"`
}

// Config stores the application configuration.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Decoder  DecoderConfig `yaml:"decoder"`
	LogLevel string        `yaml:"log_level"`
}

const (
	defaultListenAddr      = ":8722"
	defaultMaxMessageBytes = 1 << 20
	defaultMaxOutputBytes  = 1 << 20
	defaultMaxSessions     = 16
)

// LoadConfig loads the configuration from the given file path.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = defaultListenAddr
	}

	if c.Server.MaxMessageBytes <= 0 {
		c.Server.MaxMessageBytes = defaultMaxMessageBytes
	}

	if c.Server.MaxOutputBytes <= 0 {
		c.Server.MaxOutputBytes = defaultMaxOutputBytes
	}

	if c.Decoder.MaxSessions <= 0 {
		c.Decoder.MaxSessions = defaultMaxSessions
	}
}
