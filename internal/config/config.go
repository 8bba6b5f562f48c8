package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Files  FilesConfig  `yaml:"files"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type FilesConfig struct {
	Root string `yaml:"root"`
}

type AuthConfig struct {
	// Enabled gates the bearer-token middleware. Disable only for local
	// development.
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "opsdesk.db",
		},
		Files: FilesConfig{
			Root: "attachments",
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("OPSDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("OPSDESK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("OPSDESK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OPSDESK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("OPSDESK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if filesRoot := os.Getenv("OPSDESK_FILES_ROOT"); filesRoot != "" {
		cfg.Files.Root = filesRoot
	}
	if authStr := os.Getenv("OPSDESK_AUTH_ENABLED"); authStr != "" {
		enabled, err := strconv.ParseBool(authStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OPSDESK_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}
	if level := os.Getenv("OPSDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
