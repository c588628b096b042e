package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Completion CompletionConfig `yaml:"completion"`
	Storage    StorageConfig    `yaml:"storage"`
	LogLevel   string           `yaml:"log_level"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

// CompletionConfig describes the chat-completion deployment. Provider selects
// the upstream API dialect; "azure" is the default and the only one whose
// parameters are required at startup.
type CompletionConfig struct {
	Provider   string `yaml:"provider"` // azure, openai, anthropic, ollama, gemini
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
}

type StorageConfig struct {
	ConnectionString string `yaml:"connection_string"`
	ContainerName    string `yaml:"container_name"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
		},
		Completion: CompletionConfig{
			Provider: "azure",
		},
		LogLevel: "info",
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("SQL_CONNECTION_STRING"); dsn != "" {
		c.Database.DSN = dsn
	}
	if provider := os.Getenv("COMPLETION_PROVIDER"); provider != "" {
		c.Completion.Provider = provider
	}
	if endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT"); endpoint != "" {
		c.Completion.Endpoint = endpoint
	}
	if key := os.Getenv("AZURE_OPENAI_API_KEY"); key != "" {
		c.Completion.APIKey = key
	}
	if deployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT"); deployment != "" {
		c.Completion.Deployment = deployment
	}
	if version := os.Getenv("AZURE_OPENAI_API_VERSION"); version != "" {
		c.Completion.APIVersion = version
	}
	if connStr := os.Getenv("STORAGE_CONNECTION_STRING"); connStr != "" {
		c.Storage.ConnectionString = connStr
	}
	if container := os.Getenv("STORAGE_CONTAINER_NAME"); container != "" {
		c.Storage.ContainerName = container
	}
}

// Validate checks that every required connection parameter is present. The
// process must not start on an incomplete configuration.
func (c *Config) Validate() error {
	var missing []string

	if c.Completion.Endpoint == "" {
		missing = append(missing, "completion endpoint (AZURE_OPENAI_ENDPOINT)")
	}
	if c.Completion.APIKey == "" {
		missing = append(missing, "completion API key (AZURE_OPENAI_API_KEY)")
	}
	if c.Completion.Deployment == "" {
		missing = append(missing, "completion deployment (AZURE_OPENAI_DEPLOYMENT)")
	}
	if c.Completion.APIVersion == "" {
		missing = append(missing, "completion API version (AZURE_OPENAI_API_VERSION)")
	}
	if c.Database.DSN == "" {
		missing = append(missing, "database connection string (SQL_CONNECTION_STRING)")
	}
	if c.Storage.ConnectionString == "" {
		missing = append(missing, "storage connection string (STORAGE_CONNECTION_STRING)")
	}
	if c.Storage.ContainerName == "" {
		missing = append(missing, "storage container name (STORAGE_CONTAINER_NAME)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("configuration is incomplete, missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
