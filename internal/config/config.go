package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration. It is loaded once at
// startup and passed by injection; nothing mutates it afterwards.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
}

// LoadConfig reads the YAML file, then applies environment overrides
// (PORT, DATABASE_URL, JWT_SECRET). A .env file is honored when
// present.
func LoadConfig(configPath string) (*Config, error) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load(".env")

	config := &Config{}

	file, err := os.Open(configPath)
	if err == nil {
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.Database.URL = url
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}

	if config.Server.Port == "" {
		config.Server.Port = ":3000"
	}
	if config.Database.URL == "" {
		return nil, errors.New("database url is required (config file or DATABASE_URL)")
	}
	if config.Auth.JWTSecret == "" {
		return nil, errors.New("jwt secret is required (config file or JWT_SECRET)")
	}

	return config, nil
}
