package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	Backend `yaml:"backend"`
	Storage `yaml:"storage"`
}

type Backend struct {
	// BaseURL default matches the Android emulator loopback used in development.
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://10.0.2.2:3000/api"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"10s"`
}

type Storage struct {
	CredentialsPath string `yaml:"credentials_path" env:"CREDENTIALS_PATH" env-default:"credentials.json"`
	// SealKeyHex optional 32-byte hex key; when set the credentials file is
	// stored sealed instead of as plain JSON.
	SealKeyHex string `yaml:"seal_key_hex" env:"CREDENTIALS_KEY_HEX"`
}

func MustLoad(configPath string) *Config {
	config, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	return config
}

func Load(configPath string) (*Config, error) {
	var config Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&config); err != nil {
			return nil, err
		}
		return &config, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	if err := cleanenv.ReadConfig(configPath, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
