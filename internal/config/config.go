// Package config собирает настройки из .env, переменных окружения и
// необязательного yaml-файла (CONFIG_FILE).
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config — настройки сервера
type Config struct {
	AppPort       string `mapstructure:"app_port"`
	DBDSN         string `mapstructure:"db_dsn"`
	SessionSecret string `mapstructure:"session_secret"`
	GinMode       string `mapstructure:"gin_mode"`
	HashPasswords bool   `mapstructure:"hash_passwords"`
	SeedFile      string `mapstructure:"seed_file"`
}

var defaults = map[string]any{
	"app_port":       "8080",
	"db_dsn":         "",
	"session_secret": "dev_fallback_secret",
	"gin_mode":       "debug",
	"hash_passwords": false,
	"seed_file":      "",
}

// LoadDotenv грузит .env из текущей папки, родительской и корня репо
func LoadDotenv() {
	_ = godotenv.Overload(".env", "../.env", "../../.env")
}

// Load читает конфигурацию. configFile может быть пустым.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	// ключ app_port читается из APP_PORT и т.д.
	for k := range defaults {
		_ = v.BindEnv(k, strings.ToUpper(k))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate проверяет порт и режим gin
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.AppPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("app_port must be between 1 and 65535, got %q", c.AppPort)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("gin_mode must be debug, release or test, got %q", c.GinMode)
	}
	return nil
}
