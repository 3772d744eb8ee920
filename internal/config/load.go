package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envBindings maps configuration keys to the environment variables that can
// set them, in order of precedence.
var envBindings = []struct {
	key  string
	vars []string
}{
	{"environment", []string{"TASKS_ENVIRONMENT", "NODE_ENV"}},
	{"server.port", []string{"TASKS_SERVER_PORT", "PORT"}},
	{"server.log_level", []string{"TASKS_SERVER_LOG_LEVEL"}},
	{"server.shutdown_timeout_seconds", []string{"TASKS_SERVER_SHUTDOWN_TIMEOUT_SECONDS"}},
	{"database.url", []string{"TASKS_DATABASE_URL", "DATABASE_URL"}},
	{"database.max_open_conns", []string{"TASKS_DATABASE_MAX_OPEN_CONNS"}},
	{"database.max_idle_conns", []string{"TASKS_DATABASE_MAX_IDLE_CONNS"}},
	{"database.conn_max_lifetime_minutes", []string{"TASKS_DATABASE_CONN_MAX_LIFETIME_MINUTES"}},
	{"database.auto_migrate", []string{"TASKS_DATABASE_AUTO_MIGRATE"}},
	{"user_service.url", []string{"TASKS_USER_SERVICE_URL", "USER_SERVICE_URL"}},
	{"user_service.timeout_seconds", []string{"TASKS_USER_SERVICE_TIMEOUT_SECONDS"}},
}

// Load reads configuration from ./config.yaml (if present) and the environment.
// Environment variables take precedence over values from the file.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return finish(v)
}

// LoadFile is Load with an explicit config file path. The file must exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("environment", EnvDevelopment)
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("user_service.url", "")
	v.SetDefault("user_service.timeout_seconds", 5)

	v.SetEnvPrefix("TASKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func finish(v *viper.Viper) (*Config, error) {
	for _, b := range envBindings {
		args := append([]string{b.key}, b.vars...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("error binding environment variables for %s: %w", b.key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.Server.LogLevel = strings.ToLower(strings.TrimSpace(cfg.Server.LogLevel))
	if cfg.UserService.URL == "" {
		cfg.UserService.URL = DefaultUserServiceURLFor(cfg.Environment)
	}
	cfg.UserService.URL = strings.TrimRight(cfg.UserService.URL, "/")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// DefaultUserServiceURLFor returns the user service base URL used when none
// is configured: the in-cluster service name in production, localhost otherwise.
func DefaultUserServiceURLFor(environment string) string {
	if environment == EnvProduction {
		return DefaultProductionUserServiceURL
	}
	return DefaultUserServiceURL
}
