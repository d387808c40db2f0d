package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	App      AppConfig      `mapstructure:"app"      validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"          validate:"required,gt=0,lt=65536"`
	LogLevel     string        `mapstructure:"log_level"     validate:"required,oneof=debug info warn error"`
	LogFile      string        `mapstructure:"log_file"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"  validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"  validate:"gt=0"`
}

// AppConfig contains deployment-level settings.
type AppConfig struct {
	// Env tags the deployment; it is attached to every log record.
	Env string `mapstructure:"env" validate:"required,oneof=development testing production"`
	// SecretKey is optional, but when present it must be long enough to be useful.
	SecretKey string `mapstructure:"secret_key" validate:"omitempty,min=16"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gt=0"`
}
