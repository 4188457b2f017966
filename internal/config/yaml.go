package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environments recognised in app.env.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// YAMLConfig represents the top-level waitdesk configuration file. Every key
// can also be set through a WAITDESK_ environment variable, e.g.
// WAITDESK_DATABASE_DSN for database.dsn.
type YAMLConfig struct {
	App       AppConfig       `yaml:"app" mapstructure:"app"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Auth      AuthConfig      `yaml:"auth" mapstructure:"auth"`
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// AppConfig selects the runtime environment.
type AppConfig struct {
	Env string `yaml:"env" mapstructure:"env"`
}

// ServerConfig controls the HTTP server behavior.
type ServerConfig struct {
	Host            string   `yaml:"host" mapstructure:"host"`
	Port            int      `yaml:"port" mapstructure:"port"`
	ShutdownTimeout string   `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	CORSOrigins     []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	LoginRateLimit  int      `yaml:"login_rate_limit" mapstructure:"login_rate_limit"`
	ExportRateLimit int      `yaml:"export_rate_limit" mapstructure:"export_rate_limit"`
	EnableUI        bool     `yaml:"enable_ui" mapstructure:"enable_ui"`
}

// AuthConfig controls session signing.
type AuthConfig struct {
	JWTSecret  string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`
}

// DatabaseConfig selects the record store's database.
type DatabaseConfig struct {
	Driver          string `yaml:"driver" mapstructure:"driver"`
	DSN             string `yaml:"dsn" mapstructure:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// DashboardConfig holds presentation settings.
type DashboardConfig struct {
	// Timezone is the IANA zone bare filter dates are read in.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LoadYAMLConfig reads and parses a YAML configuration file on top of the
// defaults. Environment variables referenced as ${VAR_NAME} in the file are
// expanded before parsing.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	content := os.ExpandEnv(string(data))

	cfg := DefaultYAMLConfig()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// DefaultYAMLConfig returns a YAMLConfig pre-filled with sensible defaults.
func DefaultYAMLConfig() *YAMLConfig {
	return &YAMLConfig{
		App: AppConfig{
			Env: EnvProduction,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: "30s",
			CORSOrigins:     []string{},
			LoginRateLimit:  10,
			ExportRateLimit: 30,
			EnableUI:        true,
		},
		Auth: AuthConfig{
			CookieName: "admin_session",
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "waitdesk.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "5m",
		},
		Dashboard: DashboardConfig{
			Timezone: "UTC",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Marshal renders cfg as YAML.
func (c *YAMLConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefaultConfig writes the default configuration to a YAML file.
func WriteDefaultConfig(path string) error {
	data, err := DefaultYAMLConfig().Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
