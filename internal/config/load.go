package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/waitdesk/waitdesk/internal/connector"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "WAITDESK"

// FileName is the config file searched for when none is given.
const FileName = "waitdesk"

// DevJWTSecret signs sessions outside production when no secret is set.
const DevJWTSecret = "waitdesk-dev-secret-change-me"

// Bind prepares v to read waitdesk settings: defaults for every key,
// WAITDESK_ environment overrides, and the config file at path, or
// ./waitdesk.yaml and $HOME/.waitdesk/waitdesk.yaml when path is empty. A
// missing file is only an error when path names it explicitly.
func Bind(v *viper.Viper, path string) error {
	defaults, err := flatten(DefaultYAMLConfig())
	if err != nil {
		return err
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.waitdesk")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes the effective settings held by v.
func Load(v *viper.Viper) (*YAMLConfig, error) {
	cfg := DefaultYAMLConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *YAMLConfig) Validate() error {
	switch c.App.Env {
	case EnvProduction, EnvDevelopment, "test":
	default:
		return fmt.Errorf("app.env: unknown environment %q", c.App.Env)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return err
	}
	if _, err := c.ConnectionConfig(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// IsProduction reports whether app.env is production.
func (c *YAMLConfig) IsProduction() bool {
	return c.App.Env == EnvProduction
}

// ShutdownTimeout parses server.shutdown_timeout.
func (c *YAMLConfig) ShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("server.shutdown_timeout: %w", err)
	}
	return d, nil
}

// Location loads dashboard.timezone.
func (c *YAMLConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return nil, fmt.Errorf("dashboard.timezone: %w", err)
	}
	return loc, nil
}

// ConnectionConfig returns the database settings in connector form.
func (c *YAMLConfig) ConnectionConfig() (connector.ConnectionConfig, error) {
	cc := connector.ConnectionConfig{
		Driver:       c.Database.Driver,
		DSN:          c.Database.DSN,
		MaxOpenConns: c.Database.MaxOpenConns,
		MaxIdleConns: c.Database.MaxIdleConns,
	}
	if cc.Driver == "" || cc.DSN == "" {
		return cc, errors.New("database.driver and database.dsn are required")
	}
	if c.Database.ConnMaxLifetime != "" {
		d, err := time.ParseDuration(c.Database.ConnMaxLifetime)
		if err != nil {
			return cc, fmt.Errorf("database.conn_max_lifetime: %w", err)
		}
		cc.ConnMaxLifetime = d
	}
	return cc, nil
}

// JWTSecret returns the session signing secret. Outside production a
// missing secret falls back to DevJWTSecret with a warning.
func (c *YAMLConfig) JWTSecret(logger *slog.Logger) (string, error) {
	if c.Auth.JWTSecret != "" {
		return c.Auth.JWTSecret, nil
	}
	if c.IsProduction() {
		return "", ErrMissingSecret
	}
	logger.Warn("auth.jwt_secret not set, using the development secret")
	return DevJWTSecret, nil
}

// LogLevel parses logging.level.
func (c *YAMLConfig) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// NewLogger builds the process logger described by the logging section,
// writing to stderr.
func (c *YAMLConfig) NewLogger() *slog.Logger {
	level, err := c.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// flatten turns cfg into dotted viper keys, using the YAML names.
func flatten(cfg *YAMLConfig) (map[string]interface{}, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	out := make(map[string]interface{})
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, v := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if child, ok := v.(map[string]interface{}); ok {
				walk(key, child)
				continue
			}
			out[key] = v
		}
	}
	walk("", tree)
	return out, nil
}
