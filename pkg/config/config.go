// Package config loads docsctl settings from an optional YAML file and
// USERDOCS_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/docsync/userdocs/pkg/constants"
)

// EnvPrefix prefixes every environment override, e.g. USERDOCS_BASE_URL or
// USERDOCS_SESSION_BACKEND.
const EnvPrefix = "USERDOCS"

// ConfigFileEnv names the config file when no path is passed to Load.
const ConfigFileEnv = EnvPrefix + "_CONFIG"

type SessionConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		BaseURL: constants.DefaultBaseURL,
		Timeout: constants.DefaultHTTPTimeout,
		Session: SessionConfig{Backend: "file"},
		Log:     LogConfig{Level: "warn"},
	}
}

// Load reads the YAML file at path, or at $USERDOCS_CONFIG when path is empty,
// and applies environment overrides. With neither set only defaults and the
// environment are used.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("session.backend", def.Session.Backend)
	v.SetDefault("session.path", def.Session.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = GetEnvOrDefault(ConfigFileEnv, "")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate rejects settings no command could run with.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return constants.ErrNoBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != constants.HTTPScheme && u.Scheme != constants.HTTPSecureScheme {
		return fmt.Errorf("invalid base_url %q: scheme must be %s or %s", c.BaseURL, constants.HTTPScheme, constants.HTTPSecureScheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url %q: missing host", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	return nil
}

// SessionPath returns the configured session location, or a per-user default
// named after the backend.
func (c *Config) SessionPath() string {
	if c.Session.Path != "" {
		return c.Session.Path
	}

	name := "session.cbor"
	if c.Session.Backend == "sqlite" {
		name = "session.db"
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".userdocs", name)
	}
	return filepath.Join(dir, "userdocs", name)
}
