// Package config handles the XDG configuration directory, the config file
// and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// AppName is the application directory name.
	AppName = "taskctl"

	// ConfigFile is the optional settings filename inside Dir.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes environment overrides (TASKCTL_API_URL, ...).
	EnvPrefix = "TASKCTL"

	// DefaultAPIURL is the server base URL when none is configured.
	DefaultAPIURL = "http://localhost:8080"

	// DefaultTimeout bounds each API call.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the task server.
	APIURL string

	// Timeout bounds each API call.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Log receives diagnostics. Nil means discard.
	Log *zap.Logger
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskctl or $HOME/.config/taskctl.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:     dir,
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// Load applies the settings file (if present) and TASKCTL_* environment
// variables on top of the defaults. The environment wins over the file.
func (c *Config) Load() error {
	v := viper.New()
	v.SetDefault("api_url", c.APIURL)
	v.SetDefault("timeout", c.Timeout)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(c.ConfigPath()); err == nil {
		v.SetConfigFile(c.ConfigPath())
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	apiURL := strings.TrimRight(strings.TrimSpace(v.GetString("api_url")), "/")
	if apiURL == "" {
		return errors.New("api_url must not be empty")
	}
	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", v.GetString("timeout"))
	}

	c.APIURL = apiURL
	c.Timeout = timeout
	return nil
}

// Logger returns the configured logger, or a no-op logger.
func (c *Config) Logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}
