// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.yaml"
	// defaultHost is the interface the server binds when none is configured.
	defaultHost = "127.0.0.1"
	// defaultPort matches the port the pages were originally served on.
	defaultPort = 8050
	// defaultSessionTTL bounds how long an idle websocket session is kept.
	defaultSessionTTL = 30 * time.Minute
	// defaultShutdownTimeout bounds graceful server shutdown.
	defaultShutdownTimeout = 10 * time.Second
	// defaultPlotlyURL is the plotly.js bundle the pages load.
	defaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	// defaultStylesheetURL is the w3.css stylesheet the pages load.
	defaultStylesheetURL = "https://www.w3schools.com/w3css/4/w3.css"
)

// Config represents the top-level application configuration.
type Config struct {
	Host                   string `yaml:"host" mapstructure:"host"`
	Port                   int    `yaml:"port" mapstructure:"port"`
	Debug                  bool   `yaml:"debug" mapstructure:"debug"`
	LogFile                string `yaml:"logFile,omitempty" mapstructure:"logFile"`
	AssetsDir              string `yaml:"assetsDir,omitempty" mapstructure:"assetsDir"`
	PlotlyURL              string `yaml:"plotlyURL,omitempty" mapstructure:"plotlyURL"`
	StylesheetURL          string `yaml:"stylesheetURL,omitempty" mapstructure:"stylesheetURL"`
	SessionTTLSeconds      int    `yaml:"sessionTTL,omitempty" mapstructure:"sessionTTL"`
	ShutdownTimeoutSeconds int    `yaml:"shutdownTimeout,omitempty" mapstructure:"shutdownTimeout"`
	Metrics                bool   `yaml:"metrics" mapstructure:"metrics"`
	Websocket              bool   `yaml:"websocket" mapstructure:"websocket"`
	ConfigPath             string `yaml:"-" mapstructure:"-"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Host:      defaultHost,
		Port:      defaultPort,
		Metrics:   true,
		Websocket: true,
	}
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultHost
	}
	port := c.Port
	if port <= 0 {
		port = defaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// SessionTTL returns the idle lifetime of a websocket session.
func (c Config) SessionTTL() time.Duration {
	if c.SessionTTLSeconds <= 0 {
		return defaultSessionTTL
	}
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// ShutdownTimeout returns the grace period for in-flight requests on shutdown.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return defaultShutdownTimeout
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "biostat.log"
}

// PlotlyScript returns the plotly.js URL the pages load.
func (c Config) PlotlyScript() string {
	if u := strings.TrimSpace(c.PlotlyURL); u != "" {
		return u
	}
	return defaultPlotlyURL
}

// Stylesheet returns the w3.css URL the pages load.
func (c Config) Stylesheet() string {
	if u := strings.TrimSpace(c.StylesheetURL); u != "" {
		return u
	}
	return defaultStylesheetURL
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.AssetsDir != "" {
		info, err := os.Stat(c.AssetsDir)
		if err != nil {
			return fmt.Errorf("assets dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("assets dir %q is not a directory", c.AssetsDir)
		}
	}
	return nil
}

// Load reads the application configuration from the specified path. Keys the
// file omits keep their Default values.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}
