// Package config loads editor settings from a YAML file in the user's home
// directory. A missing file yields the defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chazu/vlisp/pkg/layout/frame"
)

// FileName is the config file looked up in the home directory.
const FileName = ".vlisp.yaml"

// Frame sizes node frames and their connectors.
type Frame struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	ConnectorSize float64 `yaml:"connector_size"`
	Header        float64 `yaml:"header"`
}

// Config holds the editor settings. MetricsAddr is the listen address for
// the Prometheus endpoint, e.g. "127.0.0.1:9464"; empty disables it.
type Config struct {
	SaveDirectory string        `yaml:"save_directory"`
	Frame         Frame         `yaml:"frame"`
	EvalTimeout   time.Duration `yaml:"eval_timeout"`
	Debug         bool          `yaml:"debug"`
	MetricsAddr   string        `yaml:"metrics_addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Frame: Frame{
			Width:         frame.DefaultWidth,
			Height:        frame.DefaultHeight,
			ConnectorSize: frame.DefaultConnectorSize,
			Header:        frame.DefaultHeader,
		},
		EvalTimeout: 5 * time.Second,
	}
}

// Load reads ~/.vlisp.yaml over the defaults.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(home, FileName))
}

// LoadFile reads the given file over the defaults. A missing file is not an
// error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	cfg.SaveDirectory = expandHome(cfg.SaveDirectory)
	return cfg, nil
}

// Validate rejects settings the layout cannot work with.
func (c *Config) Validate() error {
	if c.Frame.Width <= 0 || c.Frame.Height <= 0 {
		return fmt.Errorf("frame size must be positive, got %gx%g", c.Frame.Width, c.Frame.Height)
	}
	if c.Frame.ConnectorSize <= 0 {
		return fmt.Errorf("connector size must be positive, got %g", c.Frame.ConnectorSize)
	}
	if c.EvalTimeout <= 0 {
		return fmt.Errorf("eval timeout must be positive, got %s", c.EvalTimeout)
	}
	return nil
}

// Apply sizes a frame layout from the settings.
func (c *Config) Apply(l *frame.Layout) {
	l.Width = c.Frame.Width
	l.Height = c.Frame.Height
	l.ConnectorSize = c.Frame.ConnectorSize
	l.Header = c.Frame.Header
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
