// Package config provides configuration management for the mouseshare
// companion.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"mouseshare/internal/protocol"
)

// Config represents the application configuration
type Config struct {
	Target  TargetConfig  `yaml:"target"`
	Session SessionConfig `yaml:"session"`
	Edge    EdgeConfig    `yaml:"edge"`
	Screen  ScreenConfig  `yaml:"screen"`

	// Keymap overrides map source key codes to native key codes.
	Keymap map[int]int `yaml:"keymap,omitempty"`

	Status StatusConfig `yaml:"status"`
	Tray   bool         `yaml:"tray"`
	Log    LogConfig    `yaml:"log"`
}

// TargetConfig is the address of the source machine.
type TargetConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port.
func (t TargetConfig) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// SessionConfig holds the link timings.
type SessionConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	Backoff        time.Duration `yaml:"backoff"`
}

// EdgeConfig selects the handback edge.
type EdgeConfig struct {
	Side      protocol.Edge `yaml:"side"`
	Threshold int           `yaml:"threshold"`

	// Poll samples the real pointer position in the background in addition
	// to checking injected moves.
	Poll         bool          `yaml:"poll"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// ScreenConfig overrides screen detection when both sides are positive.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// StatusConfig controls the local status endpoint. An empty Listen disables it.
type StatusConfig struct {
	Listen string `yaml:"listen"`
}

// LogConfig controls logging verbosity.
type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			Host: "192.168.100.1",
			Port: 9876,
		},
		Session: SessionConfig{
			ConnectTimeout: 5 * time.Second,
			ReadTimeout:    30 * time.Second,
			Backoff:        2 * time.Second,
		},
		Edge: EdgeConfig{
			Side:         protocol.EdgeLeft,
			Threshold:    5,
			PollInterval: 100 * time.Millisecond,
		},
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.Target.Host == "" {
		errs = append(errs, errors.New("target.host is required"))
	}
	if c.Target.Port <= 0 || c.Target.Port > 65535 {
		errs = append(errs, fmt.Errorf("target.port %d out of range", c.Target.Port))
	}
	if !c.Edge.Side.Valid() {
		errs = append(errs, fmt.Errorf("edge.side %q must be left, right, top or bottom", c.Edge.Side))
	}
	if c.Edge.Threshold < 0 {
		errs = append(errs, fmt.Errorf("edge.threshold %d must not be negative", c.Edge.Threshold))
	}
	// A negative read timeout disables it.
	if c.Session.ConnectTimeout < 0 || c.Session.Backoff < 0 {
		errs = append(errs, errors.New("session.connect_timeout and session.backoff must not be negative"))
	}
	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		errs = append(errs, errors.New("screen dimensions must not be negative"))
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	if c.Keymap != nil {
		cp.Keymap = make(map[int]int, len(c.Keymap))
		for k, v := range c.Keymap {
			cp.Keymap[k] = v
		}
	}
	return &cp
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  []func(*Config)
	log        *slog.Logger
}

// NewManager creates a manager for the file at path. An empty path selects
// the per-user default location.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
		log:        slog.Default().With("component", "config"),
	}, nil
}

// DefaultPath returns the per-user configuration file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "mouseshare"), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "mouseshare"), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "mouseshare"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "mouseshare"), nil
	}
}

// Path returns the file the manager reads and writes.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk. A missing file leaves the
// defaults in place.
func (m *Manager) Load() error {
	cfg, err := readFile(m.configPath)
	if errors.Is(err, os.ErrNotExist) {
		m.log.Info("no config file, using defaults", "path", m.configPath)
		return nil
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	m.notify(cfg)
	return nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}

	m.log.Info("saving configuration", "path", m.configPath, "bytes", len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config.Clone()
}

// Set replaces the configuration and notifies callbacks
func (m *Manager) Set(config *Config) {
	m.mu.Lock()
	m.config = config.Clone()
	m.mu.Unlock()
	m.notify(config)
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = append(m.onChanged, fn)
}

func (m *Manager) notify(cfg *Config) {
	m.mu.Lock()
	callbacks := slices.Clone(m.onChanged)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg.Clone())
	}
}
