package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. FACULTY_SERVER_PORT.
const EnvPrefix = "FACULTY"

// Config represents the application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	I18n      I18nConfig      `mapstructure:"i18n"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Cookies   CookieConfig    `mapstructure:"cookies"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type AppConfig struct {
	Name  string `mapstructure:"name" validate:"required"`
	Env   string `mapstructure:"env" validate:"oneof=development production test"`
	Debug bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language" validate:"oneof=en ar"`
	CookieName      string `mapstructure:"cookie_name" validate:"required,cookie_name"`
}

type ThemeConfig struct {
	Default    string `mapstructure:"default" validate:"oneof=light dark"`
	CookieName string `mapstructure:"cookie_name" validate:"required,cookie_name"`
}

type CookieConfig struct {
	MaxAge int  `mapstructure:"max_age" validate:"gte=0"`
	Secure bool `mapstructure:"secure"`
}

type TemplatesConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"startswith=/"`
}

// setDefaults registers the built-in configuration so the site starts
// without any file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "faculty-web")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("i18n.default_language", "en")
	v.SetDefault("i18n.cookie_name", "lang")

	v.SetDefault("theme.default", "light")
	v.SetDefault("theme.cookie_name", "theme")

	v.SetDefault("cookies.max_age", 86400*365)
	v.SetDefault("cookies.secure", false)

	v.SetDefault("templates.dir", "templates")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.host", "127.0.0.1")
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

// Config files read from the config directory, in merge order.
const (
	DefaultFile  = "default.yaml"
	OverrideFile = "config.yaml"
)

// Manager owns the live configuration and swaps it when a config file
// changes.
type Manager struct {
	path string

	mu  sync.RWMutex
	cfg *Config

	watcher *fsnotify.Watcher
}

// Load reads default.yaml and an optional config.yaml from configPath,
// then applies FACULTY_* environment overrides. A missing default.yaml is
// not an error; the built-in defaults apply.
func Load(configPath string) (*Manager, error) {
	cfg, err := read(configPath)
	if err != nil {
		return nil, err
	}
	return &Manager{path: configPath, cfg: cfg}, nil
}

// read builds the merged configuration from scratch so a reload never sees
// half of the previous merge.
func read(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)

		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read default config: %w", err)
			}
		}

		// Environment-specific overrides are optional.
		v.SetConfigName(strings.TrimSuffix(OverrideFile, ".yaml"))
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to merge config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns the current configuration (thread-safe)
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Reload re-reads both files and swaps the live configuration. An invalid
// result is returned as an error and the previous configuration stays live.
func (m *Manager) Reload() (*Config, error) {
	cfg, err := read(m.path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	return cfg, nil
}

// Watch reloads the configuration whenever default.yaml or config.yaml in
// the config directory is written, created, renamed or removed. Without a
// config directory it does nothing.
func (m *Manager) Watch(onChange func(*Config), onError func(error)) error {
	if m.path == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	// The directory is watched so editors that replace files are seen.
	if err := w.Add(m.path); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch config %s: %w", m.path, err)
	}

	m.mu.Lock()
	m.watcher = w
	m.mu.Unlock()

	go m.watch(w, onChange, onError)
	return nil
}

func (m *Manager) watch(w *fsnotify.Watcher, onChange func(*Config), onError func(error)) {
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !isConfigFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}

			cfg, err := m.Reload()
			if err != nil {
				if onError != nil {
					onError(fmt.Errorf("reload %s: %w", event.Name, err))
				}
				continue
			}
			if onChange != nil {
				onChange(cfg)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(fmt.Errorf("watch config: %w", err))
			}
		}
	}
}

// Close stops watching.
func (m *Manager) Close() error {
	m.mu.Lock()
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Close()
}

func isConfigFile(name string) bool {
	base := filepath.Base(name)
	return base == DefaultFile || base == OverrideFile
}

// GetServerAddr returns the server listen address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetAddr returns the metrics listen address
func (c *MetricsConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction returns true if running in production mode
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment returns true if running in development mode
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}
