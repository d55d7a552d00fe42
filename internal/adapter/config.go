package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmcdole/soap4/internal/adapter/source/soap4me"
	"github.com/mmcdole/soap4/internal/domain"
)

const appName = "soap4"

// Config holds all application configuration
type Config struct {
	API     APIConfig         `mapstructure:"api"`
	Plugin  PluginConfig      `mapstructure:"plugin"`
	Prefs   PreferencesConfig `mapstructure:"preferences"`
	Player  PlayerConfig      `mapstructure:"player"`
	Store   StoreConfig       `mapstructure:"store"`
	Logging LoggingConfig     `mapstructure:"logging"`
}

// APIConfig holds the remote catalog endpoints
type APIConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	StreamHostFormat string        `mapstructure:"stream_host_format"` // %s is the stream server
	UserAgent        string        `mapstructure:"user_agent"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// PluginConfig identifies this client: route prefix, KV bucket and header
type PluginConfig struct {
	ID    string `mapstructure:"id"`
	Title string `mapstructure:"title"`
	Logo  string `mapstructure:"logo"`
}

// PreferencesConfig holds user preferences
type PreferencesConfig struct {
	PreferredQuality  string `mapstructure:"preferred_quality"`
	MarkWatchedOnPlay bool   `mapstructure:"mark_watched_on_play"`
	ShowUnsubscribed  bool   `mapstructure:"show_unsubscribed"`
}

// PlayerConfig holds media player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// StoreConfig locates the session database. An empty path keeps it in memory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:          soap4me.DefaultBaseURL,
			StreamHostFormat: soap4me.DefaultStreamHostFormat,
			UserAgent:        soap4me.DefaultUserAgent,
			Timeout:          30 * time.Second,
		},
		Plugin: PluginConfig{
			ID:    "soap4me",
			Title: "soap4.me",
			Logo:  "soap4me.png",
		},
		Prefs: PreferencesConfig{
			PreferredQuality:  "720p",
			MarkWatchedOnPlay: true,
		},
		Player: PlayerConfig{
			Command: "mpv",
			Args:    []string{},
		},
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "soap4.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "soap4.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the directory for logs and the session database
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// LoadConfig loads configuration from file and environment. A non-empty
// file overrides the usual search path.
func LoadConfig(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}
	return loadConfig(v)
}

func loadConfig(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	// Environment variable overrides, e.g. SOAP4_PREFERENCES_PREFERRED_QUALITY
	v.SetEnvPrefix("SOAP4")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so env overrides apply without a file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.stream_host_format", cfg.API.StreamHostFormat)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)
	v.SetDefault("api.timeout", cfg.API.Timeout)

	v.SetDefault("plugin.id", cfg.Plugin.ID)
	v.SetDefault("plugin.title", cfg.Plugin.Title)
	v.SetDefault("plugin.logo", cfg.Plugin.Logo)

	v.SetDefault("preferences.preferred_quality", cfg.Prefs.PreferredQuality)
	v.SetDefault("preferences.mark_watched_on_play", cfg.Prefs.MarkWatchedOnPlay)
	v.SetDefault("preferences.show_unsubscribed", cfg.Prefs.ShowUnsubscribed)

	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)

	v.SetDefault("store.path", cfg.Store.Path)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// SaveConfig writes cfg to config.yaml in dir, creating dir if needed
func SaveConfig(cfg *Config, dir string) error {
	if dir == "" {
		dir = DefaultConfigPath()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.stream_host_format", cfg.API.StreamHostFormat)
	v.Set("api.user_agent", cfg.API.UserAgent)
	v.Set("api.timeout", cfg.API.Timeout.String())

	v.Set("plugin.id", cfg.Plugin.ID)
	v.Set("plugin.title", cfg.Plugin.Title)
	v.Set("plugin.logo", cfg.Plugin.Logo)

	v.Set("preferences.preferred_quality", cfg.Prefs.PreferredQuality)
	v.Set("preferences.mark_watched_on_play", cfg.Prefs.MarkWatchedOnPlay)
	v.Set("preferences.show_unsubscribed", cfg.Prefs.ShowUnsubscribed)

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	v.Set("store.path", cfg.Store.Path)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Preferences implements domain.Settings
func (c *Config) Preferences() domain.Preferences {
	return domain.Preferences{
		PreferredQuality:  c.Prefs.PreferredQuality,
		MarkWatchedOnPlay: c.Prefs.MarkWatchedOnPlay,
		ShowUnsubscribed:  c.Prefs.ShowUnsubscribed,
	}
}

// ClientConfig returns the catalog client settings
func (c *Config) ClientConfig() soap4me.ClientConfig {
	return soap4me.ClientConfig{
		BaseURL:          c.API.BaseURL,
		UserAgent:        c.API.UserAgent,
		StreamHostFormat: c.API.StreamHostFormat,
		Timeout:          c.API.Timeout,
	}
}

// Meta returns the page header shown on every route
func (c *Config) Meta() domain.Metadata {
	return domain.Metadata{Title: c.Plugin.Title, Logo: c.Plugin.Logo}
}
