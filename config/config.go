package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log         LogConfig     `mapstructure:"log"`
	UI          UIConfig      `mapstructure:"ui"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
	Collections []string      `mapstructure:"collections"`
}

// LogConfig controls the debug log file. An empty file disables logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Transition        time.Duration `mapstructure:"transition"`
	NoticeDuration    time.Duration `mapstructure:"notice_duration"`
	OverlayBackground string        `mapstructure:"overlay_background"`
}

// MetricsConfig enables the prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

const envPrefix = "SFGALLERY"

var defaultCollections = []string{"Favourites", "Inspiration", "To try", "Showcase"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "debug")
	v.SetDefault("ui.transition", 150*time.Millisecond)
	v.SetDefault("ui.notice_duration", 2*time.Second)
	v.SetDefault("ui.overlay_background", "236")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("collections", defaultCollections)
}

// Dir returns the directory holding sfgallery config files.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "sfgallery"), nil
}

// Load reads configuration from path (or the default location when path is empty)
// and the environment. Env var overrides use prefix SFGALLERY_. A missing default
// file is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// fileConfig is the on-disk shape written by WriteDefault. Durations are kept as
// strings so the file stays readable.
type fileConfig struct {
	Log struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`
	UI struct {
		Transition        string `toml:"transition"`
		NoticeDuration    string `toml:"notice_duration"`
		OverlayBackground string `toml:"overlay_background"`
	} `toml:"ui"`
	Metrics struct {
		Addr string `toml:"addr"`
	} `toml:"metrics"`
	Collections []string `toml:"collections"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:         LogConfig{Level: "debug"},
		UI:          UIConfig{Transition: 150 * time.Millisecond, NoticeDuration: 2 * time.Second, OverlayBackground: "236"},
		Collections: append([]string(nil), defaultCollections...),
	}
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left alone and reported as an error.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	d := Default()
	var fc fileConfig
	fc.Log.File = d.Log.File
	fc.Log.Level = d.Log.Level
	fc.UI.Transition = d.UI.Transition.String()
	fc.UI.NoticeDuration = d.UI.NoticeDuration.String()
	fc.UI.OverlayBackground = d.UI.OverlayBackground
	fc.Metrics.Addr = d.Metrics.Addr
	fc.Collections = d.Collections

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("# sfgallery configuration\n\n"); err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(fc); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
