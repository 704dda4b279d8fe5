package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding settings,
// e.g. LUXDL_TOOL_PATH.
const EnvPrefix = "LUXDL"

// Settings holds all configuration options.
type Settings struct {
	// lux executable, looked up in PATH when not absolute
	ToolPath string `json:"tool_path" mapstructure:"tool_path"`

	// Prompt defaults
	DefaultThreads string `json:"default_threads" mapstructure:"default_threads"`

	// Pipeline
	QueueSize int    `json:"queue_size" mapstructure:"queue_size"`
	OutputDir string `json:"output_dir" mapstructure:"output_dir"` // working directory of lux; empty = current

	// Logging
	LogLevel string `json:"log_level" mapstructure:"log_level"`
	LogFile  string `json:"log_file" mapstructure:"log_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		ToolPath:       "lux",
		DefaultThreads: "4",
		QueueSize:      100,
		OutputDir:      "",
		LogLevel:       "warn",
		LogFile:        "",
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lux-downloader", "config.json")
}

// Load reads settings from a JSON file and applies LUXDL_* environment
// overrides. A missing file is not an error: defaults are used.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %q: %w", path, err)
			}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return settings, nil
}

func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("tool_path", s.ToolPath)
	v.SetDefault("default_threads", s.DefaultThreads)
	v.SetDefault("queue_size", s.QueueSize)
	v.SetDefault("output_dir", s.OutputDir)
	v.SetDefault("log_level", s.LogLevel)
	v.SetDefault("log_file", s.LogFile)
}

// Validate checks that the settings can drive a download run.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.ToolPath) == "" {
		return errors.New("tool_path must not be empty")
	}
	if s.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be positive, got %d", s.QueueSize)
	}
	return nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
