// Package config provides centralized configuration management using Viper.
//
// The configuration doubles as the radio profile: which board is connected,
// where its SD card content lives and how sticks map to receiver channels.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Download branches.
const (
	BranchRelease = "release"
	BranchRC      = "rc"
	BranchNightly = "nightly"
)

// DefaultChannelOrder is the stick to channel layout used when none is configured.
const DefaultChannelOrder = "RETA"

// stickLetters indexes sticks the way the wizard does: rudder, elevator,
// throttle, ailerons.
const stickLetters = "RETA"

// Config holds all configuration values for txcompanion.
type Config struct {
	Radio           string `mapstructure:"radio" yaml:"radio"`
	FirmwareType    string `mapstructure:"fw_type" yaml:"fw_type"`
	FirmwareVersion string `mapstructure:"fw_version" yaml:"fw_version"`
	SDPath          string `mapstructure:"sd_path" yaml:"sd_path"`
	CustomSDPath    string `mapstructure:"custom_sd_path" yaml:"custom_sd_path"`
	SDLanguage      string `mapstructure:"sd_language" yaml:"sd_language"`
	LastSDDir       string `mapstructure:"last_sd_dir" yaml:"last_sd_dir"`
	SDVersion       string `mapstructure:"sd_version" yaml:"sd_version"`
	SDZipDestFile   string `mapstructure:"sd_zip_dest_file" yaml:"sd_zip_dest_file"`
	DownloadURL     string `mapstructure:"download_url" yaml:"download_url"`
	Branch          string `mapstructure:"branch" yaml:"branch"`
	ChannelOrder    string `mapstructure:"channel_order" yaml:"channel_order"`
	DataDir         string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel        string `mapstructure:"log_level" yaml:"log_level"`
	LogFile         string `mapstructure:"log_file" yaml:"log_file"`
	DownloadTimeout int    `mapstructure:"download_timeout" yaml:"download_timeout"` // seconds
}

// envKeys lists every key bound to a TXCOMPANION_ environment variable.
var envKeys = []string{
	"radio", "fw_type", "fw_version", "sd_path", "custom_sd_path", "sd_language",
	"last_sd_dir", "sd_version", "sd_zip_dest_file", "download_url", "branch",
	"channel_order", "data_dir", "log_level", "log_file", "download_timeout",
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("txcompanion")

	v.SetDefault("radio", "x9d+")
	v.SetDefault("fw_type", "opentx-x9d+")
	v.SetDefault("fw_version", "")
	v.SetDefault("sd_path", "")
	v.SetDefault("custom_sd_path", "")
	v.SetDefault("sd_language", "en")
	v.SetDefault("last_sd_dir", "")
	v.SetDefault("sd_version", "")
	v.SetDefault("sd_zip_dest_file", "")
	v.SetDefault("download_url", "https://downloads.open-tx.org/2.3")
	v.SetDefault("branch", BranchRelease)
	v.SetDefault("channel_order", DefaultChannelOrder)
	v.SetDefault("data_dir", ".txcompanion")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("download_timeout", 300)

	v.SetEnvPrefix("TXCOMPANION")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, "TXCOMPANION_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks values that the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Radio == "" {
		return fmt.Errorf("radio is required (set it in %s or via TXCOMPANION_RADIO)", GlobalPath())
	}
	if !validChannelOrder(c.ChannelOrder) {
		return fmt.Errorf("invalid channel_order %q: must be a permutation of %s", c.ChannelOrder, stickLetters)
	}
	switch c.Branch {
	case BranchRelease, BranchRC, BranchNightly:
	default:
		return fmt.Errorf("invalid branch %q (must be release, rc or nightly)", c.Branch)
	}
	return nil
}

// DefaultChannel returns the preferred receiver channel (zero-based) for a
// stick, where sticks are numbered rudder=0, elevator=1, throttle=2,
// ailerons=3. Returns -1 when no hint is available.
func (c *Config) DefaultChannel(stick int) int {
	if stick < 0 || stick >= len(stickLetters) {
		return -1
	}
	order := strings.ToUpper(c.ChannelOrder)
	if order == "" {
		order = DefaultChannelOrder
	}
	if !validChannelOrder(order) {
		return -1
	}
	return strings.IndexByte(order, stickLetters[stick])
}

func validChannelOrder(order string) bool {
	order = strings.ToUpper(order)
	if len(order) != len(stickLetters) {
		return false
	}
	for i := 0; i < len(stickLetters); i++ {
		if strings.Count(order, string(stickLetters[i])) != 1 {
			return false
		}
	}
	return true
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/txcompanion/txcompanion.yml or $XDG_CONFIG_HOME/txcompanion/txcompanion.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "txcompanion", "txcompanion.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "txcompanion", "txcompanion.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "txcompanion.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	return writeFile(GlobalPath(), cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return writeFile(ProjectPath(), cfg)
}

// Persist writes cfg back to whichever file it most likely came from: the
// project file when one exists, the global file otherwise. Used to record
// SD card state after downloads and installs.
func Persist(cfg *Config) error {
	if fileExists(ProjectPath()) {
		return WriteProject(cfg)
	}
	return WriteGlobal(cfg)
}

func writeFile(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
