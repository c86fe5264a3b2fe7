// Package appconfig manages application configuration and runtime file paths.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"sshpad/internal/util"
)

// PickerConfig selects the external fuzzy-picker command. When Command is not
// found on PATH the built-in picker is used instead.
type PickerConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// TypistConfig selects the simulated-input command.
type TypistConfig struct {
	Command string `yaml:"command"`
}

// AutomationConfig tunes the fixed delays between simulated-input steps.
type AutomationConfig struct {
	StepDelayMS     int `yaml:"step_delay_ms"`
	EscalateDelayMS int `yaml:"escalate_delay_ms"`
}

// ClipboardConfig tunes the sensitive-copy auto-clear window.
type ClipboardConfig struct {
	ClearSeconds int `yaml:"clear_seconds"`
}

// Config holds application-level configuration.
type Config struct {
	Picker       PickerConfig     `yaml:"picker"`
	Typist       TypistConfig     `yaml:"typist"`
	Automation   AutomationConfig `yaml:"automation"`
	Clipboard    ClipboardConfig  `yaml:"clipboard"`
	ProxyCommand string           `yaml:"proxy_command"`
	Inventory    string           `yaml:"inventory,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Picker: PickerConfig{Command: "fzf"},
		Typist: TypistConfig{Command: "xdotool"},
		Automation: AutomationConfig{
			StepDelayMS:     int(util.StepDelay / time.Millisecond),
			EscalateDelayMS: int(util.EscalateDelay / time.Millisecond),
		},
		Clipboard:    ClipboardConfig{ClearSeconds: int(util.ClipboardTTL / time.Second)},
		ProxyCommand: "proxychains",
	}
}

// StepDelay returns the inter-step automation delay as a duration.
func (c Config) StepDelay() time.Duration {
	if c.Automation.StepDelayMS <= 0 {
		return util.StepDelay
	}
	return time.Duration(c.Automation.StepDelayMS) * time.Millisecond
}

// EscalateDelay returns the su-to-password automation delay as a duration.
func (c Config) EscalateDelay() time.Duration {
	if c.Automation.EscalateDelayMS <= 0 {
		return util.EscalateDelay
	}
	return time.Duration(c.Automation.EscalateDelayMS) * time.Millisecond
}

// ClipboardTTL returns the clipboard auto-clear window as a duration.
func (c Config) ClipboardTTL() time.Duration {
	if c.Clipboard.ClearSeconds <= 0 {
		return util.ClipboardTTL
	}
	return time.Duration(c.Clipboard.ClearSeconds) * time.Second
}

// ConfigDir returns the application config directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/sshpad.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sshpad"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".config", "sshpad"), nil
}

// InventoryPath resolves the inventory file location: the configured path when
// set, otherwise hosts.csv inside the config directory.
func (c Config) InventoryPath() (string, error) {
	if c.Inventory != "" {
		return c.Inventory, nil
	}
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "hosts.csv"), nil
}

// HistoryFilePath returns the full path to history.json.
func HistoryFilePath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "history.json"), nil
}

// JournalFilePath returns the full path to events.jsonl.
func JournalFilePath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "events.jsonl"), nil
}

// Load reads config.yaml from the config directory.
// If the file doesn't exist, creates it with defaults.
func Load() (Config, error) {
	d, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	if err := os.MkdirAll(d, 0o700); err != nil {
		return Config{}, err
	}
	path := filepath.Join(d, "config.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Picker.Command == "" {
		cfg.Picker.Command = "fzf"
	}
	if cfg.Typist.Command == "" {
		cfg.Typist.Command = "xdotool"
	}
	if cfg.ProxyCommand == "" {
		cfg.ProxyCommand = "proxychains"
	}
	return cfg, nil
}

// Save writes config to config.yaml.
func Save(cfg Config) error {
	d, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0o700); err != nil {
		return err
	}
	path := filepath.Join(d, "config.yaml")
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
