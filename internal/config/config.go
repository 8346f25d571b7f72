package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

type Config struct {
	ClaudeDir         string `json:"claude_dir"`
	DataDir           string `json:"data_dir"`
	HistoryFile       string `json:"history_file"`
	IdleThresholdMins int    `json:"idle_threshold_minutes"`
	TopProjects       int    `json:"top_projects"`
}

func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	claudeDir := filepath.Join(home, ".claude")
	return Config{
		ClaudeDir:   claudeDir,
		HistoryFile: filepath.Join(claudeDir, "history.jsonl"),
		TopProjects: 4,
	}
}

// IdleThreshold converts the configured minutes; zero disables session
// splitting.
func (c Config) IdleThreshold() time.Duration {
	return time.Duration(c.IdleThresholdMins) * time.Minute
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "ccjournal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccjournal")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	defaults := DefaultConfig()
	if cfg.ClaudeDir == "" {
		cfg.ClaudeDir = defaults.ClaudeDir
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(cfg.ClaudeDir, "history.jsonl")
	}
	if cfg.IdleThresholdMins < 0 {
		cfg.IdleThresholdMins = 0
	}
	if cfg.TopProjects <= 0 {
		cfg.TopProjects = defaults.TopProjects
	}

	return cfg, nil
}

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
