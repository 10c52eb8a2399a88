package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values. The user agent identifies this client to the
// site as its usage policy asks.
const (
	defaultBaseURL         = "https://adventofcode.com"
	defaultUA              = "aoc-env (github.com/apsurt/aoc-env)"
	defaultCacheDir        = ".cache"
	defaultCooldownSeconds = 60
)

// appConfig holds the application configuration.
type appConfig struct {
	Session         string `json:"session,omitempty"`
	BaseURL         string `json:"base_url,omitempty"`
	UserAgent       string `json:"user_agent,omitempty"`
	CacheDir        string `json:"cache_dir,omitempty"`
	CooldownSeconds int    `json:"cooldown_seconds,omitempty"`
}

func defaultConfig() appConfig {
	return appConfig{
		BaseURL:         defaultBaseURL,
		UserAgent:       defaultUA,
		CacheDir:        defaultCacheDir,
		CooldownSeconds: defaultCooldownSeconds,
	}
}

// cooldown returns the fallback wait between submission attempts, used when
// the site did not state one.
func (cfg appConfig) cooldown() time.Duration {
	if cfg.CooldownSeconds <= 0 {
		return defaultCooldownSeconds * time.Second
	}
	return time.Duration(cfg.CooldownSeconds) * time.Second
}

// loadConfig loads configuration from the specified path. A missing file is
// not an error; defaults apply and the session may come from the environment.
func loadConfig(path string) (appConfig, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return appConfig{}, fmt.Errorf("stat config: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
		return appConfig{}, fmt.Errorf("load config: %w", err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return appConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Session = strings.TrimSpace(cfg.Session)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUA
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir
	}
	return cfg, nil
}

// saveConfig writes configuration to the specified path. The write goes
// through a temp file so an interrupted save never corrupts the config.
func saveConfig(path string, cfg appConfig) error {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUA
	}

	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	b = append(b, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
