package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"gopkg.in/yaml.v3"
)

// Update holds proposed account and tone fields. Blank fields keep the
// existing value.
type Update struct {
	Username string
	Token    string
	Mode     reminder.Mode
}

// Apply merges u into existing (or the defaults when existing is nil) and
// returns the new configuration. Whether to overwrite an existing file is
// the caller's decision.
func Apply(existing *Config, u Update) Config {
	cfg := Default()
	if existing != nil {
		cfg = *existing
		cfg.Schedule.Checks = append([]CheckTime(nil), existing.Schedule.Checks...)
	}
	if username := strings.TrimSpace(u.Username); username != "" {
		cfg.GitHub.Username = username
	}
	if token := strings.TrimSpace(u.Token); token != "" {
		cfg.GitHub.Token = token
	}
	if u.Mode != "" {
		cfg.Reminder.Mode = u.Mode
	}
	return cfg
}

// Save writes cfg to path atomically. The file holds the API token, so it
// is readable by the owner only.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
