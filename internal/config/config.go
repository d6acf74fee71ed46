package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"gopkg.in/yaml.v3"
)

// ErrNotConfigured is returned when no config file exists yet.
var ErrNotConfigured = errors.New("not configured: run setup")

// DefaultDirName is the per-user data directory under $HOME.
const DefaultDirName = ".github_streak"

// Config defines tracker configuration.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Reminder ReminderConfig `yaml:"reminder"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type GitHubConfig struct {
	Username          string        `yaml:"username"`
	Token             string        `yaml:"token"`
	BaseURL           string        `yaml:"base_url,omitempty"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

type ReminderConfig struct {
	Mode    reminder.Mode `yaml:"mode"`
	Desktop bool          `yaml:"desktop"`
}

// CheckTime is one daily trigger, e.g. {At: "09:00", Kind: "morning"}.
type CheckTime struct {
	At   string `yaml:"at"`
	Kind string `yaml:"kind"`
}

type ScheduleConfig struct {
	Checks     []CheckTime `yaml:"checks"`
	RunOnStart bool        `yaml:"run_on_start"`
}

type StoreConfig struct {
	// Backend is "sqlite" or "json".
	Backend  string `yaml:"backend"`
	DBPath   string `yaml:"db_path"`
	JSONPath string `yaml:"json_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path,omitempty"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Dir returns the default data directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}

// Path returns the config file location, honouring STREAK_CONFIG_PATH.
func Path() string {
	if path := os.Getenv("STREAK_CONFIG_PATH"); path != "" {
		return path
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the configuration used before any file or env override.
func Default() Config {
	dir := Dir()
	return Config{
		GitHub: GitHubConfig{
			Timeout:           15 * time.Second,
			RequestsPerMinute: 30,
		},
		Reminder: ReminderConfig{
			Mode:    reminder.ModeNormal,
			Desktop: true,
		},
		Schedule: ScheduleConfig{
			Checks: []CheckTime{
				{At: "09:00", Kind: "morning"},
				{At: "14:00", Kind: "afternoon"},
				{At: "20:00", Kind: "evening"},
			},
			RunOnStart: true,
		},
		Store: StoreConfig{
			Backend:  "sqlite",
			DBPath:   filepath.Join(dir, "streak.db"),
			JSONPath: filepath.Join(dir, "streak.json"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the YAML file at path and environment
// variables. A missing file yields ErrNotConfigured together with the
// defaults (env overrides applied), so callers can still inspect them.
func Load(path string) (Config, error) {
	cfg, fileErr := readFile(path)
	if fileErr != nil && !errors.Is(fileErr, ErrNotConfigured) {
		return Config{}, fileErr
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}

	return cfg, fileErr
}

// LoadFile is Load without environment overrides. Changes written back
// with Save start from it so env-only values such as the token never
// land in the file.
func LoadFile(path string) (Config, error) {
	cfg, fileErr := readFile(path)
	if fileErr != nil && !errors.Is(fileErr, ErrNotConfigured) {
		return Config{}, fileErr
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, fileErr
}

func readFile(path string) (Config, error) {
	cfg := Default()
	if err := loadFromFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// normalize folds case in enumerated fields, then validates.
func (c *Config) normalize() error {
	mode, err := reminder.ParseMode(string(c.Reminder.Mode))
	if err != nil {
		return err
	}
	c.Reminder.Mode = mode
	for i := range c.Schedule.Checks {
		c.Schedule.Checks[i].Kind = strings.ToLower(strings.TrimSpace(c.Schedule.Checks[i].Kind))
	}
	return c.Validate()
}

func applyEnv(cfg *Config) error {
	if username := os.Getenv("STREAK_GITHUB_USERNAME"); username != "" {
		cfg.GitHub.Username = username
	}
	if token := os.Getenv("STREAK_GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if mode := os.Getenv("STREAK_MODE"); mode != "" {
		parsed, err := reminder.ParseMode(mode)
		if err != nil {
			return fmt.Errorf("invalid STREAK_MODE: %w", err)
		}
		cfg.Reminder.Mode = parsed
	}
	if backend := os.Getenv("STREAK_STORE"); backend != "" {
		cfg.Store.Backend = backend
	}
	if dbPath := os.Getenv("STREAK_DB_PATH"); dbPath != "" {
		cfg.Store.DBPath = dbPath
	}
	if jsonPath := os.Getenv("STREAK_JSON_PATH"); jsonPath != "" {
		cfg.Store.JSONPath = jsonPath
	}
	if level := os.Getenv("STREAK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("STREAK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if addr := os.Getenv("STREAK_METRICS_ADDR"); addr != "" {
		cfg.Metrics.Addr = addr
	}
	if rpm := os.Getenv("STREAK_GITHUB_RPM"); rpm != "" {
		n, err := strconv.Atoi(rpm)
		if err != nil {
			return fmt.Errorf("invalid STREAK_GITHUB_RPM: %w", err)
		}
		cfg.GitHub.RequestsPerMinute = n
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotConfigured
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail deep inside a check.
func (c Config) Validate() error {
	switch c.Reminder.Mode {
	case reminder.ModeNormal, reminder.ModeStrict:
	default:
		return fmt.Errorf("%w: %q (want normal or strict)", reminder.ErrInvalidMode, c.Reminder.Mode)
	}
	switch c.Store.Backend {
	case "sqlite", "json":
	default:
		return fmt.Errorf("invalid store backend %q (want sqlite or json)", c.Store.Backend)
	}
	for _, check := range c.Schedule.Checks {
		if _, err := time.Parse("15:04", check.At); err != nil {
			return fmt.Errorf("invalid check time %q: want HH:MM", check.At)
		}
		if !checklog.Kind(check.Kind).Valid() {
			return fmt.Errorf("invalid check kind %q at %s (want morning, afternoon, evening or manual)", check.Kind, check.At)
		}
	}
	return nil
}

// Configured reports whether the account fields needed for a check are set.
func (c Config) Configured() bool {
	return c.GitHub.Username != "" && c.GitHub.Token != ""
}
