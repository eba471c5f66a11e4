package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the manut configuration file.
type Config struct {
	DatabasePath string        `yaml:"database_path"`
	BackupDir    string        `yaml:"backup_dir"`
	Floors       int           `yaml:"floors"`
	AptsPerFloor int           `yaml:"apts_per_floor"`
	LogLevel     string        `yaml:"log_level"`  // debug, info, warn, error
	LogFormat    string        `yaml:"log_format"` // console or json
	BusyRetries  int           `yaml:"busy_retries"`
	BusyBackoff  time.Duration `yaml:"busy_backoff"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		DatabasePath: "manutencao_hotel.db",
		BackupDir:    "backups",
		Floors:       12,
		AptsPerFloor: 18,
		LogLevel:     "info",
		LogFormat:    "console",
		BusyRetries:  3,
		BusyBackoff:  50 * time.Millisecond,
	}
}

// LoadConfig builds the configuration from defaults, MANUT_* environment
// variables, and then the YAML file at path when path is not empty.
// A path that cannot be read is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Defaults()
	cfg.DatabasePath = getEnv("MANUT_DATABASE_PATH", cfg.DatabasePath)
	cfg.BackupDir = getEnv("MANUT_BACKUP_DIR", cfg.BackupDir)
	cfg.LogLevel = getEnv("MANUT_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("MANUT_LOG_FORMAT", cfg.LogFormat)
	if v := os.Getenv("MANUT_BUSY_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MANUT_BUSY_RETRIES: %w", err)
		}
		cfg.BusyRetries = n
	}

	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML to path, creating parent directories.
func SaveConfig(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.BackupDir == "" {
		return fmt.Errorf("backup_dir is required")
	}
	// Room codes carry two digits per component.
	if c.Floors < 1 || c.Floors > 99 {
		return fmt.Errorf("floors must be between 1 and 99, got %d", c.Floors)
	}
	if c.AptsPerFloor < 1 || c.AptsPerFloor > 99 {
		return fmt.Errorf("apts_per_floor must be between 1 and 99, got %d", c.AptsPerFloor)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	if c.BusyRetries < 0 {
		return fmt.Errorf("busy_retries must not be negative")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
