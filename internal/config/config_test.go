package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MANUT_DATABASE_PATH", "")
	t.Setenv("MANUT_BACKUP_DIR", "")
	t.Setenv("MANUT_LOG_LEVEL", "")
	t.Setenv("MANUT_LOG_FORMAT", "")
	t.Setenv("MANUT_BUSY_RETRIES", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error for empty path: %v", err)
	}

	if cfg.DatabasePath != "manutencao_hotel.db" {
		t.Errorf("unexpected DatabasePath: %q", cfg.DatabasePath)
	}
	if cfg.BackupDir != "backups" {
		t.Errorf("unexpected BackupDir: %q", cfg.BackupDir)
	}
	if cfg.Floors != 12 || cfg.AptsPerFloor != 18 {
		t.Errorf("unexpected layout: %d x %d", cfg.Floors, cfg.AptsPerFloor)
	}
	if cfg.BusyRetries != 3 || cfg.BusyBackoff != 50*time.Millisecond {
		t.Errorf("unexpected busy settings: %d %v", cfg.BusyRetries, cfg.BusyBackoff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MANUT_DATABASE_PATH", "/tmp/hotel.db")
	t.Setenv("MANUT_LOG_FORMAT", "json")
	t.Setenv("MANUT_BUSY_RETRIES", "5")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DatabasePath != "/tmp/hotel.db" {
		t.Errorf("expected env database path, got %q", cfg.DatabasePath)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected env log format, got %q", cfg.LogFormat)
	}
	if cfg.BusyRetries != 5 {
		t.Errorf("expected env busy retries, got %d", cfg.BusyRetries)
	}
}

func TestLoadConfig_BadEnvRetries(t *testing.T) {
	t.Setenv("MANUT_BUSY_RETRIES", "many")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for non-numeric MANUT_BUSY_RETRIES")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Setenv("MANUT_DATABASE_PATH", "")
	path := filepath.Join(t.TempDir(), "manut.yaml")
	content := []byte("database_path: \"test.db\"\nfloors: 5\napts_per_floor: 10\nbusy_backoff: \"200ms\"\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error for file: %v", err)
	}
	if cfg.DatabasePath != "test.db" {
		t.Errorf("unexpected DatabasePath: %q", cfg.DatabasePath)
	}
	if cfg.Floors != 5 || cfg.AptsPerFloor != 10 {
		t.Errorf("unexpected layout: %d x %d", cfg.Floors, cfg.AptsPerFloor)
	}
	if cfg.BusyBackoff != 200*time.Millisecond {
		t.Errorf("unexpected BusyBackoff: %v", cfg.BusyBackoff)
	}
	// untouched keys keep their defaults
	if cfg.BackupDir != "backups" {
		t.Errorf("unexpected BackupDir: %q", cfg.BackupDir)
	}
}

func TestLoadConfig_BadPath(t *testing.T) {
	if _, err := LoadConfig("/path/that/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for nonexistent path, got nil")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("::: not yaml :::"), 0o600); err != nil {
		t.Fatalf("failed to write bad yaml: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected YAML decode error, got nil")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manut.yaml")
	cfg := Defaults()
	cfg.DatabasePath = "saved.db"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.DatabasePath != "saved.db" {
		t.Errorf("expected saved.db, got %q", loaded.DatabasePath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty database path", mutate: func(c *Config) { c.DatabasePath = "" }, wantErr: true},
		{name: "empty backup dir", mutate: func(c *Config) { c.BackupDir = "" }, wantErr: true},
		{name: "zero floors", mutate: func(c *Config) { c.Floors = 0 }, wantErr: true},
		{name: "three digit apartments", mutate: func(c *Config) { c.AptsPerFloor = 100 }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.BusyRetries = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
