package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Ledger struct {
		LogsDir string `yaml:"logs_dir"`
		// SessionTimezone is the IANA zone used to bucket hits into
		// market sessions. The scanner historically labelled sessions
		// "UTC" while intending US exchange hours; pick explicitly.
		SessionTimezone string `yaml:"session_timezone"`
	} `yaml:"ledger"`
	Archive struct {
		BackupDir      string `yaml:"backup_dir"`
		RetentionDays  int    `yaml:"retention_days"`
		RolloverCron   string `yaml:"rollover_cron"`
		CloudBackupURL string `yaml:"cloud_backup_url"`
	} `yaml:"archive"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LOGS_DIR"); v != "" {
		cfg.Ledger.LogsDir = v
	}
	if v := os.Getenv("SESSION_TZ"); v != "" {
		cfg.Ledger.SessionTimezone = v
	}
	if v := os.Getenv("BACKUP_DIR"); v != "" {
		cfg.Archive.BackupDir = v
	}
	if v := os.Getenv("CLOUD_BACKUP_URL"); v != "" {
		cfg.Archive.CloudBackupURL = v
	}
	if v := os.Getenv("CRON_ROLLOVER"); v != "" {
		cfg.Archive.RolloverCron = v
	}
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Archive.RetentionDays = days
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Ledger.LogsDir == "" {
		cfg.Ledger.LogsDir = "scanner_logs"
	}
	if cfg.Ledger.SessionTimezone == "" {
		cfg.Ledger.SessionTimezone = "UTC"
	}
	if cfg.Archive.BackupDir == "" {
		cfg.Archive.BackupDir = "scanner_backups"
	}
	if cfg.Archive.RetentionDays == 0 {
		cfg.Archive.RetentionDays = 30
	}
	if cfg.Archive.RolloverCron == "" {
		cfg.Archive.RolloverCron = "0 5 0 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "scanner_data.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if c.Ledger.LogsDir == "" {
		return fmt.Errorf("ledger.logs_dir is required")
	}
	if c.Archive.BackupDir == "" {
		return fmt.Errorf("archive.backup_dir is required")
	}
	if c.Archive.RetentionDays <= 0 {
		return fmt.Errorf("archive.retention_days must be positive")
	}
	if _, err := time.LoadLocation(c.Ledger.SessionTimezone); err != nil {
		return fmt.Errorf("ledger.session_timezone: %w", err)
	}
	return nil
}

// SessionLocation returns the parsed session timezone.
func (c *Config) SessionLocation() (*time.Location, error) {
	return time.LoadLocation(c.Ledger.SessionTimezone)
}
