package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file written into a ledgerbook directory.
const FileName = "ledgerbook.yaml"

// Config represents the top-level ledgerbook.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
	Admin    AdminConfig    `yaml:"admin"`
}

// BusinessConfig identifies the bookkeeping entity.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// DatabaseConfig locates the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig controls structured logging output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// SecurityConfig holds credential policy.
type SecurityConfig struct {
	PasswordMinLength int `yaml:"password_min_length"`
}

// AdminConfig is the administrator bootstrapped on init when no users
// exist yet. The password is only consulted at bootstrap time.
type AdminConfig struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Document  string `yaml:"document"`
}

// Load reads a ledgerbook.yaml file from disk and applies environment
// overrides. A .env file in the working directory, if present, is
// loaded first (missing .env is not an error).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	_ = godotenv.Load()
	cfg.applyEnv()

	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Database: DatabaseConfig{Path: "data/ledger.db"},
		Logging:  LoggingConfig{Level: "info", Pretty: true},
		Security: SecurityConfig{PasswordMinLength: 6},
		Admin: AdminConfig{
			Username:  "admin",
			Password:  "changeme",
			FirstName: "Default",
			LastName:  "Administrator",
			Document:  "000000",
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LEDGERBOOK_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("LEDGERBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LEDGERBOOK_ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
}
