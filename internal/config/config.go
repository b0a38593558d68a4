package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/minibank-dev/minibank/internal/auth"
)

// Config represents the top-level bank.yaml configuration.
type Config struct {
	Bank BankConfig `yaml:"bank"`
	Auth AuthConfig `yaml:"auth"`
	Git  GitConfig  `yaml:"git"`
}

// BankConfig identifies the bank.
type BankConfig struct {
	Name string `yaml:"name"`
}

// AuthConfig controls credential hashing.
type AuthConfig struct {
	PBKDF2Rounds int `yaml:"pbkdf2_rounds"`
}

// GitConfig controls git integration for the bank directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a bank.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Auth.PBKDF2Rounds == 0 {
		cfg.Auth.PBKDF2Rounds = auth.DefaultRounds
	}
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

// Default returns a Config with sensible defaults for a new bank.
func Default(bankName string) *Config {
	return &Config{
		Bank: BankConfig{
			Name: bankName,
		},
		Auth: AuthConfig{
			PBKDF2Rounds: auth.DefaultRounds,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Minibank",
			AuthorEmail: "ledger@minibank.dev",
		},
	}
}
