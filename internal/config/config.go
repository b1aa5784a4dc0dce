package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// SlotTemplate defines a recurring weekly availability slot offered to players
type SlotTemplate struct {
	RRule     string `yaml:"rrule" validate:"required"`
	TimeLabel string `yaml:"timeLabel" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	WebsiteURL     string         `yaml:"websiteURL" validate:"required,url"`
	MinimumPlayers int            `yaml:"minimumPlayers,omitempty" validate:"omitempty,min=1"`
	Timezone       string         `yaml:"timezone,omitempty"`
	SuperAdminUID  string         `yaml:"superAdminUID" validate:"required"`
	SlotTemplates  []SlotTemplate `yaml:"slotTemplates,omitempty" validate:"dive"`
	ListenAddr     string         `yaml:"listenAddr,omitempty"`
	SweepInterval  time.Duration  `yaml:"sweepInterval,omitempty"`

	// Secrets, taken from the environment rather than the config file
	DatabaseURL string `yaml:"-"`
	JWTSecret   string `yaml:"-"`
	WebhookURL  string `yaml:"-"` // overrides the persisted setting when set
}

// DefaultMinimumPlayers is the roster-readiness threshold when the config
// does not set one
const DefaultMinimumPlayers = 7

const configFileName = "teamsync_config.yaml"

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration. It looks for the config file
// in the current directory first, then in the user's home directory, and
// fills secrets from the environment.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.WebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.MinimumPlayers == 0 {
		cfg.MinimumPlayers = DefaultMinimumPlayers
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = 15 * time.Minute
	}
}

// Validate validates the configuration struct, rrule syntax, and timezone
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, tmpl := range cfg.SlotTemplates {
		if _, err := rrule.StrToRRule(tmpl.RRule); err != nil {
			return fmt.Errorf("invalid rrule in slotTemplates[%d]: %w", i, err)
		}
	}

	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}

	return nil
}

// Location resolves the configured timezone, defaulting to the local zone
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// findConfigFile searches for the config file in the current directory and
// the user's home directory
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
