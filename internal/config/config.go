package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
)

const (
	configFileBase = "kit_planner_config"

	// DefaultAPIAddr is used when api.addr is not set
	DefaultAPIAddr = ":8080"
)

// APIConfig configures the HTTP API server
type APIConfig struct {
	Addr           string   `yaml:"addr,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty" validate:"dive,required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL    string `yaml:"databaseURL" validate:"required"`
	OrganizationID string `yaml:"organizationID" validate:"required,uuid"`

	// TransferDays is a weekly RRULE whose BYDAY list names the weekdays kits may be moved on
	TransferDays string `yaml:"transferDays,omitempty"`

	// WeekStartDay is the first day of a planning week, 0=Sunday..6=Saturday (default Monday)
	WeekStartDay *int `yaml:"weekStartDay,omitempty" validate:"omitempty,min=0,max=6"`

	ChecklistSheetID string    `yaml:"checklistSheetID,omitempty"`
	LogDir           string    `yaml:"logDir,omitempty"`
	API              APIConfig `yaml:"api,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from kit_planner_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "kit_planner_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	fileName := configFileBase + ".yaml"
	if env != "" {
		fileName = configFileBase + "." + env + ".yaml"
	}

	configPath, err := findFile(fileName)
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

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks the transfer day rule
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.TransferDays != "" {
		if _, err := parseTransferDays(cfg.TransferDays); err != nil {
			return fmt.Errorf("invalid transferDays: %w", err)
		}
	}

	return nil
}

// AllowedTransferDays returns the weekdays on which kits may be moved.
// An unset transferDays yields the planner default (Monday and Thursday).
func (c *Config) AllowedTransferDays() []time.Weekday {
	if c.TransferDays == "" {
		return kitplan.DefaultTransferDays()
	}
	days, err := parseTransferDays(c.TransferDays)
	if err != nil {
		return kitplan.DefaultTransferDays()
	}
	return days
}

// WeekStart returns the configured first day of a planning week
func (c *Config) WeekStart() time.Weekday {
	if c.WeekStartDay == nil {
		return time.Monday
	}
	return time.Weekday(*c.WeekStartDay)
}

// APIAddr returns the address the HTTP API listens on
func (c *Config) APIAddr() string {
	if c.API.Addr == "" {
		return DefaultAPIAddr
	}
	return c.API.Addr
}

// parseTransferDays reads the BYDAY weekdays out of a weekly RRULE
func parseTransferDays(rule string) ([]time.Weekday, error) {
	if _, err := rrule.StrToRRule(rule); err != nil {
		return nil, err
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, err
	}
	if opt.Freq != rrule.WEEKLY {
		return nil, fmt.Errorf("rule must use FREQ=WEEKLY")
	}
	if len(opt.Byweekday) == 0 {
		return nil, fmt.Errorf("rule must list at least one BYDAY weekday")
	}

	days := make([]time.Weekday, 0, len(opt.Byweekday))
	for _, wd := range opt.Byweekday {
		// rrule numbers weekdays from Monday=0
		days = append(days, time.Weekday((wd.Day()+1)%7))
	}
	return days, nil
}

// findFile searches for a file in the current directory and then the home directory
func findFile(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
