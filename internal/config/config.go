package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/radishspirit/moodjournal/internal/database"
	"github.com/radishspirit/moodjournal/internal/model"
)

// EnvPrefix is the prefix for every configuration variable, e.g. MOODJOURNAL_DB_DRIVER.
const EnvPrefix = "MOODJOURNAL"

// DefaultDatabaseName is the SQLite file created under the user config dir.
const DefaultDatabaseName = "radish_spirit.db"

// Config holds the configuration for the journal
// Environment variables are automatically parsed from MOODJOURNAL_ prefix
type Config struct {
	// Storage
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBPath      string `envconfig:"DB_PATH" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Storage initialisation retry
	InitAttempts  int           `envconfig:"INIT_ATTEMPTS" default:"3"`
	InitBaseDelay time.Duration `envconfig:"INIT_BASE_DELAY" default:"500ms"`

	// Mood scale bounds (inclusive)
	MoodMin int `envconfig:"MOOD_MIN" default:"1"`
	MoodMax int `envconfig:"MOOD_MAX" default:"5"`

	// Timezone decides which calendar day "today" is. "Local" uses the system zone.
	Timezone string `envconfig:"TIMEZONE" default:"Local"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// New creates a new Config by parsing environment variables and filling
// derived defaults.
func New(log zerolog.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	cfg.LogLoaded(log)
	return cfg, nil
}

// Load parses environment variables without deriving defaults or validating,
// so callers can apply overrides first and then call ResolveDefaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// LogLoaded logs the effective configuration. The Postgres DSN is reported
// only as present or absent.
func (c *Config) LogLoaded(log zerolog.Logger) {
	log.Info().
		Str("db_driver", c.DBDriver).
		Str("db_path", c.DBPath).
		Bool("postgres_dsn_present", c.PostgresDSN != "").
		Int("mood_min", c.MoodMin).
		Int("mood_max", c.MoodMax).
		Str("timezone", c.Timezone).
		Msg("Configuration loaded")
}

// NewForTesting returns a config pointing at a SQLite file in dir.
func NewForTesting(dir string) *Config {
	return &Config{
		DBDriver:      database.DriverSQLite,
		DBPath:        filepath.Join(dir, DefaultDatabaseName),
		InitAttempts:  1,
		InitBaseDelay: time.Millisecond,
		MoodMin:       model.DefaultMoodScale.Min,
		MoodMax:       model.DefaultMoodScale.Max,
		Timezone:      "UTC",
		LogLevel:      "debug",
	}
}

// ResolveDefaults derives DBPath when unset and validates the result.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == database.DriverSQLite && c.DBPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		c.DBPath = filepath.Join(dir, "moodjournal", DefaultDatabaseName)
	}
	return c.Validate()
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case database.DriverSQLite:
		if c.DBPath == "" {
			return model.NewValidationError("DB_PATH", "required for sqlite")
		}
		if strings.Contains(c.DBPath, "?") {
			return model.NewValidationError("DB_PATH", "must not contain '?'")
		}
	case database.DriverPostgres:
		if c.PostgresDSN == "" {
			return model.NewValidationError("POSTGRES_DSN", "required for postgres")
		}
	default:
		return model.NewValidationError("DB_DRIVER", fmt.Sprintf("unsupported driver: %s", c.DBDriver))
	}
	if err := c.MoodScale().Validate(); err != nil {
		return err
	}
	if c.InitAttempts < 1 {
		return model.NewValidationError("INIT_ATTEMPTS", "must be at least 1")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// MoodScale returns the configured mood bounds.
func (c *Config) MoodScale() model.MoodScale {
	return model.MoodScale{Min: c.MoodMin, Max: c.MoodMax}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, model.NewValidationError("TIMEZONE", err.Error())
	}
	return loc, nil
}

// DataSource returns the path or connection string for the selected driver.
func (c *Config) DataSource() string {
	if c.DBDriver == database.DriverPostgres {
		return c.PostgresDSN
	}
	return c.DBPath
}

// StoreOptions builds database.Options from the configuration.
func (c *Config) StoreOptions(log zerolog.Logger) database.Options {
	return database.Options{
		MoodScale:     c.MoodScale(),
		Logger:        log,
		InitAttempts:  c.InitAttempts,
		InitBaseDelay: c.InitBaseDelay,
	}
}
