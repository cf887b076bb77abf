package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radishspirit/moodjournal/internal/model"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("MOODJOURNAL_DB_PATH", "/tmp/journal-test.db")

	cfg, err := New(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/journal-test.db", cfg.DataSource())
	assert.Equal(t, 3, cfg.InitAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitBaseDelay)
	assert.Equal(t, model.DefaultMoodScale, cfg.MoodScale())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("MOODJOURNAL_DB_DRIVER", "postgres")
	t.Setenv("MOODJOURNAL_POSTGRES_DSN", "postgres://journal@localhost/journal")
	t.Setenv("MOODJOURNAL_MOOD_MAX", "10")
	t.Setenv("MOODJOURNAL_TIMEZONE", "UTC")
	t.Setenv("MOODJOURNAL_INIT_BASE_DELAY", "250ms")

	cfg, err := New(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "postgres://journal@localhost/journal", cfg.DataSource())
	assert.Equal(t, model.MoodScale{Min: 1, Max: 10}, cfg.MoodScale())
	assert.Equal(t, 250*time.Millisecond, cfg.StoreOptions(zerolog.Nop()).InitBaseDelay)
}

func TestSQLitePathDerived(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", MoodMin: 1, MoodMax: 5, InitAttempts: 3}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Contains(t, cfg.DBPath, DefaultDatabaseName)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "DB_DRIVER"},
		{"postgres without dsn", func(c *Config) { c.DBDriver = "postgres" }, "POSTGRES_DSN"},
		{"inverted scale", func(c *Config) { c.MoodMin, c.MoodMax = 5, 1 }, "moodScale"},
		{"no attempts", func(c *Config) { c.InitAttempts = 0 }, "INIT_ATTEMPTS"},
		{"query in sqlite path", func(c *Config) { c.DBPath = "/tmp/j.db?mode=ro" }, "DB_PATH"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus_Mons" }, "TIMEZONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewForTesting(t.TempDir())
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var ve model.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	assert.NoError(t, NewForTesting(t.TempDir()).Validate())
}

func TestLoadDoesNotValidate(t *testing.T) {
	t.Setenv("MOODJOURNAL_DB_DRIVER", "postgres")
	t.Setenv("MOODJOURNAL_POSTGRES_DSN", "")

	_, err := New(zerolog.Nop())
	require.Error(t, err)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)

	cfg.DBDriver = "sqlite"
	cfg.DBPath = "/tmp/override.db"
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "/tmp/override.db", cfg.DataSource())
}
