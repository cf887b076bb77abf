package journal

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radishspirit/moodjournal/internal/config"
	"github.com/radishspirit/moodjournal/internal/database"
	"github.com/radishspirit/moodjournal/internal/model"
)

func TestOpenFromConfig(t *testing.T) {
	cfg := config.NewForTesting(t.TempDir())
	ctx := context.Background()

	svc, err := Open(ctx, cfg, zerolog.Nop(), WithClock(func() time.Time { return clockNow }))
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, database.DriverSQLite, svc.Store().Driver())
	assert.Equal(t, cfg.DBPath, svc.Store().Path())
	assert.Equal(t, "2024-01-07", svc.TodayISO())
	assert.Equal(t, cfg.MoodScale(), svc.MoodScale())

	_, err = svc.Save(ctx, 4, "opened from config")
	require.NoError(t, err)
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	cfg := config.NewForTesting(t.TempDir())
	cfg.MoodMin, cfg.MoodMax = 5, 1

	_, err := Open(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}
