package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radishspirit/moodjournal/internal/journal"
	"github.com/radishspirit/moodjournal/internal/model"
)

func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MOODJOURNAL_TIMEZONE", "UTC")
	t.Setenv("MOODJOURNAL_DB_DRIVER", "sqlite")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSaveAndShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := runCLI(t, db, "save", "--mood", "4", "--date", "2024-01-02", "long", "walk")
	require.NoError(t, err)
	assert.Contains(t, out, "Jan 2, 2024")
	assert.Contains(t, out, "long walk")
	assert.Contains(t, out, "current streak: 1")

	out, err = runCLI(t, db, "show", "2024-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "mood 4 (Sunny)")

	out, err = runCLI(t, db, "show", "2024-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, "no entry for 2024-01-03")
}

func TestStreakAndStatsJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-05"} {
		_, err := runCLI(t, db, "save", "-m", "3", "-d", d, "note")
		require.NoError(t, err)
	}

	out, err := runCLI(t, db, "--json", "streak")
	require.NoError(t, err)
	var rec model.StreakRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, 1, rec.Current)
	assert.Equal(t, 2, rec.Longest)

	out, err = runCLI(t, db, "--json", "stats")
	require.NoError(t, err)
	var stats journal.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.EqualValues(t, 3, stats.TotalEntries)
	assert.InDelta(t, 3.0, stats.AverageMood, 1e-9)

	out, err = runCLI(t, db, "--json", "history", "-n", "2")
	require.NoError(t, err)
	var entries []model.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-01-05", entries[0].DateISO)
	assert.Equal(t, "2024-01-02", entries[1].DateISO)

	out, err = runCLI(t, db, "recompute")
	require.NoError(t, err)
	assert.Contains(t, out, "longest streak: 2")
}

func TestSaveRejectsBadInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := runCLI(t, db, "save", "-m", "9", "-d", "2024-01-01", "x")
	assert.True(t, model.IsValidationError(err))

	_, err = runCLI(t, db, "save", "-m", "3", "-d", "2024-13-01", "x")
	assert.True(t, model.IsValidationError(err))

	_, err = runCLI(t, db, "save", "-d", "2024-01-01", "x")
	assert.Error(t, err)
}

func TestResetRequiresConfirmation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := runCLI(t, db, "save", "-m", "2", "-d", "2024-01-01", "x")
	require.NoError(t, err)

	_, err = runCLI(t, db, "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := runCLI(t, db, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "journal reset")

	out, err = runCLI(t, db, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "current streak: 0")
}

func TestUnknownDriver(t *testing.T) {
	_, err := runCLI(t, filepath.Join(t.TempDir(), "cli.db"), "--driver", "oracle", "streak")
	assert.True(t, model.IsValidationError(err))
}

func TestFlagsOverrideInvalidEnvironment(t *testing.T) {
	t.Setenv("MOODJOURNAL_TIMEZONE", "UTC")
	t.Setenv("MOODJOURNAL_DB_DRIVER", "postgres")
	t.Setenv("MOODJOURNAL_POSTGRES_DSN", "")
	db := filepath.Join(t.TempDir(), "j.db")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--driver", "sqlite", "--db", db, "streak"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "current streak: 0")
	assert.FileExists(t, db)
}
