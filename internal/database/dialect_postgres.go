package database

import "fmt"

// PostgresDialect implements the Dialect interface for PostgreSQL databases.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string              { return "pgx" }
func (d *PostgresDialect) DSN(pathOrConnStr string) string { return pathOrConnStr }
func (d *PostgresDialect) Placeholder(index int) string    { return fmt.Sprintf("$%d", index) }

func (d *PostgresDialect) CreateEntriesTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS entries (
		id BIGSERIAL PRIMARY KEY,
		date_iso TEXT NOT NULL UNIQUE,
		mood INTEGER NOT NULL,
		text TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`
}

func (d *PostgresDialect) CreateStreaksTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS streaks (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		current_streak INTEGER NOT NULL DEFAULT 0,
		longest_streak INTEGER NOT NULL DEFAULT 0,
		updated_at BIGINT NOT NULL
	)`
}

func (d *PostgresDialect) UpsertEntrySQL() string {
	return `INSERT INTO entries (date_iso, mood, text, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date_iso) DO UPDATE SET
			mood = EXCLUDED.mood,
			text = EXCLUDED.text,
			created_at = EXCLUDED.created_at
		RETURNING id`
}

func (d *PostgresDialect) UpsertStreakSQL() string {
	return `INSERT INTO streaks (id, current_streak, longest_streak, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			updated_at = EXCLUDED.updated_at`
}

func (d *PostgresDialect) InsertDefaultStreakSQL() string {
	return `INSERT INTO streaks (id, current_streak, longest_streak, updated_at)
		VALUES (1, 0, 0, $1) ON CONFLICT (id) DO NOTHING`
}

func (d *PostgresDialect) AverageMoodSQL() string {
	return "SELECT COALESCE(AVG(mood), 0)::float8 FROM entries"
}
