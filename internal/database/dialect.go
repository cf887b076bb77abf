package database

// Dialect abstracts all database-specific SQL generation.
// Each database backend (SQLite, PostgreSQL) implements this interface.
type Dialect interface {
	// DriverName returns the database/sql driver name (e.g. "sqlite", "pgx").
	DriverName() string

	// DSN returns the data source name for opening a connection.
	// For SQLite this is the file path plus pragmas; for PostgreSQL the connection string.
	DSN(pathOrConnStr string) string

	// Placeholder returns the parameter placeholder for the given 1-based index.
	// SQLite: "?" (ignoring index), PostgreSQL: "$1", "$2", etc.
	Placeholder(index int) string

	// CreateEntriesTableSQL returns the DDL for the entries table.
	// date_iso carries the one-entry-per-day UNIQUE constraint.
	CreateEntriesTableSQL() string

	// CreateStreaksTableSQL returns the DDL for the single-row streaks table.
	CreateStreaksTableSQL() string

	// UpsertEntrySQL inserts an entry or replaces the row with the same date_iso,
	// returning the row id. Parameters: date_iso, mood, text, created_at.
	UpsertEntrySQL() string

	// UpsertStreakSQL overwrites the streak row.
	// Parameters: current_streak, longest_streak, updated_at.
	UpsertStreakSQL() string

	// InsertDefaultStreakSQL creates the zeroed streak row if it is absent.
	// Parameter: updated_at.
	InsertDefaultStreakSQL() string

	// AverageMoodSQL returns a query yielding AVG(mood) as a float, 0 when empty.
	AverageMoodSQL() string
}
