package database

// sqlitePragmas are applied to every connection opened by modernc.org/sqlite.
// WAL lets readers proceed during the save transaction; immediate
// transactions take the write lock up front so concurrent savers queue on
// busy_timeout instead of failing at commit.
const sqlitePragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"

// SQLiteDialect implements the Dialect interface for SQLite databases.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string          { return "sqlite" }
func (d *SQLiteDialect) Placeholder(index int) string { return "?" }

func (d *SQLiteDialect) DSN(pathOrConnStr string) string {
	return pathOrConnStr + "?" + sqlitePragmas
}

func (d *SQLiteDialect) CreateEntriesTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date_iso TEXT NOT NULL UNIQUE,
		mood INTEGER NOT NULL,
		text TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`
}

func (d *SQLiteDialect) CreateStreaksTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS streaks (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		current_streak INTEGER NOT NULL DEFAULT 0,
		longest_streak INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL
	)`
}

func (d *SQLiteDialect) UpsertEntrySQL() string {
	return `INSERT INTO entries (date_iso, mood, text, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date_iso) DO UPDATE SET
			mood = excluded.mood,
			text = excluded.text,
			created_at = excluded.created_at
		RETURNING id`
}

func (d *SQLiteDialect) UpsertStreakSQL() string {
	return `INSERT INTO streaks (id, current_streak, longest_streak, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			updated_at = excluded.updated_at`
}

func (d *SQLiteDialect) InsertDefaultStreakSQL() string {
	return `INSERT INTO streaks (id, current_streak, longest_streak, updated_at)
		VALUES (1, 0, 0, ?) ON CONFLICT (id) DO NOTHING`
}

func (d *SQLiteDialect) AverageMoodSQL() string {
	return "SELECT COALESCE(AVG(mood), 0.0) FROM entries"
}
