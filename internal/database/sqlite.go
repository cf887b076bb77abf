package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/radishspirit/moodjournal/internal/model"
)

// SQLiteStore keeps the journal in a local SQLite file.
// It implements the Store interface.
type SQLiteStore struct {
	sqlStore
}

// OpenSQLite opens (creating if needed) the journal database at path and
// ensures the schema exists. The parent directory is created when missing.
// Connection pragmas are appended as a query string, so path itself may not
// carry one.
func OpenSQLite(ctx context.Context, path string, opts Options) (*SQLiteStore, error) {
	if strings.Contains(path, "?") {
		return nil, model.NewValidationError("path", fmt.Sprintf("%q: sqlite path must not contain '?'", path))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	d := &SQLiteDialect{}
	conn, err := sql.Open(d.DriverName(), d.DSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Verify the connection works
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db := &SQLiteStore{sqlStore: newSQLStore(conn, d, path, opts)}
	if err := db.createSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.log.Debug().Str("path", path).Msg("sqlite store ready")
	return db, nil
}
