package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/radishspirit/moodjournal/internal/model"
)

// PostgresStore keeps the journal in a PostgreSQL database.
// It implements the Store interface.
type PostgresStore struct {
	sqlStore
}

// OpenPostgres connects to an existing PostgreSQL database and ensures the
// journal tables exist. The database itself must already exist.
func OpenPostgres(ctx context.Context, connStr string, opts Options) (*PostgresStore, error) {
	cfg, err := pgx.ParseConfig(connStr)
	if err != nil {
		return nil, model.NewValidationError("dsn", fmt.Sprintf("parsing connection string: %v", err))
	}

	d := &PostgresDialect{}
	conn, err := sql.Open(d.DriverName(), d.DSN(connStr))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db := &PostgresStore{sqlStore: newSQLStore(conn, d, redactedPath(cfg), opts)}
	if err := db.createSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.log.Debug().Str("path", db.path).Msg("postgres store ready")
	return db, nil
}

// redactedPath renders the connection target without credentials, so Path()
// is safe to log and display.
func redactedPath(cfg *pgx.ConnConfig) string {
	return fmt.Sprintf("postgres://%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database)
}
