package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/radishspirit/moodjournal/internal/calendar"
	"github.com/radishspirit/moodjournal/internal/model"
)

var entryColumns = strings.Join(model.EntryFields, ", ")

// querier is the subset of *sql.DB and *sql.Tx the store needs.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlStore holds the SQL shared by every backend. Backend types embed it and
// differ only in dialect and in how the connection is opened.
type sqlStore struct {
	path    string
	conn    *sql.DB
	dialect Dialect
	opts    Options
	log     zerolog.Logger
}

func newSQLStore(conn *sql.DB, d Dialect, path string, opts Options) sqlStore {
	opts = opts.withDefaults()
	return sqlStore{
		path:    path,
		conn:    conn,
		dialect: d,
		opts:    opts,
		log:     opts.Logger.With().Str("component", "store").Str("driver", d.DriverName()).Logger(),
	}
}

// Close closes the database connection.
func (db *sqlStore) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the location of the database.
func (db *sqlStore) Path() string {
	return db.path
}

// Driver returns the database/sql driver name in use.
func (db *sqlStore) Driver() string {
	return db.dialect.DriverName()
}

// Conn returns the underlying *sql.DB connection.
func (db *sqlStore) Conn() *sql.DB {
	return db.conn
}

// Ping verifies the connection is alive.
func (db *sqlStore) Ping(ctx context.Context) error {
	return model.NewStorageError("ping", db.conn.PingContext(ctx))
}

// Migrate creates any missing tables. It is idempotent.
func (db *sqlStore) Migrate(ctx context.Context) error {
	return model.NewStorageError("migrate", db.createSchema(ctx))
}

// createSchema builds all tables for a new database inside one transaction.
func (db *sqlStore) createSchema(ctx context.Context) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, db.dialect.CreateEntriesTableSQL()); err != nil {
		return fmt.Errorf("creating entries table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, db.dialect.CreateStreaksTableSQL()); err != nil {
		return fmt.Errorf("creating streaks table: %w", err)
	}

	return tx.Commit()
}

func (db *sqlStore) validate(e *model.Entry) error {
	return model.ValidateEntry(e, db.opts.MoodScale, calendar.IsValidISODate)
}

// UpsertEntry inserts e, or replaces the entry already stored for e.DateISO.
// It returns the row id, which is kept when an existing row is replaced.
// A zero CreatedAt is stamped with the store clock.
func (db *sqlStore) UpsertEntry(ctx context.Context, e *model.Entry) (int64, error) {
	if err := db.validate(e); err != nil {
		return 0, err
	}
	id, createdAt, err := db.upsertEntry(ctx, db.conn, e)
	if err != nil {
		return 0, model.NewStorageError("upsert entry", err)
	}
	e.ID, e.CreatedAt = id, createdAt
	return id, nil
}

// upsertEntry writes e without modifying it and returns the row id and the
// created_at value that was stored.
func (db *sqlStore) upsertEntry(ctx context.Context, q querier, e *model.Entry) (int64, int64, error) {
	createdAt := e.CreatedAt
	if createdAt == 0 {
		createdAt = db.opts.Now().UnixMilli()
	}
	var id int64
	err := q.QueryRowContext(ctx, db.dialect.UpsertEntrySQL(),
		e.DateISO, e.Mood, e.Text, createdAt,
	).Scan(&id)
	return id, createdAt, err
}

// GetEntryByDate returns the entry for dateISO, or nil if that day has none.
func (db *sqlStore) GetEntryByDate(ctx context.Context, dateISO string) (*model.Entry, error) {
	if !calendar.IsValidISODate(dateISO) {
		return nil, model.NewValidationError("dateISO", fmt.Sprintf("%q is not a YYYY-MM-DD date", dateISO))
	}

	e := &model.Entry{}
	err := db.conn.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE date_iso = "+db.dialect.Placeholder(1),
		dateISO,
	).Scan(&e.ID, &e.DateISO, &e.Mood, &e.Text, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewStorageError("get entry", err)
	}
	return e, nil
}

// ListEntriesDesc returns every entry, newest date first.
func (db *sqlStore) ListEntriesDesc(ctx context.Context) ([]*model.Entry, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries ORDER BY date_iso DESC")
	if err != nil {
		return nil, model.NewStorageError("list entries", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, model.NewStorageError("list entries", err)
	}
	return entries, nil
}

// CountEntries returns the number of stored days.
func (db *sqlStore) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count)
	if err != nil {
		return 0, model.NewStorageError("count entries", err)
	}
	return count, nil
}

// AverageMood returns the mean mood across all entries, or 0 when there are none.
func (db *sqlStore) AverageMood(ctx context.Context) (float64, error) {
	var avg float64
	err := db.conn.QueryRowContext(ctx, db.dialect.AverageMoodSQL()).Scan(&avg)
	if err != nil {
		return 0, model.NewStorageError("average mood", err)
	}
	return avg, nil
}

// DeleteAllEntries removes every entry. The streak row is left for the caller
// to refresh.
func (db *sqlStore) DeleteAllEntries(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM entries")
	return model.NewStorageError("delete entries", err)
}

// GetStreak returns the stored streak record, creating the zeroed row on
// first access.
func (db *sqlStore) GetStreak(ctx context.Context) (*model.StreakRecord, error) {
	rec, err := db.readStreak(ctx, db.conn)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewStorageError("get streak", err)
	}

	now := db.opts.Now().UnixMilli()
	if _, err := db.conn.ExecContext(ctx, db.dialect.InsertDefaultStreakSQL(), now); err != nil {
		return nil, model.NewStorageError("init streak", err)
	}
	return &model.StreakRecord{UpdatedAt: now}, nil
}

func (db *sqlStore) readStreak(ctx context.Context, q querier) (*model.StreakRecord, error) {
	rec := &model.StreakRecord{}
	err := q.QueryRowContext(ctx,
		"SELECT current_streak, longest_streak, updated_at FROM streaks WHERE id = "+db.dialect.Placeholder(1),
		model.StreakRecordID,
	).Scan(&rec.Current, &rec.Longest, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// SaveEntry upserts e, recomputes the streak over all stored dates and
// overwrites the streak row, all in one transaction. If recompute fails
// nothing is written.
func (db *sqlStore) SaveEntry(ctx context.Context, e *model.Entry, recompute RecomputeFunc) (*model.StreakRecord, error) {
	if err := db.validate(e); err != nil {
		return nil, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, model.NewStorageError("begin save", err)
	}
	defer tx.Rollback()

	id, createdAt, err := db.upsertEntry(ctx, tx, e)
	if err != nil {
		return nil, model.NewStorageError("upsert entry", err)
	}

	rec, err := db.refreshStreak(ctx, tx, recompute)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, model.NewStorageError("commit save", err)
	}
	e.ID, e.CreatedAt = id, createdAt
	return rec, nil
}

// RefreshStreak recomputes and overwrites the streak row from the stored entries.
func (db *sqlStore) RefreshStreak(ctx context.Context, recompute RecomputeFunc) (*model.StreakRecord, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, model.NewStorageError("begin refresh", err)
	}
	defer tx.Rollback()

	rec, err := db.refreshStreak(ctx, tx, recompute)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, model.NewStorageError("commit refresh", err)
	}
	return rec, nil
}

func (db *sqlStore) refreshStreak(ctx context.Context, q querier, recompute RecomputeFunc) (*model.StreakRecord, error) {
	dates, err := selectDatesDesc(ctx, q)
	if err != nil {
		return nil, model.NewStorageError("list dates", err)
	}

	current, longest, err := recompute(dates)
	if err != nil {
		return nil, fmt.Errorf("recomputing streak: %w", err)
	}

	rec := &model.StreakRecord{
		Current:   current,
		Longest:   longest,
		UpdatedAt: db.opts.Now().UnixMilli(),
	}
	if _, err := q.ExecContext(ctx, db.dialect.UpsertStreakSQL(), rec.Current, rec.Longest, rec.UpdatedAt); err != nil {
		return nil, model.NewStorageError("write streak", err)
	}

	db.log.Debug().
		Int("entries", len(dates)).
		Int("current", rec.Current).
		Int("longest", rec.Longest).
		Msg("streak recomputed")
	return rec, nil
}

func selectDatesDesc(ctx context.Context, q querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT date_iso FROM entries ORDER BY date_iso DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// scanEntries converts sql.Rows into a slice of Entry pointers.
func scanEntries(rows *sql.Rows) ([]*model.Entry, error) {
	entries := []*model.Entry{}
	for rows.Next() {
		e := &model.Entry{}
		if err := rows.Scan(&e.ID, &e.DateISO, &e.Mood, &e.Text, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
