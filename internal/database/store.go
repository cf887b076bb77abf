package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/radishspirit/moodjournal/internal/model"
)

// RecomputeFunc derives the streak lengths from every stored entry date,
// given newest first. It runs inside the same transaction as the write that
// triggered it.
type RecomputeFunc func(datesDesc []string) (current, longest int, err error)

// Store defines the interface for all journal persistence.
// Callers depend on the interface, not on a concrete database type.
//
// Absence is not an error: GetEntryByDate returns nil, nil for a missing day.
// Driver failures come back as *model.StorageError; rejected input as
// model.ValidationError.
type Store interface {
	// Entries
	UpsertEntry(ctx context.Context, e *model.Entry) (int64, error)
	GetEntryByDate(ctx context.Context, dateISO string) (*model.Entry, error)
	ListEntriesDesc(ctx context.Context) ([]*model.Entry, error)
	CountEntries(ctx context.Context) (int64, error)
	AverageMood(ctx context.Context) (float64, error)
	DeleteAllEntries(ctx context.Context) error

	// Streak record. SaveEntry and RefreshStreak rewrite it in full.
	GetStreak(ctx context.Context) (*model.StreakRecord, error)
	SaveEntry(ctx context.Context, e *model.Entry, recompute RecomputeFunc) (*model.StreakRecord, error)
	RefreshStreak(ctx context.Context, recompute RecomputeFunc) (*model.StreakRecord, error)

	// Schema and lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
	Path() string
	Driver() string
}

// Options tunes a Store. The zero value is usable.
type Options struct {
	// MoodScale bounds accepted mood ratings. Zero means model.DefaultMoodScale.
	MoodScale model.MoodScale

	// Now stamps created/updated times. Nil means time.Now.
	Now func() time.Time

	// Logger receives initialisation and retry messages.
	Logger zerolog.Logger

	// InitAttempts bounds open attempts (first try included). Zero means 3.
	InitAttempts int

	// InitBaseDelay is the wait after the first failed open; it doubles
	// after each further failure. Zero means 500ms.
	InitBaseDelay time.Duration
}

const (
	defaultInitAttempts  = 3
	defaultInitBaseDelay = 500 * time.Millisecond
)

func (o Options) withDefaults() Options {
	if o.MoodScale == (model.MoodScale{}) {
		o.MoodScale = model.DefaultMoodScale
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.InitAttempts <= 0 {
		o.InitAttempts = defaultInitAttempts
	}
	if o.InitBaseDelay <= 0 {
		o.InitBaseDelay = defaultInitBaseDelay
	}
	return o
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
