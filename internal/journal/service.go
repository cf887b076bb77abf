// Package journal ties the entry store and the streak calculator together:
// every write is followed by a full streak recompute in the same unit of work.
package journal

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/radishspirit/moodjournal/internal/calendar"
	"github.com/radishspirit/moodjournal/internal/database"
	"github.com/radishspirit/moodjournal/internal/model"
	"github.com/radishspirit/moodjournal/internal/streak"
)

// TextEnhancer rewrites entry text before it is saved (e.g. a remote
// writing assistant). Enhancement is best-effort.
type TextEnhancer interface {
	Enhance(ctx context.Context, text string) (string, error)
}

// Stats is the aggregate shown on the insights view.
type Stats struct {
	TotalEntries  int64   `json:"totalEntries"`
	AverageMood   float64 `json:"averageMood"`
	AverageLabel  string  `json:"averageLabel"`
	CurrentStreak int     `json:"currentStreak"`
	LongestStreak int     `json:"longestStreak"`
}

// SaveResult is returned by Save and SaveForDate.
type SaveResult struct {
	Entry  *model.Entry        `json:"entry"`
	Streak *model.StreakRecord `json:"streak"`
}

// Service is the journal's write path and read model.
// It is safe for concurrent use; mutating calls are serialised.
type Service struct {
	store    database.Store
	now      func() time.Time
	loc      *time.Location
	enhancer TextEnhancer
	scale    model.MoodScale
	log      zerolog.Logger

	writeMu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithEnhancer routes entry text through e before saving.
func WithEnhancer(e TextEnhancer) Option {
	return func(s *Service) { s.enhancer = e }
}

// WithMoodScale sets the scale used for mood labels. It should match the
// store's scale.
func WithMoodScale(scale model.MoodScale) Option {
	return func(s *Service) { s.scale = scale }
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New creates a Service over store.
func New(store database.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		loc:   time.Local,
		scale: model.DefaultMoodScale,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "journal").Logger()
	return s
}

// Store returns the underlying store.
func (s *Service) Store() database.Store {
	return s.store
}

// MoodScale returns the scale used for mood labels.
func (s *Service) MoodScale() model.MoodScale {
	return s.scale
}

// TodayISO returns today's date key in the service's zone.
func (s *Service) TodayISO() string {
	return calendar.FormatISO(s.now(), s.loc)
}

// recompute adapts the streak calculator to the store's callback.
func recompute(dates []string) (int, int, error) {
	res, err := streak.Calculate(dates)
	if err != nil {
		return 0, 0, err
	}
	return res.Current, res.Longest, nil
}

// Save records today's entry, replacing any earlier entry for today.
func (s *Service) Save(ctx context.Context, mood int, text string) (*SaveResult, error) {
	return s.SaveForDate(ctx, s.TodayISO(), mood, text)
}

// SaveForDate records the entry for dateISO and recomputes the streak.
// Text is trimmed; empty text is rejected.
func (s *Service) SaveForDate(ctx context.Context, dateISO string, mood int, text string) (*SaveResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.NewValidationError("text", "must not be empty")
	}
	text = s.enhance(ctx, text)

	e := &model.Entry{
		DateISO:   dateISO,
		Mood:      mood,
		Text:      text,
		CreatedAt: s.now().UnixMilli(),
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rec, err := s.store.SaveEntry(ctx, e, recompute)
	if err != nil {
		s.log.Error().Err(err).Str("date", dateISO).Msg("save entry failed")
		return nil, err
	}

	s.log.Info().
		Str("date", e.DateISO).
		Int64("id", e.ID).
		Int("mood", e.Mood).
		Int("current_streak", rec.Current).
		Int("longest_streak", rec.Longest).
		Msg("entry saved")
	return &SaveResult{Entry: e, Streak: rec}, nil
}

func (s *Service) enhance(ctx context.Context, text string) string {
	if s.enhancer == nil {
		return text
	}
	out, err := s.enhancer.Enhance(ctx, text)
	if err != nil {
		s.log.Warn().Err(err).Msg("text enhancement failed, keeping original")
		return text
	}
	if out = strings.TrimSpace(out); out == "" {
		return text
	}
	return out
}

// Today returns today's entry, or nil if none has been written yet.
func (s *Service) Today(ctx context.Context) (*model.Entry, error) {
	return s.store.GetEntryByDate(ctx, s.TodayISO())
}

// Entry returns the entry for dateISO, or nil.
func (s *Service) Entry(ctx context.Context, dateISO string) (*model.Entry, error) {
	return s.store.GetEntryByDate(ctx, dateISO)
}

// History returns every entry, newest first.
func (s *Service) History(ctx context.Context) ([]*model.Entry, error) {
	return s.store.ListEntriesDesc(ctx)
}

// Streak returns the stored streak record.
func (s *Service) Streak(ctx context.Context) (*model.StreakRecord, error) {
	return s.store.GetStreak(ctx)
}

// RecomputeStreak rebuilds the streak record from the stored entries.
func (s *Service) RecomputeStreak(ctx context.Context) (*model.StreakRecord, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rec, err := s.store.RefreshStreak(ctx, recompute)
	if err != nil {
		s.log.Error().Err(err).Msg("streak recompute failed")
		return nil, err
	}
	return rec, nil
}

// Stats gathers the insight figures.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	count, err := s.store.CountEntries(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.store.AverageMood(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.GetStreak(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalEntries:  count,
		AverageMood:   avg,
		AverageLabel:  s.scale.Label(int(avg + 0.5)),
		CurrentStreak: rec.Current,
		LongestStreak: rec.Longest,
	}, nil
}

// Reset deletes every entry and zeroes the streak. It cannot be undone.
func (s *Service) Reset(ctx context.Context) (*model.StreakRecord, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.DeleteAllEntries(ctx); err != nil {
		return nil, err
	}
	rec, err := s.store.RefreshStreak(ctx, recompute)
	if err != nil {
		return nil, err
	}
	s.log.Warn().Msg("journal reset")
	return rec, nil
}

// Close closes the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}
