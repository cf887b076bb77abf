package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/radishspirit/moodjournal/internal/calendar"
	"github.com/radishspirit/moodjournal/internal/config"
	"github.com/radishspirit/moodjournal/internal/journal"
	"github.com/radishspirit/moodjournal/internal/logger"
	"github.com/radishspirit/moodjournal/internal/model"
)

// App is the main application struct that Wails binds to the frontend.
// All exported methods become callable from JavaScript.
type App struct {
	ctx     context.Context
	log     zerolog.Logger
	cfg     *config.Config
	journal *journal.Service
	openErr error
}

// NewApp creates a new App instance.
func NewApp() *App {
	return &App{log: logger.New("moodjournal")}
}

// startup is called when the app starts. The context is saved
// so we can call runtime methods (dialogs, events, etc.)
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.New(a.log)
	if err != nil {
		a.openErr = err
		a.log.Error().Err(err).Msg("loading configuration")
		return
	}
	a.cfg = cfg
	a.log = a.log.Level(logger.ParseLevel(cfg.LogLevel))

	svc, err := journal.Open(ctx, cfg, a.log)
	if err != nil {
		a.openErr = err
		a.log.Error().Err(err).Msg("opening journal")
		return
	}
	a.journal = svc
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	if a.journal != nil {
		a.journal.Close()
	}
}

func (a *App) service() (*journal.Service, error) {
	if a.journal == nil {
		if a.openErr != nil {
			return nil, fmt.Errorf("no database open: %w", a.openErr)
		}
		return nil, fmt.Errorf("no database open")
	}
	return a.journal, nil
}

// -- Journal --

// EntryView is an entry with its display date, as the frontend renders it.
type EntryView struct {
	*model.Entry
	DisplayDate string `json:"displayDate"`
	MoodLabel   string `json:"moodLabel"`
}

func newEntryView(e *model.Entry, scale model.MoodScale) *EntryView {
	if e == nil {
		return nil
	}
	v := &EntryView{Entry: e, MoodLabel: scale.Label(e.Mood)}
	if d, err := calendar.Parse(e.DateISO); err == nil {
		v.DisplayDate = d.Display()
	}
	return v
}

// SaveEntry records today's entry and returns it with the refreshed streak.
func (a *App) SaveEntry(mood int, text string) (*journal.SaveResult, error) {
	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	res, err := svc.Save(a.ctx, mood, text)
	if err != nil {
		return nil, err
	}
	runtime.EventsEmit(a.ctx, "journal:saved", newEntryView(res.Entry, a.moodScale()))
	runtime.EventsEmit(a.ctx, "streak:updated", res.Streak)
	return res, nil
}

// GetTodayEntry returns today's entry, or nil if it has not been written.
func (a *App) GetTodayEntry() (*EntryView, error) {
	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	e, err := svc.Today(a.ctx)
	if err != nil {
		return nil, err
	}
	return newEntryView(e, a.moodScale()), nil
}

// GetEntry returns the entry for a YYYY-MM-DD date, or nil.
func (a *App) GetEntry(dateISO string) (*EntryView, error) {
	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	e, err := svc.Entry(a.ctx, dateISO)
	if err != nil {
		return nil, err
	}
	return newEntryView(e, a.moodScale()), nil
}

// GetEntries returns every entry, newest first.
func (a *App) GetEntries() ([]*EntryView, error) {
	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	entries, err := svc.History(a.ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newEntryView(e, a.moodScale()))
	}
	return views, nil
}

// GetStreak returns the stored current and longest streak.
func (a *App) GetStreak() (*model.StreakRecord, error) {
	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	return svc.Streak(a.ctx)
}

// GetStats returns the insight figures.
func (a *App) GetStats() (*journal.Stats, error) {
	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	return svc.Stats(a.ctx)
}

// RecomputeStreak rebuilds the streak from the stored entries.
func (a *App) RecomputeStreak() (*model.StreakRecord, error) {
	svc, err := a.service()
	if err != nil {
		return nil, err
	}
	rec, err := svc.RecomputeStreak(a.ctx)
	if err != nil {
		return nil, err
	}
	runtime.EventsEmit(a.ctx, "streak:updated", rec)
	return rec, nil
}

// ResetJournal asks for confirmation and then deletes every entry.
// It returns false when the user cancels.
func (a *App) ResetJournal() (bool, error) {
	svc, err := a.service()
	if err != nil {
		return false, err
	}

	answer, err := runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
		Type:          runtime.QuestionDialog,
		Title:         "Reset Journal",
		Message:       "Delete every entry and reset your streak? This cannot be undone.",
		Buttons:       []string{"Reset", "Cancel"},
		DefaultButton: "Cancel",
		CancelButton:  "Cancel",
	})
	if err != nil {
		return false, err
	}
	if answer != "Reset" && answer != "Yes" {
		return false, nil
	}

	rec, err := svc.Reset(a.ctx)
	if err != nil {
		return false, err
	}
	runtime.EventsEmit(a.ctx, "journal:reset")
	runtime.EventsEmit(a.ctx, "streak:updated", rec)
	return true, nil
}

// -- Settings --

// MoodScaleInfo describes the mood range and the label for each value.
type MoodScaleInfo struct {
	Min    int      `json:"min"`
	Max    int      `json:"max"`
	Labels []string `json:"labels"`
}

func (a *App) moodScale() model.MoodScale {
	if a.cfg != nil {
		return a.cfg.MoodScale()
	}
	return model.DefaultMoodScale
}

// GetMoodScale returns the configured mood range. Labels are empty for
// scales other than the default weather scale.
func (a *App) GetMoodScale() MoodScaleInfo {
	scale := a.moodScale()
	info := MoodScaleInfo{Min: scale.Min, Max: scale.Max, Labels: []string{}}
	for m := scale.Min; m <= scale.Max; m++ {
		if label := scale.Label(m); label != "" {
			info.Labels = append(info.Labels, label)
		}
	}
	return info
}

// GetVersion returns the application version.
func (a *App) GetVersion() string {
	return Version
}
