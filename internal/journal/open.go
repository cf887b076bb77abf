package journal

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/radishspirit/moodjournal/internal/config"
	"github.com/radishspirit/moodjournal/internal/database"
)

// Open opens the store described by cfg and returns a Service over it.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := database.OpenStore(ctx, cfg.DBDriver, cfg.DataSource(), cfg.StoreOptions(log))
	if err != nil {
		return nil, fmt.Errorf("opening journal store: %w", err)
	}

	opts = append([]Option{WithLocation(loc), WithMoodScale(cfg.MoodScale()), WithLogger(log)}, opts...)
	return New(store, opts...), nil
}
