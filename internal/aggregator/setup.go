package aggregator

import (
	"context"

	"github.com/allegro/bigcache/v3"
	"github.com/amankharwar575/kodJobs/internal/config"
	"github.com/amankharwar575/kodJobs/internal/job"
	"github.com/amankharwar575/kodJobs/internal/jooble"
	"github.com/amankharwar575/kodJobs/internal/scraper"
	"github.com/amankharwar575/kodJobs/internal/store"
	"github.com/rs/zerolog"
)

// OpenStore opens the data dir, sharing the collection locks through redis
// when cfg.RedisURL is set.
func OpenStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*store.Store, error) {
	var locker store.Locker
	if cfg.RedisURL != "" {
		client, err := store.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		locker = store.NewRedisLocker(client, logger)
		logger.Info().Msg("using redis for store locks")
	}
	return store.New(cfg.DataDir, locker, logger)
}

// FromConfig wires the TimesJobs scraper and the Jooble client into an
// Aggregator writing to a job repository over st.
func FromConfig(cfg config.Config, st *store.Store, cache *bigcache.BigCache, logger zerolog.Logger) (*Aggregator, *job.Repository) {
	jobRepo := job.NewRepository(st, cache, logger)
	agg := New(
		scraper.New(cfg.TimesJobsURL, logger),
		jooble.NewClient(cfg.JoobleAPIURL, cfg.JoobleAPIKey, logger),
		jobRepo,
		cfg.AggregateSearch,
		cfg.AggregateLocation,
		logger,
	)
	return agg, jobRepo
}
