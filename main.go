package main

import (
	"context"
	"log"

	"github.com/allegro/bigcache/v3"
	"github.com/amankharwar575/kodJobs/internal/aggregator"
	"github.com/amankharwar575/kodJobs/internal/application"
	"github.com/amankharwar575/kodJobs/internal/config"
	"github.com/amankharwar575/kodJobs/internal/handler"
	"github.com/amankharwar575/kodJobs/internal/savedjobs"
	"github.com/amankharwar575/kodJobs/internal/server"
	"github.com/amankharwar575/kodJobs/internal/user"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	logger := server.NewLogger(cfg.Env)
	ctx := context.Background()

	st, err := aggregator.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to open data store")
	}
	if err := st.Init(user.CollectionName, application.CollectionName, savedjobs.CollectionName); err != nil {
		logger.Fatal().Err(err).Msg("unable to initialise data files")
	}
	cache, err := bigcache.NewBigCache(bigcache.DefaultConfig(cfg.JobsCacheTTL))
	if err != nil {
		logger.Error().Err(err).Msg("unable to initialise big cache, serving jobs uncached")
		cache = nil
	}
	agg, jobRepo := aggregator.FromConfig(cfg, st, cache, logger)

	// fresh data before serving the first request
	if _, err := agg.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("initial job aggregation failed")
	}
	if cfg.AggregateSchedule != "" {
		sched := aggregator.NewScheduler(agg, cfg.AggregateSchedule, logger)
		if err := sched.Start(ctx); err != nil {
			logger.Fatal().Err(err).Msg("unable to start aggregation scheduler")
		}
		defer sched.Stop()
	}

	svr := server.NewServer(
		cfg,
		mux.NewRouter(),
		sessions.NewCookieStore(cfg.SessionKey),
		logger,
	)
	handler.RegisterRoutes(svr, handler.Dependencies{
		UserRepo:        user.NewRepository(st),
		JobRepo:         jobRepo,
		ApplicationRepo: application.NewRepository(st),
		SavedJobsRepo:   savedjobs.NewRepository(st),
		Aggregator:      agg,
	})

	if err := svr.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
