package aggregator

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler refreshes the job collection on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	agg  *Aggregator
	spec string // cron spec, e.g. "@every 6h"
	log  zerolog.Logger
}

func NewScheduler(agg *Aggregator, spec string, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		agg:  agg,
		spec: spec,
		log:  logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.agg.Run(ctx); err != nil {
			s.log.Error().Err(err).Msg("scheduled aggregation failed")
		}
	})
	if err != nil {
		return errors.Wrapf(err, "invalid schedule %q", s.spec)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("aggregation scheduler started")
	return nil
}

// Stop waits for a running aggregation to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("aggregation scheduler stopped")
}
