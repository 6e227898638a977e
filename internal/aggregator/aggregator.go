// Package aggregator combines the job sources into the persisted job
// collection.
package aggregator

import (
	"context"
	"fmt"

	"github.com/amankharwar575/kodJobs/internal/job"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Scraper interface {
	Scrape(ctx context.Context) []job.Raw
}

type Searcher interface {
	Search(ctx context.Context, keywords, location string) []job.Raw
}

type Repository interface {
	All() ([]job.Job, error)
	Raw() ([]job.Raw, error)
	Save(raws []job.Raw) error
	Lock(ctx context.Context) (func(), error)
}

type Aggregator struct {
	scraper  Scraper
	searcher Searcher
	repo     Repository
	keywords string
	location string
	log      zerolog.Logger
}

func New(scraper Scraper, searcher Searcher, repo Repository, keywords, location string, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		scraper:  scraper,
		searcher: searcher,
		repo:     repo,
		keywords: keywords,
		location: location,
		log:      logger,
	}
}

// Run refreshes the whole job collection and returns what was persisted.
func (a *Aggregator) Run(ctx context.Context) ([]job.Raw, error) {
	unlock, err := a.repo.Lock(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to lock job collection")
	}
	defer unlock()

	return a.refresh(ctx)
}

// EnsurePopulated aggregates only when the collection is empty. The check
// is repeated under the lock against the stored file so concurrent callers
// aggregate once.
func (a *Aggregator) EnsurePopulated(ctx context.Context) error {
	jobs, err := a.repo.All()
	if err != nil {
		return err
	}
	if len(jobs) > 0 {
		return nil
	}
	unlock, err := a.repo.Lock(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to lock job collection")
	}
	defer unlock()

	raws, err := a.repo.Raw()
	if err != nil {
		return err
	}
	if len(raws) > 0 {
		return nil
	}
	a.log.Info().Msg("no jobs stored, aggregating")
	_, err = a.refresh(ctx)
	return err
}

func (a *Aggregator) refresh(ctx context.Context) ([]job.Raw, error) {
	jobs, err := a.collect(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("aggregation failed, storing emergency fallback")
		jobs = job.Raws(job.EmergencyJobs())
	}
	if err := a.repo.Save(jobs); err != nil {
		return nil, err
	}
	a.log.Info().Int("jobs", len(jobs)).Msg("job collection saved")
	return jobs, nil
}

func (a *Aggregator) collect(ctx context.Context) (jobs []job.Raw, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while aggregating: %v", r)
		}
	}()

	scraped := a.scraper.Scrape(ctx)
	a.log.Info().Int("jobs", len(scraped)).Msg("fetched jobs from timesjobs")
	searched := a.searcher.Search(ctx, a.keywords, a.location)
	a.log.Info().Int("jobs", len(searched)).Msg("fetched jobs from jooble")

	jobs = make([]job.Raw, 0, len(scraped)+len(searched))
	jobs = append(jobs, scraped...)
	jobs = append(jobs, searched...)
	if len(jobs) == 0 {
		a.log.Info().Msg("no jobs from any source, using sample data")
		jobs = job.Raws(job.SampleJobs())
	}
	return jobs, nil
}
