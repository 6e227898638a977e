package aggregator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amankharwar575/kodJobs/internal/job"
	"github.com/amankharwar575/kodJobs/internal/jooble"
	"github.com/amankharwar575/kodJobs/internal/scraper"
	"github.com/amankharwar575/kodJobs/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	jobs  []job.Raw
	panic bool
	calls int32
}

func (f *fakeScraper) Scrape(ctx context.Context) []job.Raw {
	atomic.AddInt32(&f.calls, 1)
	if f.panic {
		panic("boom")
	}
	return f.jobs
}

type fakeSearcher struct {
	jobs     []job.Raw
	keywords string
	location string
}

func (f *fakeSearcher) Search(ctx context.Context, keywords, location string) []job.Raw {
	f.keywords, f.location = keywords, location
	return f.jobs
}

func newRepo(t *testing.T) *job.Repository {
	s, err := store.New(t.TempDir(), nil, zerolog.Nop())
	require.NoError(t, err)
	return job.NewRepository(s, nil, zerolog.Nop())
}

func TestRunConcatenatesSources(t *testing.T) {
	repo := newRepo(t)
	sc := &fakeScraper{jobs: job.Raws(job.TimesJobsFallback())}
	se := &fakeSearcher{jobs: job.Raws(job.JoobleFallback("software engineer", "India"))}

	saved, err := New(sc, se, repo, "software engineer", "India", zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, saved, 9)
	assert.Equal(t, "software engineer", se.keywords)
	assert.Equal(t, "India", se.location)

	jobs, err := repo.All()
	require.NoError(t, err)
	require.Len(t, jobs, 9)
	assert.Equal(t, "Infosys", jobs[0].Company)
	assert.Equal(t, "software engineer Specialist", jobs[5].Title)
}

func TestRunWithEmptySourcesStoresSamples(t *testing.T) {
	repo := newRepo(t)

	_, err := New(&fakeScraper{}, &fakeSearcher{jobs: []job.Raw{}}, repo, "x", "y", zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	jobs, err := repo.All()
	require.NoError(t, err)
	assert.Equal(t, job.SampleJobs(), jobs)
}

func TestRunRecoversWithEmergencyRecord(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.Save(job.Raws(job.SampleJobs())))

	saved, err := New(&fakeScraper{panic: true}, &fakeSearcher{}, repo, "x", "y", zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)

	jobs, err := repo.All()
	require.NoError(t, err)
	assert.Equal(t, job.EmergencyJobs(), jobs)
}

func TestRunEndToEndWithUnreachableSources(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo := newRepo(t)
	agg := New(
		scraper.New(url, zerolog.Nop()),
		jooble.NewClient(url+"/{key}/", "key", zerolog.Nop()),
		repo, "software engineer", "India", zerolog.Nop(),
	)
	_, err := agg.Run(context.Background())
	require.NoError(t, err)

	raws, err := repo.Raw()
	require.NoError(t, err)
	require.Len(t, raws, 9)
	for _, r := range raws {
		assert.True(t, job.Complete(r), r.Title)
	}
}

func TestEnsurePopulated(t *testing.T) {
	repo := newRepo(t)
	sc := &fakeScraper{jobs: job.Raws(job.TimesJobsFallback())}
	agg := New(sc, &fakeSearcher{}, repo, "x", "y", zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, agg.EnsurePopulated(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&sc.calls))
	jobs, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, jobs, 5)
}

func TestSchedulerRuns(t *testing.T) {
	repo := newRepo(t)
	sc := &fakeScraper{jobs: job.Raws(job.TimesJobsFallback())}
	s := NewScheduler(New(sc, &fakeSearcher{}, repo, "x", "y", zerolog.Nop()), "@every 1s", zerolog.Nop())

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&sc.calls) > 0 }, 5*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestSchedulerInvalidSpec(t *testing.T) {
	s := NewScheduler(New(&fakeScraper{}, &fakeSearcher{}, newRepo(t), "x", "y", zerolog.Nop()), "every now and then", zerolog.Nop())
	assert.Error(t, s.Start(context.Background()))
}
