package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amankharwar575/kodJobs/internal/job"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body><ul class="new-joblist">
<li class="clearfix job-bx wht-shd-bx">
  <header><h2><a class="clearfix job-post-lnk" href="https://www.timesjobs.com/job-detail/golang-1">  Golang Developer </a></h2>
  <h3 class="joblist-comp-name"> Acme Systems </h3></header>
  <ul class="top-jd-dtl"><li class="srp-salary">₹10,00,000 - ₹15,00,000 PA</li>
  <li><span class="srp-skills"><i class="material-icons">location_on</i>Pune</span></li></ul>
  <ul class="list-job-dtl"><li class="srp-ellipsis">Go</li><li class="srp-ellipsis"> Kubernetes </li></ul>
  <div class="project-age-info"><span>Posted few days ago</span></div>
  <span class="label-status">Applied</span>
</li>
<li class="clearfix job-bx wht-shd-bx">
  <h2>Backend Engineer</h2>
</li>
<li class="clearfix job-bx wht-shd-bx">
  <h3 class="joblist-comp-name">Nobody</h3>
</li>
</ul></body></html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func skills(t *testing.T, r job.Raw) []string {
	var out []string
	require.NoError(t, json.Unmarshal(r.Skills, &out))
	return out
}

func TestScrapeParsesListings(t *testing.T) {
	srv := serve(t, http.StatusOK, listingPage)

	jobs := New(srv.URL, zerolog.Nop()).Scrape(context.Background())
	require.Len(t, jobs, 3)

	first := jobs[0]
	assert.Equal(t, "Golang Developer", first.Title)
	assert.Equal(t, "Acme Systems", first.Company)
	assert.Equal(t, "₹10,00,000 - ₹15,00,000 PA", first.Salary)
	assert.Equal(t, "Pune", first.Location)
	assert.Equal(t, []string{"Go", "Kubernetes"}, skills(t, first))
	assert.Equal(t, "Posted few days ago", first.Posted)
	assert.Equal(t, "Applied", first.Status)
	assert.Equal(t, "https://www.timesjobs.com/job-detail/golang-1", first.Link)
	assert.Equal(t, "Expired 1 day ago", first.Expires)
	assert.Equal(t, job.HashID(first.Link), job.Normalize(first).ID)

	second := jobs[1]
	assert.Equal(t, "Backend Engineer", second.Title)
	assert.Equal(t, "Unknown Company", second.Company)
	assert.Equal(t, "Unknown Location", second.Location)
	assert.Equal(t, job.DefaultLink, second.Link)
	assert.Equal(t, job.DefaultSalary, second.Salary)
	assert.Equal(t, "Recent", second.Posted)
	assert.Equal(t, job.StatusNotApplied, second.Status)
	assert.Empty(t, skills(t, second))
	assert.Equal(t, job.HashID(job.DefaultLink), job.Normalize(second).ID)

	third := jobs[2]
	assert.Equal(t, "Unknown Title", third.Title)
	assert.Equal(t, "Nobody", third.Company)
	assert.Equal(t, job.DefaultLink, third.Link)
}

func TestScrapeKeepsListingsWithoutTitleAndLink(t *testing.T) {
	srv := serve(t, http.StatusOK, `<ul><li class="clearfix job-bx wht-shd-bx">
  <h3 class="joblist-comp-name">Acme</h3>
  <ul class="top-jd-dtl"><li class="srp-salary">₹5,00,000 PA</li></ul>
</li></ul>`)

	jobs := New(srv.URL, zerolog.Nop()).Scrape(context.Background())
	require.Len(t, jobs, 1)
	assert.Equal(t, "Unknown Title", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "₹5,00,000 PA", jobs[0].Salary)
	assert.Equal(t, job.DefaultLink, jobs[0].Link)
	assert.Equal(t, "Unknown Location", jobs[0].Location)
}

func TestScrapeFallsBack(t *testing.T) {
	fallback := job.Raws(job.TimesJobsFallback())

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no matches", http.StatusOK, `<html><body><p>nothing here</p></body></html>`},
		{"server error", http.StatusInternalServerError, listingPage},
		{"not found", http.StatusNotFound, ""},
		{"only unusable items", http.StatusOK, `<ul><li class="clearfix job-bx wht-shd-bx"><h3 class="joblist-comp-name">x</h3></li></ul>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			jobs := New(srv.URL, zerolog.Nop()).Scrape(context.Background())
			assert.Equal(t, fallback, jobs)
		})
	}
}

func TestScrapeConnectionErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	jobs := New(url, zerolog.Nop()).Scrape(context.Background())
	require.Len(t, jobs, 5)
	for _, j := range jobs {
		assert.True(t, job.Complete(j))
	}
}

func TestScrapeCancelledContextFallsBack(t *testing.T) {
	srv := serve(t, http.StatusOK, listingPage)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := New(srv.URL, zerolog.Nop()).Scrape(ctx)
	assert.Len(t, jobs, 5)
}
