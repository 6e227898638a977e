// Package scraper collects job listings from the TimesJobs search page.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/amankharwar575/kodJobs/internal/job"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"
	timeout   = 15 * time.Second

	itemSelector     = "li.clearfix.job-bx.wht-shd-bx"
	titleSelector    = "h2"
	companySelector  = "h3.joblist-comp-name"
	locationSelector = "span.srp-skills"
	linkSelector     = "a.clearfix.job-post-lnk"
	salarySelector   = "li.srp-salary"
	skillsSelector   = "li.srp-ellipsis"
	postedSelector   = "div.project-age-info span"
	statusSelector   = "span.label-status"
)

type Scraper struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

func New(url string, logger zerolog.Logger) *Scraper {
	return &Scraper{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

// Scrape never fails: whenever the page cannot be fetched or yields no
// usable listing the fixed TimesJobs fallback is returned instead.
func (s *Scraper) Scrape(ctx context.Context) []job.Raw {
	jobs, err := s.fetch(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("url", s.url).Msg("timesjobs scrape failed, using fallback data")
		return job.Raws(job.TimesJobsFallback())
	}
	return jobs
}

func (s *Scraper) fetch(ctx context.Context) ([]job.Raw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create request")
	}
	req.Header.Set("User-Agent", userAgent)
	res, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status code error: %d %s", s.url, res.StatusCode, res.Status)
	}
	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse page")
	}
	items := doc.Find(itemSelector)
	if items.Length() == 0 {
		return nil, errors.New("no job listings found, page structure may have changed")
	}
	jobs := s.parse(items)
	if len(jobs) == 0 {
		return nil, errors.New("unable to extract any job listing")
	}
	return jobs, nil
}

func (s *Scraper) parse(items *goquery.Selection) []job.Raw {
	expires := "Expired " + humanize.Time(time.Now().Add(-24*time.Hour))
	var jobs []job.Raw
	items.Each(func(i int, item *goquery.Selection) {
		title := text(item, titleSelector, "")
		link, _ := item.Find(linkSelector).First().Attr("href")
		link = strings.TrimSpace(link)
		if link == "" {
			link = job.DefaultLink
		}
		if title == "" {
			title = "Unknown Title"
		}
		location := "Unknown Location"
		if loc := item.Find(locationSelector).First(); loc.Length() > 0 {
			location = strings.TrimSpace(strings.Replace(strings.TrimSpace(loc.Text()), "location_on", "", -1))
		}
		skills := []string{}
		item.Find(skillsSelector).Each(func(_ int, sk *goquery.Selection) {
			if v := strings.TrimSpace(sk.Text()); v != "" {
				skills = append(skills, v)
			}
		})
		skillsJSON, err := json.Marshal(skills)
		if err != nil {
			s.log.Debug().Err(err).Int("item", i).Msg("unable to encode skills")
			return
		}
		jobs = append(jobs, job.Raw{
			ID:       json.RawMessage(fmt.Sprint(job.HashID(link))),
			Title:    title,
			Company:  text(item, companySelector, "Unknown Company"),
			Salary:   text(item, salarySelector, job.DefaultSalary),
			Location: location,
			Skills:   skillsJSON,
			Posted:   text(item, postedSelector, "Recent"),
			Status:   text(item, statusSelector, job.StatusNotApplied),
			Link:     link,
			Expires:  expires,
		})
	})
	return jobs
}

func text(sel *goquery.Selection, selector, def string) string {
	if v := strings.TrimSpace(sel.Find(selector).First().Text()); v != "" {
		return v
	}
	return def
}
