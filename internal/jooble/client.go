// Package jooble queries the Jooble job search API.
package jooble

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/amankharwar575/kodJobs/internal/job"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const timeout = 10 * time.Second

type searchRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Radius   int    `json:"radius"`
	Page     int    `json:"page"`
	Salary   int    `json:"salary"`
	Days     int    `json:"days"`
}

type searchResponse struct {
	TotalCount int       `json:"totalCount"`
	Jobs       []job.Raw `json:"jobs"`
}

type Client struct {
	url    string
	apiKey string
	client *http.Client
	log    zerolog.Logger
}

// NewClient returns a client for the endpoint template urlTemplate where
// {key} is replaced with apiKey.
func NewClient(urlTemplate, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		url:    strings.Replace(urlTemplate, "{key}", apiKey, -1),
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

// Search never fails: on any error the query shaped fallback records are
// returned instead. A successful response with no jobs yields an empty
// slice.
func (c *Client) Search(ctx context.Context, keywords, location string) []job.Raw {
	if c.apiKey == "" {
		c.log.Info().Msg("no jooble api key configured, using fallback data")
		return job.Raws(job.JoobleFallback(keywords, location))
	}
	jobs, err := c.search(ctx, keywords, location)
	if err != nil {
		c.log.Warn().Err(err).Msg("jooble search failed, using fallback data")
		return job.Raws(job.JoobleFallback(keywords, location))
	}
	return jobs
}

func (c *Client) search(ctx context.Context, keywords, location string) ([]job.Raw, error) {
	body, err := json.Marshal(searchRequest{
		Keywords: keywords,
		Location: location,
		Radius:   25,
		Page:     1,
		Salary:   40000,
		Days:     7,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "unable to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.client.Do(req)
	if err != nil {
		// the url embeds the api key
		return nil, errors.New("request failed: " + strings.Replace(err.Error(), c.apiKey, "***", -1))
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code %d", res.StatusCode)
	}
	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "unable to decode response")
	}
	if out.Jobs == nil {
		out.Jobs = []job.Raw{}
	}
	return out.Jobs, nil
}
