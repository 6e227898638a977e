package job

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"

	"github.com/allegro/bigcache/v3"
	"github.com/amankharwar575/kodJobs/internal/store"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const cacheKeyJobs = "jobs"

type Repository struct {
	store *store.Store
	cache *bigcache.BigCache
	log   zerolog.Logger
}

// NewRepository returns a job repository. cache may be nil, in which case
// every read goes to the store.
func NewRepository(s *store.Store, cache *bigcache.BigCache, logger zerolog.Logger) *Repository {
	return &Repository{store: s, cache: cache, log: logger}
}

// Raw returns the persisted records as stored. A record that is not a JSON
// object is skipped, the rest of the collection is kept.
func (r *Repository) Raw() ([]Raw, error) {
	var items []json.RawMessage
	if err := r.store.Load(CollectionName, &items); err != nil {
		return nil, errors.Wrap(err, "unable to load jobs")
	}
	raws := make([]Raw, 0, len(items))
	for i, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			r.log.Warn().Int("index", i).Msg("skipping null job record")
			continue
		}
		var raw Raw
		if err := json.Unmarshal(item, &raw); err != nil {
			r.log.Warn().Err(err).Int("index", i).Msg("skipping malformed job record")
			continue
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// cacheKey ties cached jobs to the current version of the jobs file, so a
// collection rewritten by another process is never served from cache.
func (r *Repository) cacheKey() (string, error) {
	version, err := r.store.Version(CollectionName)
	if err != nil {
		return "", errors.Wrap(err, "unable to read jobs version")
	}
	return cacheKeyJobs + ":" + version, nil
}

// All returns every job, normalised.
func (r *Repository) All() ([]Job, error) {
	var key string
	if r.cache != nil {
		var err error
		if key, err = r.cacheKey(); err != nil {
			return nil, err
		}
		if cached, err := r.cache.Get(key); err == nil {
			var jobs []Job
			dec := gob.NewDecoder(bytes.NewReader(cached))
			decErr := dec.Decode(&jobs)
			if decErr == nil {
				return jobs, nil
			}
			r.log.Warn().Err(decErr).Msg("unable to decode cached jobs")
		}
	}
	raws, err := r.Raw()
	if err != nil {
		return nil, err
	}
	jobs := NormalizeAll(raws)
	if r.cache != nil && len(jobs) > 0 {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(jobs); err != nil {
			r.log.Warn().Err(err).Msg("unable to encode jobs for cache")
		} else if err := r.cache.Set(key, buf.Bytes()); err != nil {
			r.log.Warn().Err(err).Msg("unable to cache jobs")
		}
	}
	return jobs, nil
}

// ByID returns the normalised job with the given id.
func (r *Repository) ByID(id int64) (Job, bool, error) {
	jobs, err := r.All()
	if err != nil {
		return Job{}, false, err
	}
	for _, j := range jobs {
		if j.ID == id {
			return j, true, nil
		}
	}
	return Job{}, false, nil
}

// Save replaces the whole collection. Callers coordinating with other
// writers hold the collection lock, see Lock.
func (r *Repository) Save(raws []Raw) error {
	var stale string
	if r.cache != nil {
		if key, err := r.cacheKey(); err == nil {
			stale = key
		}
	}
	if err := r.store.Save(CollectionName, raws); err != nil {
		return errors.Wrap(err, "unable to save jobs")
	}
	if stale != "" {
		if err := r.cache.Delete(stale); err != nil && err != bigcache.ErrEntryNotFound {
			r.log.Warn().Err(err).Msg("unable to invalidate jobs cache")
		}
	}
	return nil
}

func (r *Repository) Lock(ctx context.Context) (func(), error) {
	return r.store.Lock(ctx, CollectionName)
}
