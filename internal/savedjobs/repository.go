package savedjobs

import (
	"context"
	"errors"
	"time"

	"github.com/amankharwar575/kodJobs/internal/store"
	"github.com/segmentio/ksuid"
)

var ErrNotFound = errors.New("saved job not found")

type Repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{s}
}

// SaveJob bookmarks a job for the user. Saving an already saved job is a
// no-op.
func (r *Repository) SaveJob(ctx context.Context, jobID int64, userID string) error {
	var saved []SavedJob
	return r.store.Update(ctx, CollectionName, &saved, func() (bool, error) {
		for _, sj := range saved {
			if sj.UserID == userID && sj.JobID == jobID {
				return false, nil
			}
		}
		id, err := ksuid.NewRandom()
		if err != nil {
			return false, err
		}
		saved = append(saved, SavedJob{
			ID:      id.String(),
			UserID:  userID,
			JobID:   jobID,
			SavedAt: time.Now().UTC(),
		})
		return true, nil
	})
}

func (r *Repository) RemoveJob(ctx context.Context, jobID int64, userID string) error {
	var saved []SavedJob
	return r.store.Update(ctx, CollectionName, &saved, func() (bool, error) {
		kept := saved[:0]
		for _, sj := range saved {
			if sj.UserID == userID && sj.JobID == jobID {
				continue
			}
			kept = append(kept, sj)
		}
		if len(kept) == len(saved) {
			return false, ErrNotFound
		}
		saved = kept
		return true, nil
	})
}

func (r *Repository) GetSavedJobsForUser(userID string) ([]SavedJob, error) {
	var saved []SavedJob
	if err := r.store.Load(CollectionName, &saved); err != nil {
		return nil, err
	}
	out := []SavedJob{}
	for _, sj := range saved {
		if sj.UserID == userID {
			out = append(out, sj)
		}
	}
	return out, nil
}
