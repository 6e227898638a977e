package application

import (
	"context"
	"errors"
	"time"

	"github.com/amankharwar575/kodJobs/internal/store"
)

var ErrAlreadyApplied = errors.New("already applied for this job")

type Repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{s}
}

// Apply records an application, a user applies to a job at most once.
func (r *Repository) Apply(ctx context.Context, userID string, jobID int64) error {
	var apps []Application
	return r.store.Update(ctx, CollectionName, &apps, func() (bool, error) {
		for _, a := range apps {
			if a.UserID == userID && a.JobID == jobID {
				return false, ErrAlreadyApplied
			}
		}
		apps = append(apps, Application{UserID: userID, JobID: jobID, AppliedAt: time.Now().UTC()})
		return true, nil
	})
}

// JobIDsForUser returns the ids of the jobs the user applied to, oldest
// application first.
func (r *Repository) JobIDsForUser(userID string) ([]int64, error) {
	var apps []Application
	if err := r.store.Load(CollectionName, &apps); err != nil {
		return nil, err
	}
	ids := []int64{}
	for _, a := range apps {
		if a.UserID == userID {
			ids = append(ids, a.JobID)
		}
	}
	return ids, nil
}
