package savedjobs

import (
	"time"
)

const CollectionName = "saved-jobs"

type SavedJob struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	JobID   int64     `json:"job_id"`
	SavedAt time.Time `json:"saved_at"`
}

type SavedJobRq struct {
	JobID interface{} `json:"job_id"`
}
