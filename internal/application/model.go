package application

import "time"

const CollectionName = "applications"

type Application struct {
	UserID    string    `json:"user_id"`
	JobID     int64     `json:"job_id"`
	AppliedAt time.Time `json:"applied_at"`
}

type ApplicationRq struct {
	JobID interface{} `json:"jobId"`
}
