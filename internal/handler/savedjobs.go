package handler

import (
	"net/http"

	"github.com/amankharwar575/kodJobs/internal/middleware"
	"github.com/amankharwar575/kodJobs/internal/savedjobs"
	"github.com/amankharwar575/kodJobs/internal/server"
)

func SavedJobsListHandler(svr server.Server, savedJobsRepo *savedjobs.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		saved, err := savedJobsRepo.GetSavedJobsForUser(userID)
		if err != nil {
			svr.Log(err, "GetSavedJobsForUser")
			svr.Message(w, http.StatusInternalServerError, "Unable to load saved jobs")
			return
		}
		svr.JSON(w, http.StatusOK, saved)
	}
}

func SaveJobHandler(svr server.Server, savedJobsRepo *savedjobs.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		req := &savedjobs.SavedJobRq{}
		if err := decodeBody(r, req); err != nil {
			svr.Message(w, http.StatusBadRequest, "Missing job_id")
			return
		}
		jobID, ok := parseJobID(req.JobID)
		if !ok {
			svr.Message(w, http.StatusBadRequest, "Missing job_id")
			return
		}

		switch r.Method {
		case http.MethodPost:
			if err := savedJobsRepo.SaveJob(r.Context(), jobID, userID); err != nil {
				svr.Log(err, "SaveJob")
				svr.Message(w, http.StatusInternalServerError, "Unable to save job")
				return
			}
			svr.Message(w, http.StatusCreated, "Job saved")

		case http.MethodDelete:
			err := savedJobsRepo.RemoveJob(r.Context(), jobID, userID)
			if err == savedjobs.ErrNotFound {
				svr.Message(w, http.StatusNotFound, "Job not found")
				return
			}
			if err != nil {
				svr.Log(err, "RemoveJob")
				svr.Message(w, http.StatusInternalServerError, "Unable to unsave job")
				return
			}
			svr.Message(w, http.StatusOK, "Job unsaved")
		}
	}
}
