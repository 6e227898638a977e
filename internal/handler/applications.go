package handler

import (
	"net/http"

	"github.com/amankharwar575/kodJobs/internal/application"
	"github.com/amankharwar575/kodJobs/internal/middleware"
	"github.com/amankharwar575/kodJobs/internal/server"
)

func ApplyHandler(svr server.Server, appRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		req := &application.ApplicationRq{}
		if err := decodeBody(r, req); err != nil {
			svr.Message(w, http.StatusBadRequest, "Missing job ID")
			return
		}
		jobID, ok := parseJobID(req.JobID)
		if !ok {
			svr.Message(w, http.StatusBadRequest, "Missing job ID")
			return
		}
		err := appRepo.Apply(r.Context(), userID, jobID)
		if err == application.ErrAlreadyApplied {
			svr.Message(w, http.StatusConflict, "You have already applied for this job")
			return
		}
		if err != nil {
			svr.Log(err, "unable to save application")
			svr.Message(w, http.StatusInternalServerError, "Unable to submit application")
			return
		}
		svr.Message(w, http.StatusCreated, "Application submitted successfully")
	}
}

func ApplicationsHandler(svr server.Server, appRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		ids, err := appRepo.JobIDsForUser(userID)
		if err != nil {
			svr.Log(err, "unable to load applications")
			svr.Message(w, http.StatusInternalServerError, "Unable to load applications")
			return
		}
		svr.JSON(w, http.StatusOK, ids)
	}
}
