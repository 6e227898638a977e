package handler

import (
	"net/http"

	"github.com/amankharwar575/kodJobs/internal/aggregator"
	"github.com/amankharwar575/kodJobs/internal/application"
	"github.com/amankharwar575/kodJobs/internal/job"
	"github.com/amankharwar575/kodJobs/internal/middleware"
	"github.com/amankharwar575/kodJobs/internal/savedjobs"
	"github.com/amankharwar575/kodJobs/internal/server"
	"github.com/amankharwar575/kodJobs/internal/user"
)

type Dependencies struct {
	UserRepo        *user.Repository
	JobRepo         *job.Repository
	ApplicationRepo *application.Repository
	SavedJobsRepo   *savedjobs.Repository
	Aggregator      *aggregator.Aggregator
}

func RegisterRoutes(svr server.Server, deps Dependencies) {
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthenticatedMiddleware(svr.SessionStore, svr.GetJWTSigningKey(), next)
	}

	svr.RegisterRoute("/health", HealthHandler(svr), []string{"GET"})

	// auth
	svr.RegisterRoute("/register", RegisterHandler(svr, deps.UserRepo), []string{"POST"})
	svr.RegisterRoute("/login", LoginHandler(svr, deps.UserRepo), []string{"POST"})
	svr.RegisterRoute("/logout", LogoutHandler(svr), []string{"POST"})
	svr.RegisterRoute("/verify", auth(VerifyHandler(svr, deps.UserRepo)), []string{"GET"})

	// jobs
	svr.RegisterRoute("/jobs", auth(JobsHandler(svr, deps.JobRepo, deps.ApplicationRepo, deps.Aggregator)), []string{"GET"})
	svr.RegisterRoute("/jobs/{id:-?[0-9]+}", JobHandler(svr, deps.JobRepo), []string{"GET"})
	svr.RegisterRoute("/rss", ServeRSSFeed(svr, deps.JobRepo), []string{"GET"})

	// applications
	svr.RegisterRoute("/apply", auth(ApplyHandler(svr, deps.ApplicationRepo)), []string{"POST"})
	svr.RegisterRoute("/applications", auth(ApplicationsHandler(svr, deps.ApplicationRepo)), []string{"GET"})

	// saved jobs
	svr.RegisterRoute("/saved-jobs", auth(SavedJobsListHandler(svr, deps.SavedJobsRepo)), []string{"GET"})
	svr.RegisterRoute("/saved-jobs", auth(SaveJobHandler(svr, deps.SavedJobsRepo)), []string{"POST", "DELETE"})
}
