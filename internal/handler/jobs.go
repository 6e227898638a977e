package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amankharwar575/kodJobs/internal/aggregator"
	"github.com/amankharwar575/kodJobs/internal/application"
	"github.com/amankharwar575/kodJobs/internal/job"
	"github.com/amankharwar575/kodJobs/internal/middleware"
	"github.com/amankharwar575/kodJobs/internal/server"
	"github.com/gorilla/feeds"
	"github.com/gorilla/mux"
)

// JobsHandler lists the jobs matching the search and location query
// params. The collection is aggregated first if nothing is stored yet.
func JobsHandler(svr server.Server, jobRepo *job.Repository, appRepo *application.Repository, agg *aggregator.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := agg.EnsurePopulated(r.Context()); err != nil {
			svr.Log(err, "unable to populate jobs")
			svr.Message(w, http.StatusInternalServerError, "Unable to load jobs")
			return
		}
		jobs, err := jobRepo.All()
		if err != nil {
			svr.Log(err, "unable to load jobs")
			svr.Message(w, http.StatusInternalServerError, "Unable to load jobs")
			return
		}
		jobs = job.Filter(jobs, r.URL.Query().Get("search"), r.URL.Query().Get("location"))

		userID, _ := middleware.UserIDFromContext(r.Context())
		appliedIDs, err := appRepo.JobIDsForUser(userID)
		if err != nil {
			svr.Log(err, "unable to load applications")
		}
		applied := make(map[int64]bool, len(appliedIDs))
		for _, id := range appliedIDs {
			applied[id] = true
		}
		for i := range jobs {
			if applied[jobs[i].ID] {
				jobs[i].Status = job.StatusApplied
			}
		}
		svr.JSON(w, http.StatusOK, jobs)
	}
}

func JobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			svr.Message(w, http.StatusNotFound, "Job not found")
			return
		}
		j, ok, err := jobRepo.ByID(id)
		if err != nil {
			svr.Log(err, "unable to load jobs")
			svr.Message(w, http.StatusInternalServerError, "Unable to load job")
			return
		}
		if !ok {
			svr.Message(w, http.StatusNotFound, "Job not found")
			return
		}
		svr.JSON(w, http.StatusOK, j)
	}
}

func ServeRSSFeed(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := jobRepo.All()
		if err != nil {
			svr.Log(err, "unable to retrieve jobs for RSS Feed")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		jobs = job.Filter(jobs, r.URL.Query().Get("search"), r.URL.Query().Get("location"))
		now := time.Now()
		feed := &feeds.Feed{
			Title:       "kodJobs",
			Link:        &feeds.Link{Href: "http://" + r.Host + "/jobs"},
			Description: "Latest jobs aggregated by kodJobs",
			Created:     now,
		}
		for _, j := range jobs {
			feed.Items = append(feed.Items, &feeds.Item{
				Id:          strconv.FormatInt(j.ID, 10),
				Title:       fmt.Sprintf("%s with %s - %s", j.Title, j.Company, j.Location),
				Link:        &feeds.Link{Href: j.Link},
				Description: fmt.Sprintf("Salary: %s. Skills: %s. %s.", j.Salary, strings.Join(j.Skills, ", "), j.Posted),
				Created:     now,
			})
		}
		rssFeed, err := feed.ToRss()
		if err != nil {
			svr.Log(err, "unable to convert rss feed to xml")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		svr.XML(w, http.StatusOK, []byte(rssFeed))
	}
}
