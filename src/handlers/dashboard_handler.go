package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	cache "sk-ims/src/db"
	db "sk-ims/src/db/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

type dashboardData struct {
	ProjectStatusCounts []db.StatusCount `json:"project_status_counts"`
	LogbookDailyCounts  []db.DailyCount  `json:"logbook_daily_counts"`
	ReportTypeCounts    []db.TypeCount   `json:"report_type_counts"`
	MyProjects          int              `json:"my_projects"`
	MyReports           int              `json:"my_reports"`
}

// GetDashboard aggregates the landing-page numbers. The four queries are
// independent so they run concurrently, and the result is cached per user and
// month until the next mutation clears it.
func GetDashboard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		now := time.Now()

		cacheKey := fmt.Sprintf("dashboard:%d:%s", user.ID, now.Format("2006-01"))
		if cached, found := cache.GetDashboardCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		var data dashboardData
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			data.ProjectStatusCounts, err = db.GetProjectStatusCounts(ctx, pool)
			return err
		})
		g.Go(func() error {
			var err error
			data.LogbookDailyCounts, err = db.GetLogbookDailyCounts(ctx, pool, now)
			return err
		})
		g.Go(func() error {
			var err error
			data.ReportTypeCounts, err = db.GetReportTypeCounts(ctx, pool)
			return err
		})
		g.Go(func() error {
			var err error
			data.MyProjects, data.MyReports, err = db.GetUserTotals(ctx, pool, user.ID)
			return err
		})
		if err := g.Wait(); err != nil {
			log.Printf("ERROR: Failed to build dashboard for user %d: %v", user.ID, err)
			http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
			return
		}

		cache.SetDashboardCache(cacheKey, data)
		writeJSON(w, http.StatusOK, data)
	}
}
