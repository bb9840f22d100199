package api

import (
	"net/http"
	"path/filepath"

	"sk-ims/src/config"
	"sk-ims/src/handlers"
	"sk-ims/src/middleware"
	"sk-ims/src/models"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Uploaded evidence and attachments
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(filepath.Clean(cfg.UploadDir))))
	r.Get("/uploads/*", uploads.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(pool, cfg.JWTSecret))
		r.Get("/logout", handlers.Logout())

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.ReadOnlyMiddleware(cfg.ReadOnly)).Group(func(r chi.Router) {
			// Dashboard
			r.Get("/dashboard", handlers.GetDashboard(pool))

			// Projects
			r.Get("/projects", handlers.GetAllProjects(pool))
			r.Post("/projects", handlers.CreateProject(pool, cfg.UploadDir))
			r.Get("/projects/{project_id}", handlers.GetProjectByID(pool))
			r.Put("/projects/{project_id}", handlers.UpdateProject(pool, cfg.UploadDir))
			r.Delete("/projects/{project_id}", handlers.DeleteProject(pool, cfg.UploadDir))

			// Logbook
			r.Get("/logbook", handlers.GetAllLogbookEntries(pool))
			r.Post("/logbook", handlers.CreateLogbookEntry(pool))
			r.Get("/logbook/sitios", handlers.GetSitios())
			r.Put("/logbook/{entry_id}", handlers.UpdateLogbookEntry(pool))
			r.Delete("/logbook/{entry_id}", handlers.DeleteLogbookEntry(pool))

			// Reports
			r.Get("/reports", handlers.GetAllReports(pool))
			r.Post("/reports", handlers.CreateReport(pool, cfg.UploadDir))
			r.Get("/reports/{report_id}", handlers.GetReportByID(pool))
			r.Put("/reports/{report_id}", handlers.UpdateReport(pool, cfg.UploadDir))
			r.Delete("/reports/{report_id}", handlers.DeleteReport(pool, cfg.UploadDir))

			// Budget ledger, read side
			r.Get("/budgets", handlers.GetAllBudgets(pool))
			r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(pool))
			r.Get("/budgets/{budget_id}/entries", handlers.GetBudgetEntries(pool))
			r.Get("/budgets/{budget_id}/activity", handlers.GetBudgetActivity(pool))
			r.Get("/budgets/{budget_id}/allocations", handlers.GetBudgetAllocations(pool))

			// Budget ledger, write side
			r.With(middleware.RequireRole(models.RoleTreasurer, models.RoleChairman, models.RoleBMO)).Group(func(r chi.Router) {
				r.Post("/budgets", handlers.CreateBudget(pool))
				r.Post("/budgets/{budget_id}/entries", handlers.CreateEntry(pool, cfg.UploadDir))
				r.Put("/budgets/{budget_id}/entries/{entry_id}", handlers.UpdateEntry(pool))
				r.Post("/budgets/{budget_id}/allocations", handlers.RequestAllocation(pool))
			})

			// Approvals, chairman only
			r.With(middleware.RequireRole(models.RoleChairman)).Group(func(r chi.Router) {
				r.Post("/budgets/{budget_id}/entries/{entry_id}/approve", handlers.ApproveEntry(pool))
				r.Post("/budgets/{budget_id}/entries/{entry_id}/reject", handlers.RejectEntry(pool))
				r.Post("/budgets/{budget_id}/allocations/{allocation_id}/approve", handlers.ApproveAllocation(pool))
				r.Post("/budgets/{budget_id}/allocations/{allocation_id}/reject", handlers.RejectAllocation(pool))
				r.Delete("/budgets/{budget_id}/allocations/{allocation_id}", handlers.RemoveAllocation(pool))
			})
		})

		// Super Admin Routes
		r.With(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.RequireRole(models.RoleSuperAdmin)).Group(func(r chi.Router) {
			r.Get("/admin/users", handlers.GetAllUsers(pool))
			r.Post("/admin/users", handlers.CreateUser(pool))
			r.Put("/admin/users/{user_id}", handlers.UpdateUser(pool))
			r.Delete("/admin/users/{user_id}", handlers.DeleteUser(pool))

			r.Post("/admin/cache/clear/{cache_name}", handlers.ClearCache())
		})
	})

	return r
}
