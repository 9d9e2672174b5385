package routes

import (
	"net/http"

	"github.com/gonogoapp/gonogo/internal/app"
	"github.com/gonogoapp/gonogo/internal/handler"
	"github.com/gonogoapp/gonogo/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	goal := handler.NewGoalHandler(app.GoalService)
	milestone := handler.NewMilestoneHandler(app.MilestoneService)
	backup := handler.NewBackupHandler(app.BackupService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /auth/register", rateLimiter(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("POST /auth/login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Session
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(auth.Me))
	mux.HandleFunc("DELETE /api/account", middleware.RequireAuth(auth.DeleteAccount))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Milestones (addressed by their own id; the owning goal is resolved
	// server-side)
	mux.HandleFunc("POST /api/goals/{id}/milestones", middleware.RequireAuth(milestone.Create))
	mux.HandleFunc("PATCH /api/milestones/{id}", middleware.RequireAuth(milestone.Update))
	mux.HandleFunc("DELETE /api/milestones/{id}", middleware.RequireAuth(milestone.Delete))
	mux.HandleFunc("POST /api/milestones/{id}/complete", middleware.RequireAuth(milestone.Complete))
	mux.HandleFunc("POST /api/milestones/{id}/comments", middleware.RequireAuth(milestone.AddComment))
	mux.HandleFunc("DELETE /api/milestones/{id}/comments/{commentID}", middleware.RequireAuth(milestone.DeleteComment))

	// Backup
	mux.HandleFunc("GET /api/backup/export", middleware.RequireAuth(backup.Export))
	mux.HandleFunc("POST /api/backup/import", middleware.RequireAuth(backup.Import))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (CSRF reads APP_ENV from ctx)
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService),
	)

	return handler
}
