package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/auth"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/report"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/transport/middleware"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/transport/swagger"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/user"
)

// RouterDeps bundles everything RegisterAllRoutes needs to wire the API.
type RouterDeps struct {
	DB             *sql.DB
	OTPStoreHealth Pinger
	AuthHandler    *auth.Handler
	UserHandler    *user.Handler
	ReportHandler  *report.Handler
	LoginLimiter   *auth.LoginLimiter
	AllowedOrigins string
	Logger         *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB, deps.OTPStoreHealth)

	// Apply global middleware
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			// Rate limit the endpoints that send email
			sr.Group(func(lr chi.Router) {
				lr.Use(deps.LoginLimiter.Middleware)
				lr.Post("/login", deps.AuthHandler.Login)
				lr.Post("/forgot-password", deps.AuthHandler.ForgotPassword)
				lr.Post("/resend-otp", deps.AuthHandler.ResendOTP)
			})
			sr.Post("/verify-otp", deps.AuthHandler.VerifyLoginOTP)
			sr.Post("/verify-reset-otp", deps.AuthHandler.VerifyResetOTP)
			sr.Post("/change-password", deps.AuthHandler.ChangePassword)
			sr.Post("/logout", deps.AuthHandler.Logout)
			sr.Get("/session", deps.AuthHandler.Session)
		})

		// Protected routes that require a live session
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.SessionMiddleware)

			pr.Get("/users/me", deps.UserHandler.GetCurrentUser)
			pr.Get("/reports/my", deps.ReportHandler.ListMyReports)
			pr.Get("/reports/my/{powerBiId}", deps.ReportHandler.GetMyReportByPowerBIID)

			// Admin-only management routes
			pr.Group(func(ar chi.Router) {
				ar.Use(deps.AuthHandler.RequireAdmin)

				ar.Route("/users", func(ur chi.Router) {
					ur.Get("/", deps.UserHandler.ListUsers)
					ur.Post("/", deps.UserHandler.CreateUser)
					ur.Put("/{id}", deps.UserHandler.UpdateUser)
					ur.Delete("/{id}", deps.UserHandler.DeactivateUser)
				})

				ar.Route("/reports", func(rr chi.Router) {
					rr.Get("/", deps.ReportHandler.ListReports)
					rr.Post("/", deps.ReportHandler.CreateReport)
					rr.Put("/{id}", deps.ReportHandler.UpdateReport)
					rr.Delete("/{id}", deps.ReportHandler.DeleteReport)
				})

				ar.Get("/access-overview", deps.ReportHandler.GetAccessOverview)
			})
		})
	})
}
