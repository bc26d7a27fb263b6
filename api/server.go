/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:      Unique ID per request for tracing
  2. requestLogger:  Structured request logging (zap)
  3. Recoverer:      Panic recovery (500 instead of crash)
  4. CORS:           Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/auth/*           Login is public, the rest requires a token
  /api/employees/*      Directory and profile
  /api/vacation/*       Balance, requests, document generation
  /api/payroll/*        Receipts and XLSX export
  /api/orgchart         Reporting tree
  /api/notifications/*  Feed and read state
  /api/attendance       Tagged-action check-in/out (dispatch.go)
  /api/documents/*      Stored files

  Admin-only routes (pending queue, approve, reject) sit behind
  RequireAdmin inside the authenticated group.

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: Auth and logging middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Persistence-Warning"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/login", h.Login)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", h.Me)
				r.Post("/change-password", h.ChangePassword)
			})

			r.Get("/me", h.Me)
			r.Put("/me", h.UpdateProfile)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.ListEmployees)
				r.Put("/me", h.UpdateProfile)
				r.Get("/{id}", h.GetEmployee)
			})

			r.Route("/vacation", func(r chi.Router) {
				r.Get("/balance", h.GetVacationBalance)
				r.Get("/requests", h.ListMyVacationRequests)
				r.Post("/requests", h.SubmitVacationRequest)
				r.Post("/generate-document", h.GenerateVacationDocument)

				// Admin approval queue
				r.Group(func(r chi.Router) {
					r.Use(h.RequireAdmin)
					r.Get("/requests/pending", h.ListPendingVacationRequests)
					r.Post("/requests/{id}/approve", h.ApproveVacationRequest)
					r.Post("/requests/{id}/reject", h.RejectVacationRequest)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/receipts", h.ListReceipts)
				r.Get("/receipts/export", h.ExportReceipts)
				r.Get("/receipts/{id}/download", h.DownloadReceipt)
			})

			r.Get("/orgchart", h.GetOrgChart)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.ListNotifications)
				r.Get("/unread-count", h.CountUnreadNotifications)
				r.Post("/read-all", h.MarkAllNotificationsRead)
				r.Post("/{id}/read", h.MarkNotificationRead)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", h.AttendanceAction)
				r.Get("/today", h.GetTodayAttendance)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", h.ListDocuments)
				r.Post("/", h.UploadDocument)
				r.Get("/{id}/download", h.DownloadDocument)
			})
		})
	})

	return r
}
