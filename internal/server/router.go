package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"stringdesk/internal/config"
	dashboardctrl "stringdesk/internal/dashboard/controller"
	intakectrl "stringdesk/internal/intake/controller"
	trackingctrl "stringdesk/internal/tracking/controller"
)

func NewRouter(
	cfg *config.Config,
	intake *intakectrl.IntakeController,
	tracking *trackingctrl.TrackingController,
	dashboard *dashboardctrl.DashboardController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Customer-facing lookup, no key.
	r.Get("/public/{token}", tracking.PublicLookup)

	// Staff scan surface: key via header, or query param on scanned links.
	r.Group(func(r chi.Router) {
		r.Use(KeyAuth("X-Staff-Key", "k", cfg.Auth.StaffKey))
		r.Post("/api/staff/toggle/{token}", tracking.StaffAdvance)
	})

	// Admin surface: key via header only.
	r.Group(func(r chi.Router) {
		r.Use(KeyAuth("X-Admin-Key", "", cfg.Auth.AdminKey))

		r.Post("/api/admin/customers", intake.CreateCustomer)
		r.Post("/api/admin/orders", intake.CreateOrder)
		r.Post("/api/admin/create_one", intake.CreateOne)

		r.Get("/api/admin/items/{itemId}", tracking.GetItem)
		r.Patch("/api/admin/items/{itemId}/status", tracking.SetStatus)
		r.Patch("/api/admin/items/{itemId}/scheduled_time", tracking.SetScheduledTime)

		r.Get("/api/admin/items", dashboard.ListByDate)
		r.Get("/api/admin/search", dashboard.Search)
		r.Get("/api/admin/summary", dashboard.Summary)
		r.Get("/api/admin/unfinished", dashboard.MonthUnfinished)
	})

	logger.Info("router configured")
	return r
}
