package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withIdentityCache)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/version/", h.getServerVersion)
	router.Get("/api/info", h.getServerInfo)
	router.Method("GET", "/metrics", promhttp.Handler())

	router.Route("/api/account", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/reset-password", h.resetPassword)
			r.Get("/confirm/{kind:[adr]}/{code}", h.confirm)
			r.Post("/confirm/request-code", h.requestCode)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.me)
			r.Put("/password", h.changePassword)
			r.Delete("/me", h.deleteMe)
		})
	})

	router.Route("/api/admin", func(r chi.Router) {
		r.Use(h.adminOnly)
		r.Post("/account/suspend", h.suspend)
	})

	return router
}
