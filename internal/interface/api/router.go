package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP surface of the tracking subsystem
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/cases", h.CreateCase)

		r.Get("/ambulances", h.ListAmbulances)
		r.Post("/ambulances", h.CreateAmbulance)

		// Location ingest from the shareable links. Link possession is the
		// entire authorization model here.
		r.Post("/track/{ambulanceID}/location", h.IngestAmbulanceLocation)
		r.Get("/track/{ambulanceID}", h.DriverView)
		r.Post("/location/{caseID}", h.IngestCaseLocation)
		r.Get("/location/{caseID}/status", h.CaseLocationStatus)

		r.Get("/map/ambulances", h.MapView)
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
