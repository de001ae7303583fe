// Package api exposes a record log store over HTTP: append, scan and
// stats per named log, plus health and Prometheus metrics endpoints.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kvasirdb/recordio/pkg/logstore"
)

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(store *logstore.Store, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(store, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting RecordIO API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, Router(server))
}

// Router builds the chi router for a server. Split out from StartServer so
// tests can drive the handlers without a listener.
func Router(server *Server) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	m := server.metrics
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Get("/logs", m.InstrumentHandler("GET", "/api/v1/logs", server.handleListLogs))
		r.Post("/logs/{log}/records", m.InstrumentHandler("POST", "/api/v1/logs/{log}/records", server.handleAppend))
		r.Get("/logs/{log}/records", m.InstrumentHandler("GET", "/api/v1/logs/{log}/records", server.handleScan))
		r.Get("/logs/{log}/stats", m.InstrumentHandler("GET", "/api/v1/logs/{log}/stats", server.handleStats))
	})

	return r
}
