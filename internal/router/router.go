package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/minichan/internal/setup"
	mw "github.com/itchan-dev/minichan/shared/middleware"
	"github.com/itchan-dev/minichan/shared/middleware/metrics"
)

// New creates the chi router with every route and the middleware chain.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()
	public := deps.Config.Public

	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(chimw.Compress(5, "text/html", "text/css", "text/plain"))
	r.Use(mw.SecurityHeadersWithCSP(public.SecureCookies, mw.PageCSP))

	if len(public.CorsAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: public.CorsAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	h := deps.Handler

	// Probes and metrics
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(public.StaticDir))))

	r.Get("/", h.GetBoard)
	r.Post("/thread", h.CreateThread)
	r.Get("/thread/{id}", h.GetThread)
	r.Post("/reply", h.CreateReply)

	return r
}
