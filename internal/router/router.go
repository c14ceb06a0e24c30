// Package router wires every endpoint to the handler plus the middleware
// stack: compression, CORS, metrics, cooldown gates and staff auth.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okibe-dev/okibe/internal/middleware"
	"github.com/okibe-dev/okibe/internal/middleware/metrics"
	"github.com/okibe-dev/okibe/internal/setup"
)

func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(metrics.Middleware)

	h := deps.Handler
	staffOnly := middleware.StaffOnly(deps.Jwt)
	writeGate := middleware.Cooldown(deps.PostGate)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Get("/boards", h.GetBoards)
		r.Route("/boards/{board}", func(r chi.Router) {
			r.Get("/", h.GetBoard)
			r.Get("/threads", h.GetCatalog)
			r.Post("/threads", writeGate(h.SubmitThread))
			r.Get("/threads/{thread}", h.GetThread)
			r.Post("/threads/{thread}/posts", writeGate(h.SubmitReply))
			r.Get("/posts/{post}", h.GetPost)
		})

		// Report throttling lives in the service, keyed by reporter IP.
		r.Post("/reports", h.CreateReport)

		// Staff endpoints
		r.Post("/admin/boards", staffOnly(h.CreateBoard))
		r.Delete("/admin/boards/{board}", staffOnly(h.DeleteBoard))
		r.Delete("/admin/boards/{board}/posts/{post}", staffOnly(h.DeletePost))
		r.Put("/admin/boards/{board}/threads/{thread}/sticky", staffOnly(h.SetSticky))
		r.Get("/admin/reports", staffOnly(h.GetReports))
	})

	return r
}
