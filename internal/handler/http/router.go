package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the REST surface. Cross-cutting middleware (CORS,
// correlation ids, tracing) is attached by the caller before the routes.
func NewRouter(products *ProductHandler, health *HealthHandler, middlewares ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", health.Check)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Post("/", products.Create)
		r.Put("/{id}", products.Update)
		r.Delete("/{id}", products.Delete)
	})

	return r
}
