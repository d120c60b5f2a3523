package http //nolint:revive // directory-based package name, imported with alias

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *Handler, metrics http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", h.HandlePage)
	r.Post("/generate", h.HandlePageGenerate)
	r.Post("/save", h.HandlePageSave)

	r.Route("/api/form", func(r chi.Router) {
		r.Get("/", h.HandleGetForm)
		r.Put("/", h.HandleUpdateForm)
		r.Post("/generate", h.HandleGenerate)
		r.Post("/save", h.HandleSave)
		r.Post("/restore", h.HandleRestore)
		r.Get("/qr.png", h.HandleQR)
	})

	r.Get("/healthz", h.HandleHealth)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	return r
}
