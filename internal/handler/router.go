package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vaultpass/secretgen-go/internal/middleware"
)

// RouterConfig holds what NewRouter needs to assemble the API.
type RouterConfig struct {
	Generator *GeneratorHandler
	// Clients is nil when no database is available; client, token and
	// history routes are then not mounted.
	Clients *ClientHandler

	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the chi router serving the API. Background work started
// by the router's middleware stops when ctx is done.
func NewRouter(ctx context.Context, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.ClientInfo)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalJWTAuth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/v1/generate/password", cfg.Generator.HandlePassword)
		r.Post("/api/v1/generate/pin", cfg.Generator.HandlePIN)
		r.Get("/api/v1/random", cfg.Generator.HandleRandom)
	})

	if cfg.Clients != nil {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(ctx, 1, 5))
			r.Post("/api/v1/clients", cfg.Clients.HandleRegister)
			r.Post("/api/v1/tokens", cfg.Clients.HandleToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Get("/api/v1/history", cfg.Clients.HandleHistory)
		})
	}

	return r
}
