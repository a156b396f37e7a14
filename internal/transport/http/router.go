package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"jahayeon_backend/internal/handler"
	"jahayeon_backend/internal/httputil"
	authmw "jahayeon_backend/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler  *handler.AuthHandler
	UserHandler  *handler.UserHandler
	EventHandler *handler.EventHandler
	PartyHandler *handler.PartyHandler
	AIHandler    *handler.AIHandler
	JWTSecret    string
	Blacklist    authmw.Blacklist
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes - no authentication required
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/token/refresh", cfg.AuthHandler.Refresh)
			r.Get("/google/login", cfg.AuthHandler.GoogleLogin)
			r.Post("/google/callback", cfg.AuthHandler.GoogleCallback)
		})

		// Protected routes - require authentication
		r.Group(func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.JWTSecret, cfg.Blacklist))

			r.Post("/auth/logout", cfg.AuthHandler.Logout)
			r.Get("/auth/user", cfg.AuthHandler.UserInfo)

			r.Route("/users", func(r chi.Router) {
				r.Get("/profile", cfg.UserHandler.Profile)
				r.Patch("/profile", cfg.UserHandler.UpdateNickname)
				r.Get("/history", cfg.UserHandler.History)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", cfg.EventHandler.List)
				r.Post("/", cfg.EventHandler.Create)
				r.Get("/my", cfg.EventHandler.My)
				r.Get("/{eventID}", cfg.EventHandler.Detail)
				r.Post("/{eventID}/join", cfg.EventHandler.Join)
				r.Post("/{eventID}/complete", cfg.EventHandler.Complete)
			})

			r.Route("/parties", func(r chi.Router) {
				r.Get("/", cfg.PartyHandler.List)
				r.Post("/", cfg.PartyHandler.Create)
				r.Get("/{partyID}", cfg.PartyHandler.Detail)
				r.Post("/{partyID}/join", cfg.PartyHandler.Join)
				r.Post("/{partyID}/start", cfg.PartyHandler.Start)
				r.Post("/{partyID}/endride", cfg.PartyHandler.EndRide)
				r.Post("/{partyID}/end", cfg.PartyHandler.End)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/gpt/generate", cfg.AIHandler.OpenAI)
				r.Post("/gemini/generate", cfg.AIHandler.Gemini)
			})
		})
	})

	return r
}
