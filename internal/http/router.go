package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/friend-app/internal/activity"
	"github.com/redmonkez12/friend-app/internal/auth"
	"github.com/redmonkez12/friend-app/internal/config"
	"github.com/redmonkez12/friend-app/internal/goal"
	"github.com/redmonkez12/friend-app/internal/httputil"
	"github.com/redmonkez12/friend-app/internal/logging"
	"github.com/redmonkez12/friend-app/internal/message"
	"github.com/redmonkez12/friend-app/internal/metrics"
	"github.com/redmonkez12/friend-app/internal/ratelimit"
	"github.com/redmonkez12/friend-app/internal/realtime"
)

// RouterDeps are the collaborators the router dispatches to.
type RouterDeps struct {
	Config          *config.Config
	Logger          *logging.Logger
	DB              *bun.DB
	AuthHandler     *auth.Handler
	AuthMiddleware  *auth.Middleware
	ActivityHandler *activity.Handler
	GoalHandler     *goal.Handler
	MessageHandler  *message.Handler
	RateLimiter     ratelimit.Limiter // nil disables rate limiting
	Metrics         *metrics.Metrics
	Hub             *realtime.Hub
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps RouterDeps) *chi.Mux {
	cfg := deps.Config
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders(!cfg.Server.IsDevelopment()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(deps.Logger))
	r.Use(deps.Metrics.InstrumentHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondErrorWithCode(w, "endpoint not found", httputil.CodeNotFound, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondErrorWithCode(w, "method not allowed", httputil.CodeMethodNotAllowed, http.StatusMethodNotAllowed)
	})

	// Websocket upgrades need the raw connection, so they skip compression.
	r.Handle("/ws", deps.Hub)
	r.Handle("/metrics", deps.Metrics.Handler())

	info := &infoHandler{db: deps.DB, driver: cfg.Database.Driver}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))

		r.Get("/health", info.Health)
		r.Get("/status", info.Status)

		// Swagger UI - only in development
		if cfg.Server.IsDevelopment() {
			deps.Logger.Info("Swagger UI enabled at /swagger/*")
			r.Get("/swagger/*", httpSwagger.WrapHandler)
		}

		r.Route("/api", func(r chi.Router) {
			if deps.RateLimiter != nil {
				r.Use(ratelimit.Middleware(deps.RateLimiter))
			}

			r.Get("/v1", info.APIInfo)

			// Auth routes (public)
			r.Post("/auth/signup", httputil.MakeHandler(deps.AuthHandler.Signup))
			r.Post("/auth/login", httputil.MakeHandler(deps.AuthHandler.Login))

			// Protected routes (require authentication)
			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)

				r.Get("/auth/me", httputil.MakeHandler(deps.AuthHandler.Me))

				r.Post("/activities", httputil.MakeHandler(deps.ActivityHandler.Create))
				r.Get("/activities", httputil.MakeHandler(deps.ActivityHandler.List))

				r.Post("/goals", httputil.MakeHandler(deps.GoalHandler.Create))
				r.Get("/goals", httputil.MakeHandler(deps.GoalHandler.List))

				r.Post("/messages", httputil.MakeHandler(deps.MessageHandler.Send))
				r.Get("/messages/{otherUserId}", httputil.MakeHandler(deps.MessageHandler.Conversation))
			})
		})
	})

	return r
}
