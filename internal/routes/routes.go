package routes

import (
	"net/http"

	"github.com/AnshRaj112/diary-backend/internal/handlers"
	"github.com/AnshRaj112/diary-backend/internal/metrics"
	"github.com/AnshRaj112/diary-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options carry what the router needs besides the handlers. WriteLimiter may be nil to skip
// Redis-backed write limits; ProductionSecurity adds host checks and IP rate limits.
type Options struct {
	Sessions           middleware.SessionValidator
	WriteLimiter       *redis.Client
	AllowedOrigins     []string
	AllowedHost        string
	TrustProxy         bool
	ProductionSecurity bool
	Logger             *zap.Logger
}

func SetupRoutes(r *chi.Mux, h *handlers.Handler, opts Options) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.ProductionSecurity {
		for _, mw := range middleware.ProductionSecurity(opts.AllowedHost, opts.TrustProxy) {
			r.Use(mw)
		}
	}

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	requireSession := middleware.RequireSession(opts.Sessions, log)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/signin", h.Signin)
		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Post("/signout", h.Signout)
			r.Get("/me", h.Me)
			r.Put("/me", h.UpdateMe)
		})
	})

	r.Route("/api/entries", func(r chi.Router) {
		r.Use(requireSession)
		if opts.WriteLimiter != nil {
			r.Use(middleware.WriteRateLimit(opts.WriteLimiter, opts.TrustProxy, log))
		}
		r.Get("/", h.ListEntries)
		r.Post("/", h.CreateEntry)
		r.Post("/refresh", h.RefreshEntries)
		r.Get("/{date}", h.GetEntry)
		r.Put("/{date}", h.PutEntry)
	})

	r.Route("/api/prompts", func(r chi.Router) {
		r.Get("/gratitude", handlers.GratitudePrompts)
		r.Get("/emotions", handlers.EmotionList)
		r.Get("/emotions/{emotion}", handlers.EmotionPrompts)
		r.Get("/quote/{emotion}", handlers.EmotionQuote)
	})

	r.With(middleware.OptionalSession(opts.Sessions)).Post("/api/activity", h.RecordActivity)
	r.With(requireSession).Get("/api/activity/insights", h.GetInsights)

	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		if opts.WriteLimiter != nil {
			r.Use(middleware.WriteRateLimit(opts.WriteLimiter, opts.TrustProxy, log))
		}
		r.Post("/api/stickers/upload", h.UploadSticker)
	})

	r.With(requireSession).Get("/ws/entries", h.EntriesWebSocket)
}
