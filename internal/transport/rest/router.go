package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/heartmarshall/learning-oracle/internal/config"
	"github.com/heartmarshall/learning-oracle/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Events   *EventHandler
	Segments *SegmentHandler
	Rules    *RuleHandler
	Actions  *ActionHandler
	Passes   *PassHandler
}

// NewRouter builds the HTTP surface. Health endpoints stay outside /api so they
// need no credentials.
func NewRouter(h Handlers, auth func(http.Handler) http.Handler, cfg config.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.CORS(cfg.CORS),
	)
	if cfg.Server.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst).Middleware)
	}

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth)

		r.Post("/events", h.Events.Record)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/events", h.Events.Since)
			r.Post("/classify", h.Segments.Classify)
			r.Get("/segment", h.Segments.Get)
		})

		r.Route("/segments", func(r chi.Router) {
			r.Get("/stats", h.Segments.Stats)
			r.Get("/at-risk", h.Segments.AtRisk)
			r.Get("/{level}/users", h.Segments.ByLevel)
		})

		r.Route("/passes", func(r chi.Router) {
			r.Post("/classify", h.Passes.Classify)
			r.Post("/evaluate", h.Passes.Evaluate)
			r.Post("/execute", h.Passes.Execute)
			r.Post("/expire", h.Passes.Expire)
		})

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", h.Rules.List)
			r.Post("/", h.Rules.Create)
			r.Get("/{ruleID}", h.Rules.Get)
			r.Post("/{ruleID}/toggle", h.Rules.Toggle)
			r.Post("/{ruleID}/evaluate", h.Rules.Evaluate)
		})

		r.Route("/actions", func(r chi.Router) {
			r.Get("/", h.Actions.List)
			r.Post("/", h.Actions.Create)
			r.Get("/{actionID}", h.Actions.Get)
			r.Post("/{actionID}/approve", h.Actions.Approve)
			r.Post("/{actionID}/reject", h.Actions.Reject)
			r.Post("/{actionID}/reapprove", h.Actions.Reapprove)
			r.Post("/{actionID}/execute", h.Actions.Execute)
		})
	})

	return r
}
