package routes

import (
	"resume-tailor/internal/delivery/http/handler"
	"resume-tailor/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything mounted by the registry. Nil handlers are
// skipped.
type Handlers struct {
	Health   *handler.HealthHandler
	Profile  *handler.ProfileHandler
	Jobs     *handler.JobsHandler
	Tailors  *handler.TailorHandler
	Feedback *handler.FeedbackHandler
	Events   fiber.Handler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
	r.registerV1(app.Group("/api").Group("/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	// Registered before the auth group so it stays public.
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(v1)
	}

	protected := v1.Group("", r.auth.Middleware())

	if r.handlers.Profile != nil {
		r.handlers.Profile.RegisterRoutes(protected)
	}
	if r.handlers.Jobs != nil {
		r.handlers.Jobs.RegisterRoutes(protected)
	}
	if r.handlers.Tailors != nil {
		r.handlers.Tailors.RegisterRoutes(protected)
	}
	if r.handlers.Feedback != nil {
		r.handlers.Feedback.RegisterRoutes(protected)
	}
	if r.handlers.Events != nil {
		protected.Get("/ws", r.handlers.Events)
	}
}
