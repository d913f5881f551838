package app

import (
	"fmt"
	"strings"

	"resume-tailor/internal/delivery/http/handler"
	"resume-tailor/internal/delivery/http/middleware"
	"resume-tailor/internal/delivery/http/routes"
	"resume-tailor/internal/pkg/jwt"
	"resume-tailor/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

// New builds the HTTP server over an initialized container.
func New(c *Container) *App {
	cfg := c.Config

	bodyLimit := int(cfg.Import.MaxUploadBytes) + 1<<20
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: bodyLimit,
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Audience)
	events := ws.NewHandler(c.Hub, middleware.UserID, c.Logger)

	routes.NewRegistry(routes.Handlers{
		Health:   handler.NewHealthHandler(c.DB, c.Redis),
		Profile:  handler.NewProfileHandler(c.Profiles, cfg.Import.MaxUploadBytes),
		Jobs:     handler.NewJobsHandler(c.Jobs, c.Processor),
		Tailors:  handler.NewTailorHandler(c.Tailors),
		Feedback: handler.NewFeedbackHandler(c.Feedback),
		Events:   events.HandleEvents,
	}, middleware.NewAuthMiddleware(jwtSvc)).Register(f)

	return &App{Fiber: f}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
