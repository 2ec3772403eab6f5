package routes

import (
	"dev-match/internal/delivery/http/handler"
	"dev-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every HTTP entry point of the service.
type Registry struct {
	Health   *handler.HealthHandler
	Evaluate *handler.EvaluateHandler
	Projects *handler.ProjectHandler
	Skills   *handler.SkillHandler
	WS       *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	if r.WS != nil {
		r.WS.RegisterRoutes(app)
	}
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r)
}
