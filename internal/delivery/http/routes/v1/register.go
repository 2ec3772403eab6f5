package v1

import (
	"dev-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Evaluate *handler.EvaluateHandler
	Projects *handler.ProjectHandler
	Skills   *handler.SkillHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Evaluate != nil {
		h.Evaluate.RegisterRoutes(r)
	}
	if h.Projects != nil {
		h.Projects.RegisterRoutes(r)
	}
	if h.Skills != nil {
		h.Skills.RegisterRoutes(r)
	}
}
