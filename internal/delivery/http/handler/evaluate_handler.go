package handler

import (
	"dev-match/internal/delivery/http/dto"
	"dev-match/internal/delivery/http/middleware"
	"dev-match/internal/pkg/response"
	"dev-match/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EvaluateHandler struct {
	uc       usecase.MatchingUsecase
	validate *validator.Validate
}

func NewEvaluateHandler(uc usecase.MatchingUsecase, v *validator.Validate) *EvaluateHandler {
	if v == nil {
		v = NewValidator()
	}
	return &EvaluateHandler{uc: uc, validate: v}
}

func (h *EvaluateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/evaluate-and-match", h.EvaluateAndMatch)
}

// EvaluateAndMatch runs one turn for a new project or for a follow-up reply.
// The body is either a question or a ranked list of developers.
func (h *EvaluateHandler) EvaluateAndMatch(c fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, validationFields(err), err)
	}

	var (
		out usecase.Outcome
		err error
	)
	switch {
	case req.IsInitial():
		out, err = h.uc.StartProject(c.Context(), usecase.StartInput{
			Project:     req.Project.ToDomain(),
			Message:     req.Message,
			ChatHistory: dto.ToConversation(req.ChatHistory),
		})
	case req.IsFollowUp():
		id, perr := uuid.Parse(req.ProjectID)
		if perr != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest,
				map[string]string{"project_id": "must be a valid UUID"}, perr)
		}
		out, err = h.uc.ContinueProject(c.Context(), usecase.ContinueInput{ProjectID: id, Message: req.Message})
	default:
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest,
			map[string]string{"project": "is required when project_id is absent"}, nil)
	}
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.NewEvaluateResponse(out))
}
