package handler

import (
	"dev-match/internal/delivery/http/dto"
	"dev-match/internal/delivery/http/middleware"
	"dev-match/internal/pkg/response"
	"dev-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	uc usecase.MatchingUsecase
}

func NewProjectHandler(uc usecase.MatchingUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/projects")
	grp.Get("/:id/matches", h.ListMatches)
	grp.Get("/:id/history", h.History)
}

func (h *ProjectHandler) ListMatches(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	items, err := h.uc.ListMatches(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStoredMatches(items))
}

func (h *ProjectHandler) History(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	conv, err := h.uc.History(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewChatHistory(conv))
}
