package handler

import (
	"resume-tailor/internal/delivery/http/dto"
	"resume-tailor/internal/domain/feedback"
	"resume-tailor/internal/pkg/response"
	"resume-tailor/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type FeedbackHandler struct {
	uc usecase.FeedbackUsecase
}

func NewFeedbackHandler(uc usecase.FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

func (h *FeedbackHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/feedback", h.List)
	r.Get("/feedback/stats", h.Stats)
	r.Get("/feedback/tailor/:tailor_id", h.GetByTailor)
}

func (h *FeedbackHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	minP, err := parseQueryIntPtr(c, "min_probability")
	if err != nil {
		return err
	}
	maxP, err := parseQueryIntPtr(c, "max_probability")
	if err != nil {
		return err
	}
	skip, err := parseQueryIntStrict(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", defaultLimit)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, feedback.Filter{
		MinProbability: minP,
		MaxProbability: maxP,
		Skip:           skip,
		Limit:          limit,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.FeedbackResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewFeedbackResponse(it))
	}
	return response.Page(c, out, response.PageMeta{Limit: limit, Offset: skip, Count: len(out)})
}

func (h *FeedbackHandler) GetByTailor(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	tailorID, err := uuidParam(c, "tailor_id")
	if err != nil {
		return err
	}

	f, err := h.uc.GetByTailor(c.Context(), userID, tailorID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFeedbackResponse(f))
}

func (h *FeedbackHandler) Stats(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	s, err := h.uc.Stats(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFeedbackStatsResponse(s))
}
