package handler

import (
	"resume-tailor/internal/delivery/http/dto"
	"resume-tailor/internal/pkg/response"
	"resume-tailor/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type TailorHandler struct {
	uc usecase.TailorUsecase
}

func NewTailorHandler(uc usecase.TailorUsecase) *TailorHandler {
	return &TailorHandler{uc: uc}
}

func (h *TailorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/tailors", h.List)
	r.Get("/tailors/:id", h.Get)
	r.Post("/tailors/:id/approve", h.Approve)
	r.Post("/tailors/:id/reject", h.Reject)
	r.Get("/applications", h.ListApplications)
}

func (h *TailorHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.TailorResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewTailorResponse(it))
	}
	return response.Page(c, out, response.PageMeta{Limit: limit, Offset: offset, Count: len(out)})
}

func (h *TailorHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	t, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTailorResponse(t))
}

func (h *TailorHandler) Approve(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	app, err := h.uc.Approve(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "approved", dto.NewApplicationResponse(app))
}

func (h *TailorHandler) Reject(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Reject(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "rejected", nil)
}

func (h *TailorHandler) ListApplications(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListApplications(c.Context(), userID, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.ApplicationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewApplicationResponse(it))
	}
	return response.Page(c, out, response.PageMeta{Limit: limit, Offset: offset, Count: len(out)})
}
