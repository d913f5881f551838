package handler

import (
	"errors"
	"strconv"

	"resume-tailor/internal/delivery/http/dto"
	"resume-tailor/internal/delivery/http/middleware"
	"resume-tailor/internal/pkg/response"
	"resume-tailor/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func currentUser(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return v, nil
}

func parseQueryIntPtr(c fiber.Ctx, key string) (*int, error) {
	if c.Query(key) == "" {
		return nil, nil
	}
	v, err := parseQueryIntStrict(c, key, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func pagination(c fiber.Ctx) (limit, offset int, err error) {
	limit, err = parseQueryIntStrict(c, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	offset, err = parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if limit <= 0 || limit > maxLimit || offset < 0 {
		return 0, 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid pagination", nil, nil)
	}
	return limit, offset, nil
}

// mapUsecaseError translates usecase sentinels into HTTP errors.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrTailorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Tailor not found", nil, err)
	case errors.Is(err, usecase.ErrFeedbackNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Feedback not found", nil, err)
	case errors.Is(err, usecase.ErrIntentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Intent not set", nil, err)
	case errors.Is(err, usecase.ErrResumeMissing):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Master resume not uploaded", nil, err)
	case errors.Is(err, usecase.ErrImportFailed):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not read a job description from that URL", nil, err)
	case errors.Is(err, usecase.ErrJobAlreadyProcessed):
		return middleware.NewAppError(fiber.StatusConflict, "Job already processed", nil, err)
	case errors.Is(err, usecase.ErrTailorReviewed):
		return middleware.NewAppError(fiber.StatusConflict, "Tailor already reviewed", nil, err)
	case errors.Is(err, usecase.ErrUpstreamAI):
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, dto.ProcessFailedResponse{Status: "failed"}, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
