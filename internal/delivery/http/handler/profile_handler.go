package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"resume-tailor/internal/delivery/http/dto"
	"resume-tailor/internal/delivery/http/middleware"
	"resume-tailor/internal/domain/profile"
	"resume-tailor/internal/pkg/response"
	"resume-tailor/internal/resumetext"
	"resume-tailor/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc             usecase.ProfileUsecase
	maxUploadBytes int64
}

func NewProfileHandler(uc usecase.ProfileUsecase, maxUploadBytes int64) *ProfileHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &ProfileHandler{uc: uc, maxUploadBytes: maxUploadBytes}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Put("/resume", h.PutResume)
	r.Get("/resume", h.GetResume)
	r.Put("/intent", h.PutIntent)
	r.Get("/intent", h.GetIntent)
}

// PutResume accepts either JSON {content} or a multipart "file" upload.
func (h *ProfileHandler) PutResume(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var (
		content  string
		fileName *string
	)
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		content, fileName, err = h.readUpload(c)
		if err != nil {
			return err
		}
	} else {
		var req dto.SaveResumeRequest
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
		content = req.Content
	}

	res, err := h.uc.SaveResume(c.Context(), userID, content, fileName)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(res))
}

func (h *ProfileHandler) readUpload(c fiber.Ctx) (string, *string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}
	if fh.Size > h.maxUploadBytes {
		return "", nil, middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return "", nil, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return "", nil, middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, nil)
	}

	text, err := resumetext.Extract(fh.Filename, data)
	if err != nil {
		if errors.Is(err, resumetext.ErrUnsupportedFormat) {
			return "", nil, middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Upload a .pdf, .docx or .txt file", nil, err)
		}
		return "", nil, middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not read text from file", nil, fmt.Errorf("extract %s: %w", fh.Filename, err))
	}

	name := fh.Filename
	return text, &name, nil
}

func (h *ProfileHandler) GetResume(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	res, err := h.uc.GetResume(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrResumeMissing) {
			return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
		}
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(res))
}

func (h *ProfileHandler) PutIntent(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.IntentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	in, err := h.uc.SaveIntent(c.Context(), profile.Intent{
		UserID:       userID,
		DesiredRoles: req.DesiredRoles,
		Companies:    req.Companies,
		Locations:    req.Locations,
		WorkMode:     req.WorkMode,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewIntentResponse(in))
}

func (h *ProfileHandler) GetIntent(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	in, err := h.uc.GetIntent(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewIntentResponse(in))
}
