package handler

import (
	"resume-tailor/internal/delivery/http/dto"
	"resume-tailor/internal/delivery/http/middleware"
	"resume-tailor/internal/pkg/response"
	"resume-tailor/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	jobs    usecase.JobUsecase
	process usecase.JobProcessUsecase
}

func NewJobsHandler(jobs usecase.JobUsecase, process usecase.JobProcessUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, process: process}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs", h.Create)
	r.Post("/jobs/import", h.Import)
	r.Get("/jobs", h.List)
	r.Get("/jobs/:id", h.Get)
	r.Post("/jobs/:id/process", h.Process)
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.jobs.Create(c.Context(), usecase.CreateJobParams{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", dto.NewJobResponse(j))
}

func (h *JobsHandler) Import(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ImportJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.jobs.Import(c.Context(), userID, req.URL)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", dto.NewJobResponse(j))
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, err := h.jobs.List(c.Context(), usecase.ListJobsParams{
		UserID: userID,
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewJobResponse(it))
	}
	return response.Page(c, out, response.PageMeta{Limit: limit, Offset: offset, Count: len(out)})
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.jobs.Get(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

// Process scores the job and, when it clears the fit threshold, generates
// tailored content. Upstream AI failures answer 502 with status "failed".
func (h *JobsHandler) Process(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.process.ProcessJob(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProcessJobResponse(res))
}
