package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/models"
	"recruitops/pipeline-api/internal/repositories"
)

type JobHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	logger        *zap.Logger
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	logger *zap.Logger,
) *JobHandler {
	return &JobHandler{jobRepo: jobRepo, candidateRepo: candidateRepo, logger: logger}
}

// HandleList handles GET /jobs
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	var jobs []models.JobPosting
	if err := withRetry(func() error {
		var err error
		jobs, err = h.jobRepo.List(c.Context())
		return err
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(jobs)
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	status := req.Status
	if status == "" {
		status = models.JobStatusOpen
	}
	headcount := req.Headcount
	if headcount <= 0 {
		headcount = 1
	}

	job := &models.JobPosting{
		ID:         uuid.New(),
		Title:      req.Title,
		Department: req.Department,
		Headcount:  headcount,
		Status:     status,
	}
	if err := withRetry(func() error {
		return h.jobRepo.Create(c.Context(), job)
	}); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleLink handles POST /candidates/:id/jobs/:jobId
func (h *JobHandler) HandleLink(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID format",
		})
	}

	if _, err := h.candidateRepo.FindByID(c.Context(), candidateID); err != nil {
		return respondError(c, err)
	}
	if _, err := h.jobRepo.FindByID(c.Context(), jobID); err != nil {
		return respondError(c, err)
	}

	if err := withRetry(func() error {
		return h.jobRepo.Link(c.Context(), candidateID, jobID)
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
