package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/models"
	"recruitops/pipeline-api/internal/repositories"
	"recruitops/pipeline-api/internal/services"
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
	pipeline      services.PipelineService
	aggregate     services.AggregateService
	resolver      services.DictionaryResolver
	logger        *zap.Logger
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	pipeline services.PipelineService,
	aggregate services.AggregateService,
	resolver services.DictionaryResolver,
	logger *zap.Logger,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		pipeline:      pipeline,
		aggregate:     aggregate,
		resolver:      resolver,
		logger:        logger,
	}
}

// HandleCreate handles POST /candidates
func (h *CandidateHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	status := req.CurrentStatus
	if status == "" {
		var err error
		status, err = h.resolver.ResolveDefault(c.Context(), models.CategoryCandidateStatus)
		if err != nil {
			return respondError(c, err)
		}
	} else {
		var err error
		status, err = h.resolver.ResolveValue(c.Context(), models.CategoryCandidateStatus, status)
		if err != nil {
			return respondError(c, err)
		}
	}

	candidate := &models.Candidate{
		ID:            uuid.New(),
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Position:      req.Position,
		Channel:       req.Channel,
		CurrentStatus: status,
		Tags:          models.JoinTags(req.Tags),
		Notes:         req.Notes,
	}
	if err := withRetry(func() error {
		return h.candidateRepo.Create(c.Context(), candidate)
	}); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(candidate)
}

// HandleList handles GET /candidates
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	filter := models.CandidateFilter{
		Status:  c.Query("status"),
		Keyword: c.Query("keyword"),
	}
	if jobID := c.Query("job_id"); jobID != "" {
		id, err := uuid.Parse(jobID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid job_id format",
			})
		}
		filter.JobID = id
	}

	var summaries []models.CandidateSummary
	if err := withRetry(func() error {
		var err error
		summaries, err = h.aggregate.List(c.Context(), filter)
		return err
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(summaries)
}

// HandleGet handles GET /candidates/:id
func (h *CandidateHandler) HandleGet(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}

	var aggregate *models.CandidateAggregate
	if err := withRetry(func() error {
		var err error
		aggregate, err = h.aggregate.Get(c.Context(), candidateID)
		return err
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(aggregate)
}

// HandleUpdate handles PUT /candidates/:id. A current_status in the body
// selects the transition flow; profile fields are patched alongside. Status
// is never overwritten as a side effect of a profile-only edit.
func (h *CandidateHandler) HandleUpdate(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}

	var req models.CandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	candidate, err := h.candidateRepo.FindByID(c.Context(), candidateID)
	if err != nil {
		return respondError(c, err)
	}

	if req.CurrentStatus != "" {
		if err := withRetry(func() error {
			return h.applyTransition(c, candidate, req.CurrentStatus)
		}); err != nil {
			return respondError(c, err)
		}
	}

	patch := map[string]interface{}{}
	if req.Name != "" {
		patch["name"] = req.Name
	}
	if req.Phone != "" {
		patch["phone"] = req.Phone
	}
	if req.Email != "" {
		patch["email"] = req.Email
	}
	if req.Position != "" {
		patch["position"] = req.Position
	}
	if req.Channel != "" {
		patch["channel"] = req.Channel
	}
	if req.Notes != "" {
		patch["notes"] = req.Notes
	}
	if len(req.Tags) > 0 {
		patch["tags"] = models.JoinTags(req.Tags)
	}
	if len(patch) > 0 {
		if err := withRetry(func() error {
			return h.candidateRepo.Update(c.Context(), candidateID, patch)
		}); err != nil {
			return respondError(c, err)
		}
	}

	updated, err := h.candidateRepo.FindByID(c.Context(), candidateID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// applyTransition routes a status change through the pipeline coordinator:
// rejection and rescue have dedicated flows, everything else is an explicit
// status set.
func (h *CandidateHandler) applyTransition(c *fiber.Ctx, candidate *models.Candidate, status string) error {
	switch status {
	case models.CandidateStatusRejected:
		return h.pipeline.MarkInterviewRejected(c.Context(), candidate.ID)
	case models.CandidateStatusNew:
		entry, err := h.resolver.ResolveValue(c.Context(), models.CategoryCandidateStatus, models.CandidateStatusNew)
		if err != nil {
			return err
		}
		if candidate.CurrentStatus == entry {
			return nil
		}
		return h.pipeline.RescueCandidate(c.Context(), candidate.ID)
	default:
		return h.pipeline.SetStatus(c.Context(), candidate.ID, status)
	}
}

// HandleDelete handles DELETE /candidates/:id
func (h *CandidateHandler) HandleDelete(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}

	if err := withRetry(func() error {
		return h.candidateRepo.Delete(c.Context(), candidateID)
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleEliminate handles POST /candidates/:id/eliminate
func (h *CandidateHandler) HandleEliminate(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}

	if err := withRetry(func() error {
		return h.pipeline.MarkEliminated(c.Context(), candidateID)
	}); err != nil {
		return respondError(c, err)
	}

	aggregate, err := h.aggregate.Get(c.Context(), candidateID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(aggregate)
}
