package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/models"
	"recruitops/pipeline-api/internal/repositories"
	"recruitops/pipeline-api/internal/services"
)

// SubRecordHandler manages the assessment, background, and offer child
// records. They feed the derived candidate flags; their statuses resolve
// through their own dictionary categories.
type SubRecordHandler struct {
	candidateRepo  repositories.CandidateRepository
	assessmentRepo repositories.AssessmentRepository
	backgroundRepo repositories.BackgroundRepository
	offerRepo      repositories.OfferRepository
	resolver       services.DictionaryResolver
	logger         *zap.Logger
}

func NewSubRecordHandler(
	candidateRepo repositories.CandidateRepository,
	assessmentRepo repositories.AssessmentRepository,
	backgroundRepo repositories.BackgroundRepository,
	offerRepo repositories.OfferRepository,
	resolver services.DictionaryResolver,
	logger *zap.Logger,
) *SubRecordHandler {
	return &SubRecordHandler{
		candidateRepo:  candidateRepo,
		assessmentRepo: assessmentRepo,
		backgroundRepo: backgroundRepo,
		offerRepo:      offerRepo,
		resolver:       resolver,
		logger:         logger,
	}
}

func (h *SubRecordHandler) resolveStatus(c *fiber.Ctx, category, requested string) (string, error) {
	if requested == "" {
		return h.resolver.ResolveDefault(c.Context(), category)
	}
	return h.resolver.ResolveValue(c.Context(), category, requested)
}

func (h *SubRecordHandler) candidateAndBody(c *fiber.Ctx) (uuid.UUID, *models.SubRecordRequest, error) {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid candidate ID format")
	}

	var req models.SubRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}

	if _, err := h.candidateRepo.FindByID(c.Context(), candidateID); err != nil {
		return uuid.Nil, nil, err
	}
	return candidateID, &req, nil
}

// HandleCreateAssessment handles POST /candidates/:id/assessments
func (h *SubRecordHandler) HandleCreateAssessment(c *fiber.Ctx) error {
	candidateID, req, err := h.candidateAndBody(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return respondError(c, err)
	}

	status, err := h.resolveStatus(c, models.CategoryAssessmentStatus, req.Status)
	if err != nil {
		return respondError(c, err)
	}

	record := &models.AssessmentRecord{
		ID:          uuid.New(),
		CandidateID: candidateID,
		Subject:     req.Subject,
		Score:       req.Score,
		Status:      status,
	}
	if err := withRetry(func() error {
		return h.assessmentRepo.Create(c.Context(), record)
	}); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// HandleUpdateAssessment handles PUT /candidates/:id/assessments/:recordId
func (h *SubRecordHandler) HandleUpdateAssessment(c *fiber.Ctx) error {
	recordID, err := uuid.Parse(c.Params("recordId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid record ID format"})
	}

	var req models.SubRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}

	patch := map[string]interface{}{}
	if req.Status != "" {
		status, err := h.resolver.ResolveValue(c.Context(), models.CategoryAssessmentStatus, req.Status)
		if err != nil {
			return respondError(c, err)
		}
		patch["status"] = status
	}
	if req.Subject != "" {
		patch["subject"] = req.Subject
	}
	if req.Score != 0 {
		patch["score"] = req.Score
	}

	if err := withRetry(func() error {
		return h.assessmentRepo.Update(c.Context(), recordID, patch)
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCreateBackground handles POST /candidates/:id/backgrounds
func (h *SubRecordHandler) HandleCreateBackground(c *fiber.Ctx) error {
	candidateID, req, err := h.candidateAndBody(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return respondError(c, err)
	}

	status, err := h.resolveStatus(c, models.CategoryBackgroundStatus, req.Status)
	if err != nil {
		return respondError(c, err)
	}

	record := &models.BackgroundRecord{
		ID:          uuid.New(),
		CandidateID: candidateID,
		CheckType:   req.CheckType,
		Result:      req.Result,
		Status:      status,
	}
	if err := withRetry(func() error {
		return h.backgroundRepo.Create(c.Context(), record)
	}); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// HandleUpdateBackground handles PUT /candidates/:id/backgrounds/:recordId
func (h *SubRecordHandler) HandleUpdateBackground(c *fiber.Ctx) error {
	recordID, err := uuid.Parse(c.Params("recordId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid record ID format"})
	}

	var req models.SubRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}

	patch := map[string]interface{}{}
	if req.Status != "" {
		status, err := h.resolver.ResolveValue(c.Context(), models.CategoryBackgroundStatus, req.Status)
		if err != nil {
			return respondError(c, err)
		}
		patch["status"] = status
	}
	if req.CheckType != "" {
		patch["check_type"] = req.CheckType
	}
	if req.Result != "" {
		patch["result"] = req.Result
	}

	if err := withRetry(func() error {
		return h.backgroundRepo.Update(c.Context(), recordID, patch)
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCreateOffer handles POST /candidates/:id/offers
func (h *SubRecordHandler) HandleCreateOffer(c *fiber.Ctx) error {
	candidateID, req, err := h.candidateAndBody(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return respondError(c, err)
	}

	status, err := h.resolveStatus(c, models.CategoryOfferStatus, req.Status)
	if err != nil {
		return respondError(c, err)
	}

	record := &models.OfferRecord{
		ID:          uuid.New(),
		CandidateID: candidateID,
		Position:    req.Position,
		Salary:      req.Salary,
		Status:      status,
	}
	if err := withRetry(func() error {
		return h.offerRepo.Create(c.Context(), record)
	}); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// HandleUpdateOffer handles PUT /candidates/:id/offers/:recordId
func (h *SubRecordHandler) HandleUpdateOffer(c *fiber.Ctx) error {
	recordID, err := uuid.Parse(c.Params("recordId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid record ID format"})
	}

	var req models.SubRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}

	patch := map[string]interface{}{}
	if req.Status != "" {
		status, err := h.resolver.ResolveValue(c.Context(), models.CategoryOfferStatus, req.Status)
		if err != nil {
			return respondError(c, err)
		}
		patch["status"] = status
	}
	if req.Position != "" {
		patch["position"] = req.Position
	}
	if req.Salary != "" {
		patch["salary"] = req.Salary
	}

	if err := withRetry(func() error {
		return h.offerRepo.Update(c.Context(), recordID, patch)
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
