package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/models"
	"recruitops/pipeline-api/internal/services"
)

type InterviewHandler struct {
	interviews services.InterviewService
	logger     *zap.Logger
}

func NewInterviewHandler(interviews services.InterviewService, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, logger: logger}
}

// HandleList handles GET /candidates/:id/interviews, returning both views
// at once.
func (h *InterviewHandler) HandleList(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}

	var open, outcomes []models.InterviewRecord
	if err := withRetry(func() error {
		var err error
		if open, err = h.interviews.ListOpenSchedules(c.Context(), candidateID); err != nil {
			return err
		}
		outcomes, err = h.interviews.ListOutcomes(c.Context(), candidateID)
		return err
	}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"open_schedules": open,
		"outcomes":       outcomes,
	})
}

// HandlePost handles POST /candidates/:id/interviews. The body selects the
// flow: a conclusion records an outcome, otherwise a round is scheduled.
func (h *InterviewHandler) HandlePost(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}

	var req models.InterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	var record *models.InterviewRecord
	if err := withRetry(func() error {
		var err error
		if strings.TrimSpace(req.Conclusion) != "" {
			record, err = h.interviews.RecordOutcome(c.Context(), candidateID, uuid.Nil, &req)
		} else {
			record, err = h.interviews.Schedule(c.Context(), candidateID, &req)
		}
		return err
	}); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// HandlePut handles PUT /candidates/:id/interviews/:interviewId. A
// conclusion in the body records an outcome; otherwise the schedule fields
// are edited.
func (h *InterviewHandler) HandlePut(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}
	interviewID, err := uuid.Parse(c.Params("interviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid interview ID format",
		})
	}

	var req models.InterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	var record *models.InterviewRecord
	if err := withRetry(func() error {
		var err error
		if strings.TrimSpace(req.Conclusion) != "" {
			record, err = h.interviews.RecordOutcome(c.Context(), candidateID, interviewID, &req)
		} else {
			record, err = h.interviews.UpdateSchedule(c.Context(), candidateID, interviewID, &req)
		}
		return err
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(record)
}

// HandleDelete handles DELETE /candidates/:id/interviews/:interviewId,
// cancelling an open schedule.
func (h *InterviewHandler) HandleDelete(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID format",
		})
	}
	interviewID, err := uuid.Parse(c.Params("interviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid interview ID format",
		})
	}

	if err := withRetry(func() error {
		return h.interviews.CancelSchedule(c.Context(), candidateID, interviewID)
	}); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
